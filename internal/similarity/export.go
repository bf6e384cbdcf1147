// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package similarity

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/lastfm-eda/internal/models"
)

// SimilarityFileName is the tab-separated similarity matrix file.
const SimilarityFileName = "user-pairs-similarity.dat"

// NeighborsFileName returns the neighbor list file name for k.
func NeighborsFileName(k int) string {
	return fmt.Sprintf("neighbors-k%d-users.dat", k)
}

// WriteSimilarityTSV writes the matrix with a "userID" header row of user ids
// and one row per user.
func WriteSimilarityTSV(w io.Writer, s *SimilarityMatrix) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)

	buf = append(buf[:0], "userID"...)
	for i := 0; i < s.Len(); i++ {
		buf = append(buf, '\t')
		buf = strconv.AppendInt(buf, int64(s.UserID(i)), 10)
	}
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	for i := 0; i < s.Len(); i++ {
		buf = strconv.AppendInt(buf[:0], int64(s.UserID(i)), 10)
		for _, v := range s.row(i) {
			buf = append(buf, '\t')
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// neighborObject marshals neighbor lists as a JSON object keyed by user id
// in ascending numeric order.
type neighborObject []models.NeighborList

// MarshalJSON implements json.Marshaler.
func (o neighborObject) MarshalJSON() ([]byte, error) {
	sorted := append(neighborObject(nil), o...)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].UserID < sorted[b].UserID })

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, list := range sorted {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(list.UserID)))
		buf.WriteByte(':')
		ids, err := json.Marshal(list.IDs())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal neighbors of user %d: %w", list.UserID, err)
		}
		buf.Write(ids)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteNeighborsJSON writes {"<userID>": [<neighborID>, ...], ...} with 2-space indentation.
func WriteNeighborsJSON(w io.Writer, lists []models.NeighborList) error {
	data, err := neighborObject(lists).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal neighbor lists: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("failed to indent neighbor lists: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// writeFile creates path and streams write into it.
func writeFile(path string, write func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path) //nolint:gosec // path is built from configured output dir
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteSimilarityFile writes the TSV matrix to dir/user-pairs-similarity.dat.
func WriteSimilarityFile(dir string, s *SimilarityMatrix) (string, error) {
	path := filepath.Join(dir, SimilarityFileName)
	return path, writeFile(path, func(w io.Writer) error {
		return WriteSimilarityTSV(w, s)
	})
}

// WriteNeighborsFile writes the neighbor lists for k to dir/neighbors-k{k}-users.dat.
func WriteNeighborsFile(dir string, k int, lists []models.NeighborList) (string, error) {
	path := filepath.Join(dir, NeighborsFileName(k))
	return path, writeFile(path, func(w io.Writer) error {
		return WriteNeighborsJSON(w, lists)
	})
}

// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package similarity

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/lastfm-eda/internal/models"
)

// exactUsers yields similarities that print without rounding.
func exactUsers() []models.Interaction {
	return []models.Interaction{
		{UserID: 1, ItemID: 1, Weight: 1},
		{UserID: 2, ItemID: 1, Weight: 1},
		{UserID: 3, ItemID: 2, Weight: 2},
	}
}

func TestWriteSimilarityTSV(t *testing.T) {
	s := mustCosine(t, exactUsers(), 1)

	var buf bytes.Buffer
	if err := WriteSimilarityTSV(&buf, s); err != nil {
		t.Fatalf("WriteSimilarityTSV() error = %v", err)
	}

	want := "userID\t1\t2\t3\n" +
		"1\t1\t1\t0\n" +
		"2\t1\t1\t0\n" +
		"3\t0\t0\t1\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteSimilarityTSV() =\n%q\nwant\n%q", got, want)
	}
}

func TestWriteSimilarityTSV_Empty(t *testing.T) {
	s := mustCosine(t, nil, 1)

	var buf bytes.Buffer
	if err := WriteSimilarityTSV(&buf, s); err != nil {
		t.Fatalf("WriteSimilarityTSV() error = %v", err)
	}
	if got := buf.String(); got != "userID\n" {
		t.Errorf("WriteSimilarityTSV() = %q, want %q", got, "userID\n")
	}
}

func TestWriteNeighborsJSON(t *testing.T) {
	s := mustCosine(t, exactUsers(), 1)
	lists, err := Neighbors(s, 1)
	if err != nil {
		t.Fatalf("Neighbors() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteNeighborsJSON(&buf, lists); err != nil {
		t.Fatalf("WriteNeighborsJSON() error = %v", err)
	}

	want := `{
  "1": [
    2
  ],
  "2": [
    1
  ],
  "3": [
    1
  ]
}`
	if got := buf.String(); got != want {
		t.Errorf("WriteNeighborsJSON() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteNeighborsJSON_KeyOrder(t *testing.T) {
	// Keys sort numerically, so 10 follows 9.
	lists := []models.NeighborList{
		{UserID: 10, Neighbors: []models.Neighbor{{UserID: 9}}},
		{UserID: 9, Neighbors: []models.Neighbor{{UserID: 10}}},
	}

	var buf bytes.Buffer
	if err := WriteNeighborsJSON(&buf, lists); err != nil {
		t.Fatalf("WriteNeighborsJSON() error = %v", err)
	}

	first := bytes.Index(buf.Bytes(), []byte(`"9"`))
	second := bytes.Index(buf.Bytes(), []byte(`"10"`))
	if first < 0 || second < 0 || first > second {
		t.Errorf("WriteNeighborsJSON() key order wrong:\n%s", buf.String())
	}
}

func TestWriteFiles_Deterministic(t *testing.T) {
	records := randomInteractions(30, 20, 5)

	run := func(dir string, workers int) (string, string) {
		s := mustCosine(t, records, workers)
		simPath, err := WriteSimilarityFile(dir, s)
		if err != nil {
			t.Fatalf("WriteSimilarityFile() error = %v", err)
		}
		lists, err := Neighbors(s, 5)
		if err != nil {
			t.Fatalf("Neighbors() error = %v", err)
		}
		nbPath, err := WriteNeighborsFile(dir, 5, lists)
		if err != nil {
			t.Fatalf("WriteNeighborsFile() error = %v", err)
		}
		return simPath, nbPath
	}

	dirA := filepath.Join(t.TempDir(), "a")
	dirB := filepath.Join(t.TempDir(), "nested", "b")
	simA, nbA := run(dirA, 1)
	simB, nbB := run(dirB, 4)

	if filepath.Base(simA) != SimilarityFileName {
		t.Errorf("similarity file = %s, want %s", filepath.Base(simA), SimilarityFileName)
	}
	if filepath.Base(nbA) != "neighbors-k5-users.dat" {
		t.Errorf("neighbors file = %s", filepath.Base(nbA))
	}

	for _, pair := range [][2]string{{simA, simB}, {nbA, nbB}} {
		a, err := os.ReadFile(pair[0])
		if err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(pair[1])
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s and %s differ", pair[0], pair[1])
		}
	}
}

// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/tomtom215/lastfm-eda/internal/dataset"
	"github.com/tomtom215/lastfm-eda/internal/models"
)

// HeadRows is the number of leading rows kept in a summary.
const HeadRows = 5

// Column kinds.
const (
	KindNumeric = "numeric"
	KindText    = "text"
)

// TableSource reads a raw dataset table by name. Implemented by *dataset.Loader.
type TableSource interface {
	Table(ctx context.Context, name string) (*dataset.Table, error)
}

// Explore summarizes each named dataset table.
func Explore(ctx context.Context, src TableSource, names []string) ([]models.DatasetSummary, error) {
	out := make([]models.DatasetSummary, 0, len(names))
	for _, name := range names {
		t, err := src.Table(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, Summarize(t))
	}
	return out, nil
}

// Summarize describes every column of t. Empty fields count as missing.
// A column is numeric when every present value parses as a number.
func Summarize(t *dataset.Table) models.DatasetSummary {
	s := models.DatasetSummary{
		Name:    t.Name,
		Rows:    t.Len(),
		Columns: make([]models.ColumnSummary, len(t.Columns)),
		Head:    make([][]string, 0, min(HeadRows, t.Len())),
	}

	for c, name := range t.Columns {
		s.Columns[c] = summarizeColumn(name, t.Values(c))
	}

	for _, row := range t.Rows[:min(HeadRows, t.Len())] {
		s.Head = append(s.Head, append([]string(nil), row...))
	}
	return s
}

func summarizeColumn(name string, values []string) models.ColumnSummary {
	present := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			present = append(present, v)
		}
	}

	cs := models.ColumnSummary{Name: name, Count: len(present)}

	nums, numeric := parseNumbers(present)
	if numeric {
		cs.Kind = KindNumeric
		distinct := make(map[float64]struct{}, len(nums))
		for _, v := range nums {
			distinct[v] = struct{}{}
		}
		cs.Unique = len(distinct)

		sorted := sortedCopy(nums)
		cs.Mean = floatPtr(mean(nums))
		cs.Std = floatPtr(sampleStd(nums))
		cs.Min = floatPtr(sorted[0])
		cs.P25 = floatPtr(quantile(sorted, 0.25))
		cs.P50 = floatPtr(quantile(sorted, 0.50))
		cs.P75 = floatPtr(quantile(sorted, 0.75))
		cs.Max = floatPtr(sorted[len(sorted)-1])
		return cs
	}

	cs.Kind = KindText
	counts := make(map[string]int, len(present))
	var (
		top  string
		freq int
	)
	for _, v := range present {
		counts[v]++
		// On ties the value that reached the count first wins.
		if counts[v] > freq {
			top, freq = v, counts[v]
		}
	}
	cs.Unique = len(counts)
	if freq > 0 {
		cs.Top = &top
		cs.Freq = &freq
	}
	return cs
}

// parseNumbers parses every value. It reports false for an empty input or
// any value that is not a number.
func parseNumbers(values []string) ([]float64, bool) {
	if len(values) == 0 {
		return nil, false
	}
	out := make([]float64, len(values))
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// WriteSummary writes the summaries to dir/q1_summary.json.
func WriteSummary(dir string, summaries []models.DatasetSummary) (string, error) {
	path := filepath.Join(dir, SummaryFile)
	if err := writeJSON(path, summaries); err != nil {
		return "", fmt.Errorf("failed to write dataset summary: %w", err)
	}
	return path, nil
}

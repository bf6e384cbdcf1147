// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ctxCheckInterval is how many rows are read between context checks.
const ctxCheckInterval = 10000

// Table holds the raw cells of one .dat file.
type Table struct {
	Name    string
	File    string
	Columns []string
	Rows    [][]string

	lines []int
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Line returns the 1-based file line of data row i.
func (t *Table) Line(i int) int {
	return t.lines[i]
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Values returns every cell of column c in row order.
func (t *Table) Values(c int) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[c]
	}
	return out
}

// readTable parses a tab-separated stream whose first row is the header.
func readTable(ctx context.Context, name, file string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, malformed(file, 1, "missing header row")
	}
	if err != nil {
		return nil, readError(file, err)
	}

	t := &Table{Name: name, File: file, Columns: make([]string, len(header))}
	for i, h := range header {
		// Strip a UTF-8 BOM and stray whitespace from column names.
		t.Columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(file, err)
		}

		line, _ := cr.FieldPos(0)
		if len(record) != len(t.Columns) {
			return nil, malformed(file, line, "expected %d fields, got %d", len(t.Columns), len(record))
		}

		t.Rows = append(t.Rows, record)
		t.lines = append(t.lines, line)
	}

	return t, nil
}

func readError(file string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return malformed(file, pe.Line, "%v", pe.Err)
	}
	return fmt.Errorf("failed to read %s: %w", file, err)
}

// columnSet resolves required column names to positions once per table.
type columnSet struct {
	table *Table
	index map[string]int
}

func (t *Table) require(names ...string) (*columnSet, error) {
	cs := &columnSet{table: t, index: make(map[string]int, len(names))}
	for _, n := range names {
		idx := t.ColumnIndex(n)
		if idx < 0 {
			return nil, malformed(t.File, 1, "missing column %q", n)
		}
		cs.index[n] = idx
	}
	return cs, nil
}

func (cs *columnSet) strAt(row int, name string) string {
	return cs.table.Rows[row][cs.index[name]]
}

func (cs *columnSet) intAt(row int, name string) (int, error) {
	raw := strings.TrimSpace(cs.strAt(row, name))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, malformed(cs.table.File, cs.table.Line(row), "column %q: invalid integer %q", name, raw)
	}
	return v, nil
}

// ints parses several integer columns of one row in order.
func (cs *columnSet) ints(row int, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, n := range names {
		v, err := cs.intAt(row, n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

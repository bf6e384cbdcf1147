// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/lastfm-eda/internal/models"
)

// DuplicatePolicy decides how repeated (user, item) pairs are combined.
type DuplicatePolicy int

const (
	// DuplicateSum adds the weights of repeated pairs.
	DuplicateSum DuplicatePolicy = iota
	// DuplicateReject fails the build on the first repeated pair.
	DuplicateReject
)

// ParseDuplicatePolicy maps a configuration value to a policy. "" means sum.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "sum", "":
		return DuplicateSum, nil
	case "reject":
		return DuplicateReject, nil
	default:
		return DuplicateSum, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateSum:
		return "sum"
	case DuplicateReject:
		return "reject"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// sparseRow holds the non-zero cells of one user, sorted by column index.
type sparseRow struct {
	cols []int
	vals []float64
}

// InteractionMatrix is a users × items weight matrix.
// Storage is sparse per row; At and Row expose it as dense.
type InteractionMatrix struct {
	userIDs []int
	itemIDs []int
	rows    []sparseRow
}

// cell is one interaction resolved to matrix indexes.
type cell struct {
	row, col int
	weight   float64
}

// BuildMatrix builds the interaction matrix. Empty input yields a 0×0 matrix.
func BuildMatrix(records []models.Interaction, policy DuplicatePolicy) (*InteractionMatrix, error) {
	userSet := make(map[int]struct{})
	itemSet := make(map[int]struct{})
	for i, r := range records {
		if r.Weight < 0 || math.IsNaN(r.Weight) || math.IsInf(r.Weight, 0) {
			return nil, fmt.Errorf("%w: record %d (user %d, item %d): %v", ErrInvalidWeight, i, r.UserID, r.ItemID, r.Weight)
		}
		userSet[r.UserID] = struct{}{}
		itemSet[r.ItemID] = struct{}{}
	}

	m := &InteractionMatrix{
		userIDs: sortedKeys(userSet),
		itemIDs: sortedKeys(itemSet),
	}
	m.rows = make([]sparseRow, len(m.userIDs))

	userIdx := indexOf(m.userIDs)
	itemIdx := indexOf(m.itemIDs)

	cells := make([]cell, len(records))
	for i, r := range records {
		cells[i] = cell{row: userIdx[r.UserID], col: itemIdx[r.ItemID], weight: r.Weight}
	}
	// Stable so repeated pairs are summed in input order.
	sort.SliceStable(cells, func(a, b int) bool {
		if cells[a].row != cells[b].row {
			return cells[a].row < cells[b].row
		}
		return cells[a].col < cells[b].col
	})

	for i := 0; i < len(cells); {
		c := cells[i]
		w := c.weight
		j := i + 1
		for ; j < len(cells) && cells[j].row == c.row && cells[j].col == c.col; j++ {
			if policy == DuplicateReject {
				return nil, fmt.Errorf("%w: user %d, item %d", ErrDuplicateInteraction, m.userIDs[c.row], m.itemIDs[c.col])
			}
			w += cells[j].weight
		}
		i = j

		if math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: user %d, item %d: summed weight overflows", ErrInvalidWeight, m.userIDs[c.row], m.itemIDs[c.col])
		}
		if w == 0 {
			continue
		}
		row := &m.rows[c.row]
		row.cols = append(row.cols, c.col)
		row.vals = append(row.vals, w)
	}

	return m, nil
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func indexOf(ids []int) map[int]int {
	idx := make(map[int]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}
	return idx
}

// Rows returns the number of users.
func (m *InteractionMatrix) Rows() int { return len(m.userIDs) }

// Cols returns the number of items.
func (m *InteractionMatrix) Cols() int { return len(m.itemIDs) }

// UserID returns the user id of row i.
func (m *InteractionMatrix) UserID(i int) int { return m.userIDs[i] }

// ItemID returns the item id of column j.
func (m *InteractionMatrix) ItemID(j int) int { return m.itemIDs[j] }

// UserIDs returns a copy of the row ids, ascending.
func (m *InteractionMatrix) UserIDs() []int { return append([]int(nil), m.userIDs...) }

// ItemIDs returns a copy of the column ids, ascending.
func (m *InteractionMatrix) ItemIDs() []int { return append([]int(nil), m.itemIDs...) }

// NNZ returns the number of non-zero cells.
func (m *InteractionMatrix) NNZ() int {
	n := 0
	for _, r := range m.rows {
		n += len(r.cols)
	}
	return n
}

// At returns the weight at row i, column j.
func (m *InteractionMatrix) At(i, j int) float64 {
	r := m.rows[i]
	k := sort.SearchInts(r.cols, j)
	if k < len(r.cols) && r.cols[k] == j {
		return r.vals[k]
	}
	return 0
}

// Row returns row i as a dense slice of length Cols().
func (m *InteractionMatrix) Row(i int) []float64 {
	dense := make([]float64, len(m.itemIDs))
	r := m.rows[i]
	for k, c := range r.cols {
		dense[c] = r.vals[k]
	}
	return dense
}

// unitRow returns the values of row i scaled to Euclidean length 1, or nil
// for a zero row. Values are first divided by the row maximum so squaring
// neither overflows nor underflows.
func (m *InteractionMatrix) unitRow(i int) []float64 {
	vals := m.rows[i].vals
	var peak float64
	for _, v := range vals {
		peak = max(peak, math.Abs(v))
	}
	if peak == 0 {
		return nil
	}

	out := make([]float64, len(vals))
	var sum float64
	for k, v := range vals {
		out[k] = v / peak
		sum += out[k] * out[k]
	}
	// sum >= 1 because the peak cell scales to 1.
	norm := math.Sqrt(sum)
	for k := range out {
		out[k] /= norm
	}
	return out
}

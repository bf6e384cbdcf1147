// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package similarity

import (
	"context"
	"runtime"
	"sync"
)

// SimilarityMatrix is a dense, symmetric users × users matrix.
type SimilarityMatrix struct {
	userIDs []int
	vals    []float64 // row-major, len n*n
}

// Len returns the number of users.
func (s *SimilarityMatrix) Len() int { return len(s.userIDs) }

// UserID returns the user id of row i.
func (s *SimilarityMatrix) UserID(i int) int { return s.userIDs[i] }

// UserIDs returns a copy of the user ids in matrix order.
func (s *SimilarityMatrix) UserIDs() []int { return append([]int(nil), s.userIDs...) }

// At returns S[i][j].
func (s *SimilarityMatrix) At(i, j int) float64 { return s.vals[i*len(s.userIDs)+j] }

// Row returns a copy of row i.
func (s *SimilarityMatrix) Row(i int) []float64 {
	n := len(s.userIDs)
	return append([]float64(nil), s.vals[i*n:(i+1)*n]...)
}

// row returns row i without copying.
func (s *SimilarityMatrix) row(i int) []float64 {
	n := len(s.userIDs)
	return s.vals[i*n : (i+1)*n]
}

// Cosine computes the cosine similarity of every pair of rows of m.
//
// Rows are distributed over workers goroutines (<= 0 means runtime.NumCPU()).
// Each cell is computed by exactly one worker, so the result does not depend
// on the worker count. The context is checked before each row.
func Cosine(ctx context.Context, m *InteractionMatrix, workers int) (*SimilarityMatrix, error) {
	n := m.Rows()
	s := &SimilarityMatrix{
		userIDs: m.UserIDs(),
		vals:    make([]float64, n*n),
	}
	if n == 0 {
		return s, ctx.Err()
	}

	units := make([][]float64, n)
	for i := range units {
		units[i] = m.unitRow(i)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		// Strided assignment balances the shrinking upper-triangle rows.
		go func(first int) {
			defer wg.Done()

			dense := make([]float64, m.Cols())
			for i := first; i < n; i += workers {
				if ctx.Err() != nil {
					return
				}
				s.fillRow(m, units, dense, i)
			}
		}(w)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// fillRow computes S[i][j] for j >= i and mirrors it into S[j][i].
// units holds the unit-length row values; the dot product of two of them is
// the cosine. dense is scratch space of length m.Cols(), all zero on entry and exit.
func (s *SimilarityMatrix) fillRow(m *InteractionMatrix, units [][]float64, dense []float64, i int) {
	n := len(s.userIDs)
	ri := m.rows[i]

	if units[i] == nil {
		// Zero row: the row, the column and the diagonal stay 0.
		return
	}
	s.vals[i*n+i] = 1

	for k, c := range ri.cols {
		dense[c] = units[i][k]
	}

	for j := i + 1; j < n; j++ {
		uj := units[j]
		if uj == nil {
			continue
		}
		var dot float64
		for k, c := range m.rows[j].cols {
			dot += dense[c] * uj[k]
		}
		v := clamp(dot)
		s.vals[i*n+j] = v
		s.vals[j*n+i] = v
	}

	for _, c := range ri.cols {
		dense[c] = 0
	}
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

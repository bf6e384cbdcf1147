// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package similarity

import (
	"fmt"
	"sort"

	"github.com/tomtom215/lastfm-eda/internal/models"
)

// selfSentinel is written over a user's own cell before ranking.
// It is below every valid similarity, so self always sorts last.
const selfSentinel = -2.0

// Neighbors returns, for every user in matrix order, the min(k, n-1) most
// similar other users ordered by similarity descending, then user id ascending.
func Neighbors(s *SimilarityMatrix, k int) ([]models.NeighborList, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	n := s.Len()
	limit := min(k, n-1)
	out := make([]models.NeighborList, n)

	work := make([]float64, n)
	order := make([]int, n)
	for i := 0; i < n; i++ {
		copy(work, s.row(i))
		work[i] = selfSentinel

		for j := range order {
			order[j] = j
		}
		// Matrix order is ascending user id, so the index breaks ties.
		sort.Slice(order, func(a, b int) bool {
			sa, sb := work[order[a]], work[order[b]]
			if sa != sb {
				return sa > sb
			}
			return order[a] < order[b]
		})

		list := models.NeighborList{
			UserID:    s.UserID(i),
			Neighbors: make([]models.Neighbor, 0, max(limit, 0)),
		}
		for _, j := range order[:max(limit, 0)] {
			list.Neighbors = append(list.Neighbors, models.Neighbor{UserID: s.UserID(j), Similarity: work[j]})
		}
		out[i] = list
	}

	return out, nil
}

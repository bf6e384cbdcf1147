// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

// Package similarity computes user-user cosine similarity and k-nearest-neighbor
// lists from (user, item, weight) interactions.
//
// # Data Flow
//
//	[]models.Interaction
//	       ↓ BuildMatrix
//	InteractionMatrix (users × items, sparse rows)
//	       ↓ Cosine
//	SimilarityMatrix (users × users, dense, symmetric)
//	       ↓ Neighbors(k)         ↓ WriteSimilarityTSV
//	[]models.NeighborList         user-pairs-similarity.dat
//	       ↓ WriteNeighborsJSON
//	neighbors-k{k}-users.dat
//
// # Matrix Conventions
//
// Rows are the distinct user ids in ascending order and columns the distinct
// item ids in ascending order. Cells without an interaction are exactly 0.
// Repeated (user, item) pairs are summed under DuplicateSum and rejected with
// ErrDuplicateInteraction under DuplicateReject.
//
// # Similarity
//
// S[i][j] = dot(row_i, row_j) / (‖row_i‖·‖row_j‖), clamped to [-1, 1].
// A user whose row is all zero has similarity 0 with everyone and 0 on the
// diagonal; every other diagonal cell is 1. Only the upper triangle is
// computed and each value is mirrored, so S[i][j] and S[j][i] are the same
// float64. The full n×n matrix is held in memory.
//
// # Neighbors
//
// For each user, the other users are ranked by similarity descending, then
// user id ascending. The user's own cell is overwritten with -2 in a working
// copy of the row before ranking, so it always sorts last and is never
// selected. A list holds min(k, n-1) entries. Because the order is total, the
// list for k1 is a prefix of the list for any k2 > k1.
//
// # Output
//
// WriteSimilarityTSV formats scores with strconv.FormatFloat(v, 'g', -1, 64);
// WriteNeighborsJSON writes user ids as keys in ascending numeric order. The
// same input therefore always produces byte-identical files.
package similarity

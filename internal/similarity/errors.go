// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package similarity

import "errors"

var (
	// ErrDuplicateInteraction is returned by BuildMatrix under DuplicateReject.
	ErrDuplicateInteraction = errors.New("duplicate interaction")

	// ErrInvalidWeight is returned for a negative, NaN or infinite weight.
	ErrInvalidWeight = errors.New("invalid interaction weight")

	// ErrInvalidK is returned by Neighbors when k < 1.
	ErrInvalidK = errors.New("k must be at least 1")

	// ErrUnknownPolicy is returned by ParseDuplicatePolicy.
	ErrUnknownPolicy = errors.New("unknown duplicate policy")
)

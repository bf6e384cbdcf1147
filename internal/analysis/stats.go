// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package analysis

import (
	"math"
	"sort"

	"github.com/tomtom215/lastfm-eda/internal/models"
)

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStd is the standard deviation with ddof=1. NaN below two values.
func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// quantile returns the q-quantile of sorted by linear interpolation between
// the closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// pearson returns the Pearson correlation of x and y. NaN when fewer than two
// pairs or either side has zero variance.
func pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}

	meanX, meanY := mean(x), mean(y)

	var num, denX, denY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		num += dx * dy
		denX += dx * dx
		denY += dy * dy
	}

	if denX == 0 || denY == 0 {
		return math.NaN()
	}
	return num / (math.Sqrt(denX) * math.Sqrt(denY))
}

// zScores fills Z with |value - mean| / std. With an undefined or zero std
// every Z is 0.
func zScores(scores []models.EntityScore) {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = s.Value
	}
	m := mean(values)
	std := sampleStd(values)

	for i := range scores {
		if std == 0 || math.IsNaN(std) {
			scores[i].Z = 0
			continue
		}
		scores[i].Z = math.Abs(scores[i].Value-m) / std
	}
}

func sortedCopy(xs []float64) []float64 {
	out := append([]float64(nil), xs...)
	sort.Float64s(out)
	return out
}

func floatPtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

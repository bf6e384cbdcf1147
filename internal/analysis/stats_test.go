// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package analysis

import (
	"math"
	"testing"

	"github.com/tomtom215/lastfm-eda/internal/models"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestSampleStd(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"two values", []float64{1, 3}, math.Sqrt2},
		{"constant", []float64{4, 4, 4}, 0},
		{"textbook", []float64{2, 4, 4, 4, 5, 5, 7, 9}, math.Sqrt(32.0 / 7.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sampleStd(tt.xs); !approx(got, tt.want) {
				t.Errorf("sampleStd(%v) = %v, want %v", tt.xs, got, tt.want)
			}
		})
	}

	if got := sampleStd([]float64{1}); !math.IsNaN(got) {
		t.Errorf("sampleStd of one value = %v, want NaN", got)
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}

	for _, tt := range tests {
		if got := quantile(sorted, tt.q); !approx(got, tt.want) {
			t.Errorf("quantile(%v) = %v, want %v", tt.q, got, tt.want)
		}
	}
	if got := quantile([]float64{7}, 0.25); got != 7 {
		t.Errorf("quantile of one value = %v, want 7", got)
	}
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name    string
		x, y    []float64
		want    float64
		wantNaN bool
	}{
		{name: "perfect positive", x: []float64{1, 2, 3}, y: []float64{2, 4, 6}, want: 1},
		{name: "perfect negative", x: []float64{1, 2, 3}, y: []float64{3, 2, 1}, want: -1},
		{name: "uncorrelated", x: []float64{1, 2, 3, 4}, y: []float64{1, -1, -1, 1}, want: 0},
		{name: "single pair", x: []float64{1}, y: []float64{2}, wantNaN: true},
		{name: "zero variance", x: []float64{5, 5, 5}, y: []float64{1, 2, 3}, wantNaN: true},
		{name: "length mismatch", x: []float64{1, 2}, y: []float64{1}, wantNaN: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pearson(tt.x, tt.y)
			if tt.wantNaN {
				if !math.IsNaN(got) {
					t.Errorf("pearson() = %v, want NaN", got)
				}
				return
			}
			if !approx(got, tt.want) {
				t.Errorf("pearson() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZScores(t *testing.T) {
	scores := []models.EntityScore{{ID: 1, Value: 1}, {ID: 2, Value: 3}}
	zScores(scores)
	// mean 2, sample std sqrt(2)
	want := 1 / math.Sqrt2
	for _, s := range scores {
		if !approx(s.Z, want) {
			t.Errorf("Z(%d) = %v, want %v", s.ID, s.Z, want)
		}
	}

	constant := []models.EntityScore{{ID: 1, Value: 5}, {ID: 2, Value: 5}}
	zScores(constant)
	for _, s := range constant {
		if s.Z != 0 {
			t.Errorf("constant Z(%d) = %v, want 0", s.ID, s.Z)
		}
	}
}

func TestFloatPtr(t *testing.T) {
	if floatPtr(math.NaN()) != nil || floatPtr(math.Inf(-1)) != nil {
		t.Error("floatPtr should return nil for NaN and Inf")
	}
	if p := floatPtr(1.5); p == nil || *p != 1.5 {
		t.Errorf("floatPtr(1.5) = %v", p)
	}
}

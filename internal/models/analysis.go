// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package models

import "fmt"

// ColumnSummary describes one column of a dataset.
// Numeric columns fill the statistics; text columns fill Top and Freq.
type ColumnSummary struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"` // "numeric" or "text"
	Count  int      `json:"count"`
	Unique int      `json:"unique"`
	Top    *string  `json:"top,omitempty"`
	Freq   *int     `json:"freq,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Std    *float64 `json:"std,omitempty"` // Sample standard deviation, null with fewer than two rows
	Min    *float64 `json:"min,omitempty"`
	P25    *float64 `json:"25%,omitempty"`
	P50    *float64 `json:"50%,omitempty"`
	P75    *float64 `json:"75%,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

// DatasetSummary is the exploration result for one .dat file.
type DatasetSummary struct {
	Name    string          `json:"name"`
	Rows    int             `json:"rows"`
	Columns []ColumnSummary `json:"columns"`
	Head    [][]string      `json:"head"`
}

// EntityScore is an aggregated value per entity (artist total weight, tag usage, ...).
type EntityScore struct {
	ID    int
	Value float64
	Z     float64
}

// MonthlyCount holds distinct users, tags and artists tagged in one month.
type MonthlyCount struct {
	YearMonth string
	Users     int
	Tags      int
	Artists   int
}

// MonthlyTop is one ranked entity within a month.
type MonthlyTop struct {
	YearMonth string
	EntityID  int
	Count     int
}

// Correlation is a Pearson coefficient between two per-user measures.
// R is nil when the coefficient is undefined.
type Correlation struct {
	Name  string   `json:"name"`
	X     string   `json:"x"`
	Y     string   `json:"y"`
	Users int      `json:"users"`
	R     *float64 `json:"r"`
}

func formatYearMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

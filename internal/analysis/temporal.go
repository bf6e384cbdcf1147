// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/tomtom215/lastfm-eda/internal/models"
)

// MonthlyTopSource ranks tagged entities per month. Implemented by *database.DB.
type MonthlyTopSource interface {
	TopByMonth(ctx context.Context, entity string, n int) ([]models.MonthlyTop, error)
}

// TemporalResult lists what the temporal stage produced.
type TemporalResult struct {
	Counts     []models.MonthlyCount
	TopTags    []models.MonthlyTop
	TopArtists []models.MonthlyTop
	Files      []string
}

// MonthlyCounts counts distinct users, tags and artists per year-month,
// ascending by month.
func MonthlyCounts(rows []models.UserTaggedArtist) []models.MonthlyCount {
	type sets struct {
		users, tags, artists map[int]struct{}
	}
	byMonth := make(map[string]*sets)

	for _, r := range rows {
		ym := r.YearMonth()
		s, ok := byMonth[ym]
		if !ok {
			s = &sets{
				users:   make(map[int]struct{}),
				tags:    make(map[int]struct{}),
				artists: make(map[int]struct{}),
			}
			byMonth[ym] = s
		}
		s.users[r.UserID] = struct{}{}
		s.tags[r.TagID] = struct{}{}
		s.artists[r.ArtistID] = struct{}{}
	}

	out := make([]models.MonthlyCount, 0, len(byMonth))
	for ym, s := range byMonth {
		out = append(out, models.MonthlyCount{
			YearMonth: ym,
			Users:     len(s.users),
			Tags:      len(s.tags),
			Artists:   len(s.artists),
		})
	}
	// Zero-padded YYYY-MM sorts chronologically as a string.
	sort.Slice(out, func(a, b int) bool { return out[a].YearMonth < out[b].YearMonth })
	return out
}

// Temporal writes monthly distinct counts and the top n tags and artists per month.
func Temporal(ctx context.Context, tagged []models.UserTaggedArtist, src MonthlyTopSource, dir string, n int) (*TemporalResult, error) {
	res := &TemporalResult{Counts: MonthlyCounts(tagged)}

	rows := make([][]string, len(res.Counts))
	for i, c := range res.Counts {
		rows[i] = []string{c.YearMonth, strconv.Itoa(c.Users), strconv.Itoa(c.Tags), strconv.Itoa(c.Artists)}
	}
	path := filepath.Join(dir, MonthlyCountsFile)
	if err := writeCSV(path, []string{"year_month", "users", "tags", "artists"}, rows); err != nil {
		return nil, err
	}
	res.Files = append(res.Files, path)

	var err error
	if res.TopTags, err = src.TopByMonth(ctx, EntityTag, n); err != nil {
		return nil, fmt.Errorf("failed to rank tags by month: %w", err)
	}
	if path, err = writeMonthlyTop(dir, TopTagsFile, "tagID", res.TopTags); err != nil {
		return nil, err
	}
	res.Files = append(res.Files, path)

	if res.TopArtists, err = src.TopByMonth(ctx, EntityArtist, n); err != nil {
		return nil, fmt.Errorf("failed to rank artists by month: %w", err)
	}
	if path, err = writeMonthlyTop(dir, TopArtistsFile, "artistID", res.TopArtists); err != nil {
		return nil, err
	}
	res.Files = append(res.Files, path)

	return res, nil
}

func writeMonthlyTop(dir, file, idCol string, tops []models.MonthlyTop) (string, error) {
	rows := make([][]string, len(tops))
	for i, t := range tops {
		rows[i] = []string{t.YearMonth, strconv.Itoa(t.EntityID), strconv.Itoa(t.Count)}
	}
	path := filepath.Join(dir, file)
	return path, writeCSV(path, []string{"ym", idCol, "count"}, rows)
}

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

// Outlier entities.
const (
	EntityArtist = "artist"
	EntityTag    = "tag"
	EntityUser   = "user"
)

// OutlierStore deletes rows that reference outlier entities. Implemented by *database.DB.
type OutlierStore interface {
	DeleteUserArtistsByArtist(ctx context.Context, artistIDs []int) (int64, error)
	DeleteUserTaggedArtistsByTag(ctx context.Context, tagIDs []int) (int64, error)
	DeleteUserArtistsByUser(ctx context.Context, userIDs []int) (int64, error)
}

// OutlierResult is the outcome for one entity kind.
type OutlierResult struct {
	Entity  string
	Clean   []models.EntityScore
	Removed []models.EntityScore
	Deleted int64 // rows deleted from the store
	File    string
}

// RemovedIDs returns the ids of the removed entities.
func (r OutlierResult) RemovedIDs() []int {
	ids := make([]int, len(r.Removed))
	for i, s := range r.Removed {
		ids[i] = s.ID
	}
	return ids
}

// ArtistWeights sums listening weight per artist, ordered by artist id.
func ArtistWeights(rows []models.UserArtist) []models.EntityScore {
	return aggregate(len(rows), func(i int) (int, float64) {
		return rows[i].ArtistID, float64(rows[i].Weight)
	})
}

// UserWeights sums listening weight per user, ordered by user id.
func UserWeights(rows []models.UserArtist) []models.EntityScore {
	return aggregate(len(rows), func(i int) (int, float64) {
		return rows[i].UserID, float64(rows[i].Weight)
	})
}

// TagUsage counts tag assignments per tag, ordered by tag id.
func TagUsage(rows []models.UserTaggedArtist) []models.EntityScore {
	return aggregate(len(rows), func(i int) (int, float64) {
		return rows[i].TagID, 1
	})
}

func aggregate(n int, at func(i int) (int, float64)) []models.EntityScore {
	sums := make(map[int]float64)
	for i := 0; i < n; i++ {
		id, v := at(i)
		sums[id] += v
	}

	out := make([]models.EntityScore, 0, len(sums))
	for id, v := range sums {
		out = append(out, models.EntityScore{ID: id, Value: v})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// SplitOutliers computes z-scores and splits scores into kept (z <= threshold)
// and removed entities. Input order is preserved in both.
func SplitOutliers(scores []models.EntityScore, threshold float64) (clean, removed []models.EntityScore) {
	scored := append([]models.EntityScore(nil), scores...)
	zScores(scored)

	clean = make([]models.EntityScore, 0, len(scored))
	for _, s := range scored {
		if s.Z <= threshold {
			clean = append(clean, s)
		} else {
			removed = append(removed, s)
		}
	}
	return clean, removed
}

type outlierTarget struct {
	entity string
	idCol  string
	valCol string
	file   string
	scores []models.EntityScore
	delete func(ctx context.Context, ids []int) (int64, error)
}

// RemoveOutliers flags artists by total weight, tags by usage and users by
// total weight, deletes their rows from store and writes the kept entities to
// CSV files in dir. store may be nil to skip deletion.
func RemoveOutliers(
	ctx context.Context,
	userArtists []models.UserArtist,
	tagged []models.UserTaggedArtist,
	store OutlierStore,
	dir string,
	threshold float64,
) ([]OutlierResult, error) {
	targets := []outlierTarget{
		{entity: EntityArtist, idCol: "artistID", valCol: "total_weight", file: CleanArtistsFile, scores: ArtistWeights(userArtists)},
		{entity: EntityTag, idCol: "tagID", valCol: "usage_count", file: CleanTagsFile, scores: TagUsage(tagged)},
		{entity: EntityUser, idCol: "userID", valCol: "total_weight", file: CleanUsersFile, scores: UserWeights(userArtists)},
	}
	if store != nil {
		targets[0].delete = store.DeleteUserArtistsByArtist
		targets[1].delete = store.DeleteUserTaggedArtistsByTag
		targets[2].delete = store.DeleteUserArtistsByUser
	}

	results := make([]OutlierResult, 0, len(targets))
	for _, t := range targets {
		res := OutlierResult{Entity: t.entity}
		res.Clean, res.Removed = SplitOutliers(t.scores, threshold)

		if t.delete != nil && len(res.Removed) > 0 {
			deleted, err := t.delete(ctx, res.RemovedIDs())
			if err != nil {
				return nil, fmt.Errorf("failed to delete %s outliers: %w", t.entity, err)
			}
			res.Deleted = deleted
		}
		results = append(results, res)
	}

	// Files are written after every delete succeeded.
	for i, t := range targets {
		rows := make([][]string, len(results[i].Clean))
		for j, s := range results[i].Clean {
			rows[j] = []string{strconv.Itoa(s.ID), formatNumber(s.Value)}
		}
		path := filepath.Join(dir, t.file)
		if err := writeCSV(path, []string{t.idCol, t.valCol}, rows); err != nil {
			return nil, err
		}
		results[i].File = path
	}

	return results, nil
}

// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package analysis

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/tomtom215/lastfm-eda/internal/models"
)

// Correlation names.
const (
	CorrelationArtistFriend    = "artist_friend"
	CorrelationListeningFriend = "listening_friend"
)

// FriendCorrelations correlates each user's friend count with their number of
// distinct artists and with their total listening weight. Only users present
// in both inputs take part.
func FriendCorrelations(userArtists []models.UserArtist, friends []models.UserFriend) []models.Correlation {
	friendCounts := make(map[int]int)
	for _, f := range friends {
		friendCounts[f.UserID]++
	}

	artists := make(map[int]map[int]struct{})
	listening := make(map[int]float64)
	for _, r := range userArtists {
		set, ok := artists[r.UserID]
		if !ok {
			set = make(map[int]struct{})
			artists[r.UserID] = set
		}
		set[r.ArtistID] = struct{}{}
		listening[r.UserID] += float64(r.Weight)
	}

	distinct := make(map[int]float64, len(artists))
	for user, set := range artists {
		distinct[user] = float64(len(set))
	}

	return []models.Correlation{
		correlate(CorrelationArtistFriend, "artist_count", distinct, friendCounts),
		correlate(CorrelationListeningFriend, "total_listening", listening, friendCounts),
	}
}

// correlate inner-joins x and friend counts on user id, in ascending user order.
func correlate(name, xName string, x map[int]float64, friendCounts map[int]int) models.Correlation {
	users := make([]int, 0, len(x))
	for user := range x {
		if _, ok := friendCounts[user]; ok {
			users = append(users, user)
		}
	}
	sort.Ints(users)

	xs := make([]float64, len(users))
	ys := make([]float64, len(users))
	for i, user := range users {
		xs[i] = x[user]
		ys[i] = float64(friendCounts[user])
	}

	return models.Correlation{
		Name:  name,
		X:     xName,
		Y:     "friend_count",
		Users: len(users),
		R:     floatPtr(pearson(xs, ys)),
	}
}

// WriteCorrelations writes the coefficients to dir/q5_correlations.json.
// An undefined coefficient is written as null.
func WriteCorrelations(dir string, corrs []models.Correlation) (string, error) {
	path := filepath.Join(dir, CorrelationsFile)
	if err := writeJSON(path, corrs); err != nil {
		return "", fmt.Errorf("failed to write correlations: %w", err)
	}
	return path, nil
}

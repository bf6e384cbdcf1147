// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package models

// Interaction is one (user, item, weight) observation fed to the similarity engine.
type Interaction struct {
	UserID int
	ItemID int
	Weight float64
}

// InteractionsFromUserArtists converts listening rows into interactions keyed by artist.
func InteractionsFromUserArtists(rows []UserArtist) []Interaction {
	out := make([]Interaction, len(rows))
	for i, r := range rows {
		out[i] = Interaction{UserID: r.UserID, ItemID: r.ArtistID, Weight: float64(r.Weight)}
	}
	return out
}

// Neighbor is one entry of a neighbor list.
type Neighbor struct {
	UserID     int
	Similarity float64
}

// NeighborList holds up to k other users ranked by descending similarity.
// Rank is the 1-based position in Neighbors.
type NeighborList struct {
	UserID    int
	Neighbors []Neighbor
}

// IDs returns the neighbor user ids in rank order.
func (n NeighborList) IDs() []int {
	ids := make([]int, len(n.Neighbors))
	for i, nb := range n.Neighbors {
		ids[i] = nb.UserID
	}
	return ids
}

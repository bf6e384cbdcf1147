// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package models

// Artist is a row of artists.dat.
type Artist struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url,omitempty"`        // Empty is stored as NULL
	PictureURL string `json:"pictureURL,omitempty"` // Empty is stored as NULL
}

// Tag is a row of tags.dat.
type Tag struct {
	TagID    int    `json:"tagID"`
	TagValue string `json:"tagValue"`
}

// UserArtist is a row of user_artists.dat: how often a user listened to an artist.
type UserArtist struct {
	UserID   int `json:"userID"`
	ArtistID int `json:"artistID"`
	Weight   int `json:"weight"`
}

// UserTaggedArtist is a row of user_taggedartists.dat.
type UserTaggedArtist struct {
	UserID   int `json:"userID"`
	ArtistID int `json:"artistID"`
	TagID    int `json:"tagID"`
	Day      int `json:"day"`
	Month    int `json:"month"`
	Year     int `json:"year"`
}

// YearMonth formats the tagging date as "YYYY-MM".
func (u UserTaggedArtist) YearMonth() string {
	return formatYearMonth(u.Year, u.Month)
}

// UserFriend is a row of user_friends.dat. The relation is stored in both directions in the file.
type UserFriend struct {
	UserID   int `json:"userID"`
	FriendID int `json:"friendID"`
}

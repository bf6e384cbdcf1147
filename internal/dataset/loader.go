// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/tomtom215/lastfm-eda/internal/config"
	"github.com/tomtom215/lastfm-eda/internal/models"
)

// Dataset table names. They double as relational table names.
const (
	Artists           = "artists"
	Tags              = "tags"
	UserArtists       = "user_artists"
	UserTaggedArtists = "user_taggedartists"
	UserFriends       = "user_friends"
)

// Names lists the dataset tables in load order.
func Names() []string {
	return []string{Artists, Tags, UserArtists, UserTaggedArtists, UserFriends}
}

// Loader reads dataset files from one directory. It holds no parsed state;
// every call re-reads the file.
type Loader struct {
	dir     string
	files   map[string]string
	decoder *encoding.Decoder // nil reads the bytes as UTF-8
}

// NewLoader creates a Loader for the configured directory and file names.
func NewLoader(cfg *config.DatasetConfig) (*Loader, error) {
	l := &Loader{
		dir: cfg.Dir,
		files: map[string]string{
			Artists:           cfg.Artists,
			Tags:              cfg.Tags,
			UserArtists:       cfg.UserArtists,
			UserTaggedArtists: cfg.UserTaggedArtists,
			UserFriends:       cfg.UserFriends,
		},
	}

	switch cfg.Encoding {
	case "latin1", "iso-8859-1":
		l.decoder = charmap.ISO8859_1.NewDecoder()
	case "utf8", "utf-8", "":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, cfg.Encoding)
	}

	return l, nil
}

// Path returns the file path for a dataset table.
func (l *Loader) Path(name string) (string, error) {
	file, ok := l.files[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return filepath.Join(l.dir, file), nil
}

// Table reads the raw cells of a dataset file.
func (l *Loader) Table(ctx context.Context, name string) (*Table, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer closeQuietly(f)

	var r io.Reader = f
	if l.decoder != nil {
		r = l.decoder.Reader(f)
	}

	return readTable(ctx, name, filepath.Base(path), r)
}

// Artists reads artists.dat.
func (l *Loader) Artists(ctx context.Context) ([]models.Artist, error) {
	t, err := l.Table(ctx, Artists)
	if err != nil {
		return nil, err
	}
	cs, err := t.require("id", "name", "url", "pictureURL")
	if err != nil {
		return nil, err
	}

	out := make([]models.Artist, t.Len())
	for i := range t.Rows {
		id, err := cs.intAt(i, "id")
		if err != nil {
			return nil, err
		}
		out[i] = models.Artist{
			ID:         id,
			Name:       cs.strAt(i, "name"),
			URL:        cs.strAt(i, "url"),
			PictureURL: cs.strAt(i, "pictureURL"),
		}
	}
	return out, nil
}

// Tags reads tags.dat.
func (l *Loader) Tags(ctx context.Context) ([]models.Tag, error) {
	t, err := l.Table(ctx, Tags)
	if err != nil {
		return nil, err
	}
	cs, err := t.require("tagID", "tagValue")
	if err != nil {
		return nil, err
	}

	out := make([]models.Tag, t.Len())
	for i := range t.Rows {
		id, err := cs.intAt(i, "tagID")
		if err != nil {
			return nil, err
		}
		out[i] = models.Tag{TagID: id, TagValue: cs.strAt(i, "tagValue")}
	}
	return out, nil
}

// UserArtists reads user_artists.dat.
func (l *Loader) UserArtists(ctx context.Context) ([]models.UserArtist, error) {
	t, err := l.Table(ctx, UserArtists)
	if err != nil {
		return nil, err
	}
	cols := []string{"userID", "artistID", "weight"}
	cs, err := t.require(cols...)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserArtist, t.Len())
	for i := range t.Rows {
		v, err := cs.ints(i, cols...)
		if err != nil {
			return nil, err
		}
		if v[2] < 0 {
			return nil, malformed(t.File, t.Line(i), "negative weight %d", v[2])
		}
		out[i] = models.UserArtist{UserID: v[0], ArtistID: v[1], Weight: v[2]}
	}
	return out, nil
}

// UserTaggedArtists reads user_taggedartists.dat.
func (l *Loader) UserTaggedArtists(ctx context.Context) ([]models.UserTaggedArtist, error) {
	t, err := l.Table(ctx, UserTaggedArtists)
	if err != nil {
		return nil, err
	}
	cols := []string{"userID", "artistID", "tagID", "day", "month", "year"}
	cs, err := t.require(cols...)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserTaggedArtist, t.Len())
	for i := range t.Rows {
		v, err := cs.ints(i, cols...)
		if err != nil {
			return nil, err
		}
		out[i] = models.UserTaggedArtist{
			UserID:   v[0],
			ArtistID: v[1],
			TagID:    v[2],
			Day:      v[3],
			Month:    v[4],
			Year:     v[5],
		}
	}
	return out, nil
}

// UserFriends reads user_friends.dat.
func (l *Loader) UserFriends(ctx context.Context) ([]models.UserFriend, error) {
	t, err := l.Table(ctx, UserFriends)
	if err != nil {
		return nil, err
	}
	cols := []string{"userID", "friendID"}
	cs, err := t.require(cols...)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserFriend, t.Len())
	for i := range t.Rows {
		v, err := cs.ints(i, cols...)
		if err != nil {
			return nil, err
		}
		out[i] = models.UserFriend{UserID: v[0], FriendID: v[1]}
	}
	return out, nil
}

// Interactions reads user_artists.dat as similarity input.
func (l *Loader) Interactions(ctx context.Context) ([]models.Interaction, error) {
	rows, err := l.UserArtists(ctx)
	if err != nil {
		return nil, err
	}
	return models.InteractionsFromUserArtists(rows), nil
}

// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package dataset

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/lastfm-eda/internal/config"
	"github.com/tomtom215/lastfm-eda/internal/models"
)

// testConfig returns a dataset config pointing at an empty temp directory.
func testConfig(t *testing.T, encoding string) *config.DatasetConfig {
	t.Helper()
	return &config.DatasetConfig{
		Dir:               t.TempDir(),
		Encoding:          encoding,
		Artists:           "artists.dat",
		Tags:              "tags.dat",
		UserArtists:       "user_artists.dat",
		UserTaggedArtists: "user_taggedartists.dat",
		UserFriends:       "user_friends.dat",
	}
}

func writeFile(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestLoader(t *testing.T, cfg *config.DatasetConfig) *Loader {
	t.Helper()
	l, err := NewLoader(cfg)
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	return l
}

func TestNewLoader_UnknownEncoding(t *testing.T) {
	cfg := testConfig(t, "ebcdic")
	_, err := NewLoader(cfg)
	if !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("NewLoader() error = %v, want ErrUnknownEncoding", err)
	}
}

func TestLoader_UserArtists(t *testing.T) {
	cfg := testConfig(t, "latin1")
	writeFile(t, cfg.Dir, "user_artists.dat", []byte("userID\tartistID\tweight\n2\t51\t13883\n2\t52\t11690\n3\t51\t0\n"))

	got, err := newTestLoader(t, cfg).UserArtists(context.Background())
	if err != nil {
		t.Fatalf("UserArtists() error = %v", err)
	}

	want := []models.UserArtist{
		{UserID: 2, ArtistID: 51, Weight: 13883},
		{UserID: 2, ArtistID: 52, Weight: 11690},
		{UserID: 3, ArtistID: 51, Weight: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UserArtists() = %v, want %v", got, want)
	}
}

func TestLoader_Interactions(t *testing.T) {
	cfg := testConfig(t, "utf8")
	writeFile(t, cfg.Dir, "user_artists.dat", []byte("userID\tartistID\tweight\n1\t10\t3\n"))

	got, err := newTestLoader(t, cfg).Interactions(context.Background())
	if err != nil {
		t.Fatalf("Interactions() error = %v", err)
	}
	want := []models.Interaction{{UserID: 1, ItemID: 10, Weight: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Interactions() = %v, want %v", got, want)
	}
}

func TestLoader_ColumnsMatchedByName(t *testing.T) {
	cfg := testConfig(t, "utf8")
	writeFile(t, cfg.Dir, "user_friends.dat", []byte("friendID\tuserID\n7\t2\n"))

	got, err := newTestLoader(t, cfg).UserFriends(context.Background())
	if err != nil {
		t.Fatalf("UserFriends() error = %v", err)
	}
	want := []models.UserFriend{{UserID: 2, FriendID: 7}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UserFriends() = %v, want %v", got, want)
	}
}

func TestLoader_Latin1Decoding(t *testing.T) {
	cfg := testConfig(t, "latin1")
	// 0xE9 is "é" and 0xF8 is "ø" in ISO-8859-1.
	content := []byte("id\tname\turl\tpictureURL\n1\tBeyonc\xe9\thttp://www.last.fm/music/x\t\n2\tR\xf8yksopp\t\t\n")
	writeFile(t, cfg.Dir, "artists.dat", content)

	got, err := newTestLoader(t, cfg).Artists(context.Background())
	if err != nil {
		t.Fatalf("Artists() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(Artists()) = %d, want 2", len(got))
	}
	if got[0].Name != "Beyoncé" {
		t.Errorf("Name = %q, want Beyoncé", got[0].Name)
	}
	if got[1].Name != "Røyksopp" {
		t.Errorf("Name = %q, want Røyksopp", got[1].Name)
	}
	if got[0].PictureURL != "" || got[1].URL != "" {
		t.Errorf("empty url fields should stay empty, got %+v", got)
	}
}

func TestLoader_UserTaggedArtists(t *testing.T) {
	cfg := testConfig(t, "latin1")
	writeFile(t, cfg.Dir, "user_taggedartists.dat",
		[]byte("userID\tartistID\ttagID\tday\tmonth\tyear\n2\t52\t13\t1\t4\t2009\n"))

	got, err := newTestLoader(t, cfg).UserTaggedArtists(context.Background())
	if err != nil {
		t.Fatalf("UserTaggedArtists() error = %v", err)
	}
	want := []models.UserTaggedArtist{{UserID: 2, ArtistID: 52, TagID: 13, Day: 1, Month: 4, Year: 2009}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UserTaggedArtists() = %v, want %v", got, want)
	}
	if ym := got[0].YearMonth(); ym != "2009-04" {
		t.Errorf("YearMonth() = %q, want 2009-04", ym)
	}
}

func TestLoader_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		load     func(l *Loader) error
		wantText string
	}{
		{
			name:    "wrong field count",
			file:    "user_artists.dat",
			content: "userID\tartistID\tweight\n1\t2\t3\n1\t2\n",
			load: func(l *Loader) error {
				_, err := l.UserArtists(context.Background())
				return err
			},
			wantText: "user_artists.dat line 3",
		},
		{
			name:    "bad integer",
			file:    "tags.dat",
			content: "tagID\ttagValue\nabc\tmetal\n",
			load: func(l *Loader) error {
				_, err := l.Tags(context.Background())
				return err
			},
			wantText: `tags.dat line 2: column "tagID": invalid integer "abc"`,
		},
		{
			name:    "missing column",
			file:    "user_friends.dat",
			content: "userID\tbuddy\n1\t2\n",
			load: func(l *Loader) error {
				_, err := l.UserFriends(context.Background())
				return err
			},
			wantText: `missing column "friendID"`,
		},
		{
			name:    "negative weight",
			file:    "user_artists.dat",
			content: "userID\tartistID\tweight\n1\t2\t-4\n",
			load: func(l *Loader) error {
				_, err := l.UserArtists(context.Background())
				return err
			},
			wantText: "negative weight -4",
		},
		{
			name:    "empty file",
			file:    "tags.dat",
			content: "",
			load: func(l *Loader) error {
				_, err := l.Tags(context.Background())
				return err
			},
			wantText: "missing header row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, "utf8")
			writeFile(t, cfg.Dir, tt.file, []byte(tt.content))

			err := tt.load(newTestLoader(t, cfg))
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("error = %v, want ErrMalformedRecord", err)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error = %q, want containing %q", err.Error(), tt.wantText)
			}
		})
	}
}

func TestLoader_MissingFile(t *testing.T) {
	cfg := testConfig(t, "latin1")
	_, err := newTestLoader(t, cfg).Tags(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Tags() error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoader_UnknownTable(t *testing.T) {
	cfg := testConfig(t, "latin1")
	_, err := newTestLoader(t, cfg).Table(context.Background(), "plays")
	if !errors.Is(err, ErrUnknownTable) {
		t.Errorf("Table() error = %v, want ErrUnknownTable", err)
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	cfg := testConfig(t, "latin1")
	writeFile(t, cfg.Dir, "tags.dat", []byte("tagID\ttagValue\n1\trock\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestLoader(t, cfg).Tags(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Tags() error = %v, want context.Canceled", err)
	}
}

func TestTable_Accessors(t *testing.T) {
	cfg := testConfig(t, "utf8")
	writeFile(t, cfg.Dir, "tags.dat", []byte("tagID\ttagValue\n1\trock\n2\tjazz\n"))

	tbl, err := newTestLoader(t, cfg).Table(context.Background(), Tags)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
	if tbl.Line(1) != 3 {
		t.Errorf("Line(1) = %d, want 3", tbl.Line(1))
	}
	vals := tbl.Values(tbl.ColumnIndex("tagValue"))
	if !reflect.DeepEqual(vals, []string{"rock", "jazz"}) {
		t.Errorf("Values(tagValue) = %v, want [rock jazz]", vals)
	}
	if idx := tbl.ColumnIndex("missing"); idx != -1 {
		t.Errorf("ColumnIndex(missing) = %d, want -1", idx)
	}
}

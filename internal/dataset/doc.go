// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

/*
Package dataset reads the hetrec2011-lastfm-2k .dat files.

Every file is tab-separated with a header row. The published files are
ISO-8859-1 encoded; the Loader decodes them to UTF-8 with
golang.org/x/text/encoding/charmap unless the dataset encoding is set to utf8.

Files:

	artists.dat             id  name  url  pictureURL
	tags.dat                tagID  tagValue
	user_artists.dat        userID  artistID  weight
	user_taggedartists.dat  userID  artistID  tagID  day  month  year
	user_friends.dat        userID  friendID

Columns are located by header name, so column order in the file does not
matter. A missing column, a row with the wrong number of fields or an
unparsable integer yields an error wrapping ErrMalformedRecord that names the
file and line.

Usage:

	loader, err := dataset.NewLoader(&cfg.Dataset)
	if err != nil {
	    return err
	}
	rows, err := loader.UserArtists(ctx)

Two access levels are provided: Table returns the raw string cells (used by
the exploration stage) and the typed methods return models structs.
*/
package dataset

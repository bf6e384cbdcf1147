// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package dataset

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrMalformedRecord is wrapped by every parse failure.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnknownEncoding is returned by NewLoader for an unsupported encoding name.
	ErrUnknownEncoding = errors.New("unknown dataset encoding")

	// ErrUnknownTable is returned for a name that is not one of the five dataset files.
	ErrUnknownTable = errors.New("unknown dataset table")
)

func malformed(file string, line int, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s line %d: %s", ErrMalformedRecord, file, line, fmt.Sprintf(format, args...))
}

// closeQuietly closes a read-only resource; errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

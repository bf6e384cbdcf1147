// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package config

import (
	"fmt"

	"github.com/tomtom215/lastfm-eda/internal/validation"
)

// Validate checks struct tags first, then the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateKValues(); err != nil {
		return err
	}

	return c.validateStages()
}

// validateKValues rejects repeated k values, which would target the same output table twice.
func (c *Config) validateKValues() error {
	seen := make(map[int]struct{}, len(c.Similarity.KValues))
	for _, k := range c.Similarity.KValues {
		if _, dup := seen[k]; dup {
			return fmt.Errorf("similarity.k_values contains duplicate value %d", k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

func (c *Config) validateStages() error {
	seen := make(map[string]struct{}, len(c.Pipeline.Stages))
	for _, s := range c.Pipeline.Stages {
		if _, dup := seen[s]; dup {
			return fmt.Errorf("pipeline.stages contains duplicate stage %q", s)
		}
		seen[s] = struct{}{}
	}
	return nil
}

// StageEnabled reports whether the named stage is configured to run.
func (c *Config) StageEnabled(stage string) bool {
	for _, s := range c.Pipeline.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

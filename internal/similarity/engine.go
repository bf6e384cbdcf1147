// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package similarity

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lastfm-eda/internal/database"
	"github.com/tomtom215/lastfm-eda/internal/logging"
	"github.com/tomtom215/lastfm-eda/internal/models"
)

// InteractionSource supplies similarity input. Implemented by the dataset
// loader (user_artists.dat) and the database (user_artists table).
type InteractionSource interface {
	Interactions(ctx context.Context) ([]models.Interaction, error)
}

// Store persists similarity results. Implemented by *database.DB.
type Store interface {
	EnsureSimilarityTables(ctx context.Context, ks []int) error
	InsertSimilarityPairs(ctx context.Context, m database.PairMatrix) (database.InsertStats, error)
	InsertNeighbors(ctx context.Context, k int, lists []models.NeighborList) (database.InsertStats, error)
}

// Options configures an Engine run.
type Options struct {
	KValues   []int
	Policy    DuplicatePolicy
	Workers   int
	OutputDir string
}

// Result summarizes an Engine run.
type Result struct {
	Users        int
	Items        int
	NonZero      int
	Pairs        database.InsertStats
	Neighbors    map[int]database.InsertStats
	Files        []string
	CosineTime   time.Duration
	NeighborSets map[int][]models.NeighborList
}

// Engine runs the similarity stage: load, build, compute, export, persist.
type Engine struct {
	opts   Options
	source InteractionSource
	store  Store
	logger zerolog.Logger
}

// NewEngine creates an Engine. store may be nil to skip persistence.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(opts Options, source InteractionSource, store Store, logger zerolog.Logger) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("similarity engine requires an interaction source")
	}
	for _, k := range opts.KValues {
		if k < 1 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
		}
	}

	return &Engine{
		opts:   opts,
		source: source,
		store:  store,
		logger: logging.Component(logger, "similarity"),
	}, nil
}

// Run executes the stage once. Nothing is reused between runs.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	records, err := e.source.Interactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	m, err := BuildMatrix(records, e.opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("failed to build interaction matrix: %w", err)
	}

	res := &Result{
		Users:        m.Rows(),
		Items:        m.Cols(),
		NonZero:      m.NNZ(),
		Neighbors:    make(map[int]database.InsertStats, len(e.opts.KValues)),
		NeighborSets: make(map[int][]models.NeighborList, len(e.opts.KValues)),
	}
	e.logger.Info().
		Int("records", len(records)).
		Int("users", res.Users).
		Int("items", res.Items).
		Int("non_zero", res.NonZero).
		Str("duplicate_policy", e.opts.Policy.String()).
		Msg("Interaction matrix built")

	start := time.Now()
	s, err := Cosine(ctx, m, e.opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to compute cosine similarity: %w", err)
	}
	res.CosineTime = time.Since(start)
	e.logger.Info().Dur("duration", res.CosineTime).Msg("Similarity matrix computed")

	path, err := WriteSimilarityFile(e.opts.OutputDir, s)
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, path)

	if e.store != nil {
		if err := e.store.EnsureSimilarityTables(ctx, e.opts.KValues); err != nil {
			return nil, err
		}
		if res.Pairs, err = e.store.InsertSimilarityPairs(ctx, s); err != nil {
			return nil, err
		}
		e.logger.Info().
			Int("inserted", res.Pairs.Inserted).
			Int("duplicates", res.Pairs.Ignored).
			Msg("Similarity pairs stored")
	}

	for _, k := range e.opts.KValues {
		lists, err := Neighbors(s, k)
		if err != nil {
			return nil, err
		}
		res.NeighborSets[k] = lists

		path, err := WriteNeighborsFile(e.opts.OutputDir, k, lists)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, path)

		if e.store != nil {
			stats, err := e.store.InsertNeighbors(ctx, k, lists)
			if err != nil {
				return nil, err
			}
			res.Neighbors[k] = stats
		}

		e.logger.Info().Int("k", k).Int("users", len(lists)).Str("file", path).Msg("Neighbor lists written")
	}

	return res, nil
}

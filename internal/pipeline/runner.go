// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/lastfm-eda/internal/analysis"
	"github.com/tomtom215/lastfm-eda/internal/config"
	"github.com/tomtom215/lastfm-eda/internal/database"
	"github.com/tomtom215/lastfm-eda/internal/dataset"
	"github.com/tomtom215/lastfm-eda/internal/logging"
	"github.com/tomtom215/lastfm-eda/internal/metrics"
	"github.com/tomtom215/lastfm-eda/internal/models"
	"github.com/tomtom215/lastfm-eda/internal/similarity"
)

// Stage names, in canonical order.
const (
	StageSchema      = "schema"
	StageIngest      = "ingest"
	StageExplore     = "explore"
	StageOutliers    = "outliers"
	StageTemporal    = "temporal"
	StageSimilarity  = "similarity"
	StageCorrelation = "correlation"
)

// Source reads the dataset files. Implemented by *dataset.Loader.
type Source interface {
	analysis.TableSource
	similarity.InteractionSource
	Artists(ctx context.Context) ([]models.Artist, error)
	Tags(ctx context.Context) ([]models.Tag, error)
	UserArtists(ctx context.Context) ([]models.UserArtist, error)
	UserTaggedArtists(ctx context.Context) ([]models.UserTaggedArtist, error)
	UserFriends(ctx context.Context) ([]models.UserFriend, error)
}

// Store is the relational store. Implemented by *database.DB.
type Store interface {
	analysis.OutlierStore
	analysis.MonthlyTopSource
	similarity.Store
	similarity.InteractionSource
	CreateSchema(ctx context.Context, reset bool) error
	InsertArtists(ctx context.Context, rows []models.Artist) (database.InsertStats, error)
	InsertTags(ctx context.Context, rows []models.Tag) (database.InsertStats, error)
	InsertUserArtists(ctx context.Context, rows []models.UserArtist) (database.InsertStats, error)
	InsertUserTaggedArtists(ctx context.Context, rows []models.UserTaggedArtist) (database.InsertStats, error)
	InsertUserFriends(ctx context.Context, rows []models.UserFriend) (database.InsertStats, error)
}

// StageResult records one executed stage.
type StageResult struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Report summarizes a pipeline run.
type Report struct {
	RunID  string
	Stages []StageResult
}

// Runner executes the configured stages sequentially in canonical order.
type Runner struct {
	cfg    *config.Config
	source Source
	store  Store
	logger zerolog.Logger
	stages []stage
}

type stage struct {
	name string
	run  func(ctx context.Context) error
}

// NewRunner creates a Runner. Every dependency is explicit; no dataset state
// is kept between runs.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRunner(cfg *config.Config, source Source, store Store, logger zerolog.Logger) *Runner {
	r := &Runner{
		cfg:    cfg,
		source: source,
		store:  store,
		logger: logging.Component(logger, "pipeline"),
	}
	r.stages = []stage{
		{StageSchema, r.runSchema},
		{StageIngest, r.runIngest},
		{StageExplore, r.runExplore},
		{StageOutliers, r.runOutliers},
		{StageTemporal, r.runTemporal},
		{StageSimilarity, r.runSimilarity},
		{StageCorrelation, r.runCorrelation},
	}
	return r
}

// Run executes every enabled stage. The first failing stage aborts the run.
func (r *Runner) Run(ctx context.Context) (report *Report, err error) {
	report = &Report{RunID: logging.RunIDFromContext(ctx)}
	if report.RunID == "" {
		report.RunID = logging.NewRunID()
		ctx = logging.ContextWithRunID(ctx, report.RunID)
	}
	ctx = logging.ContextWithLogger(ctx, r.logger)
	logger := logging.Ctx(ctx)

	defer func() { metrics.RecordRun(err) }()

	if err := os.MkdirAll(r.cfg.Output.Dir, 0o750); err != nil {
		return report, fmt.Errorf("failed to create output directory %s: %w", r.cfg.Output.Dir, err)
	}

	logger.Info().Strs("stages", r.cfg.Pipeline.Stages).Str("output_dir", r.cfg.Output.Dir).Msg("Pipeline starting")
	start := time.Now()

	for _, s := range r.stages {
		if !r.cfg.StageEnabled(s.name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		logger.Info().Str("stage", s.name).Msg("Stage starting")
		stageStart := time.Now()
		stageErr := s.run(ctx)
		elapsed := time.Since(stageStart)

		metrics.RecordStage(s.name, elapsed, stageErr)
		report.Stages = append(report.Stages, StageResult{Name: s.name, Duration: elapsed, Err: stageErr})

		if stageErr != nil {
			logger.Error().Err(stageErr).Str("stage", s.name).Dur("duration", elapsed).Msg("Stage failed")
			return report, fmt.Errorf("stage %s: %w", s.name, stageErr)
		}
		logger.Info().Str("stage", s.name).Dur("duration", elapsed).Msg("Stage complete")
	}

	logger.Info().Dur("duration", time.Since(start)).Int("stages", len(report.Stages)).Msg("Pipeline complete")
	return report, nil
}

// Compile-time interface checks.
var (
	_ Source = (*dataset.Loader)(nil)
	_ Store  = (*database.DB)(nil)
)

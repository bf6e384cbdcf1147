// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

package pipeline

import (
	"context"
	"fmt"

	"github.com/tomtom215/lastfm-eda/internal/analysis"
	"github.com/tomtom215/lastfm-eda/internal/database"
	"github.com/tomtom215/lastfm-eda/internal/dataset"
	"github.com/tomtom215/lastfm-eda/internal/logging"
	"github.com/tomtom215/lastfm-eda/internal/metrics"
	"github.com/tomtom215/lastfm-eda/internal/similarity"
)

func (r *Runner) runSchema(ctx context.Context) error {
	if err := r.store.CreateSchema(ctx, r.cfg.Database.Reset); err != nil {
		return err
	}
	if err := r.store.EnsureSimilarityTables(ctx, r.cfg.Similarity.KValues); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Bool("reset", r.cfg.Database.Reset).Ints("k_values", r.cfg.Similarity.KValues).Msg("Schema ready")
	return nil
}

// loadAndInsert loads one dataset and inserts it, recording both in metrics.
func loadAndInsert[T any](
	ctx context.Context,
	name string,
	load func(context.Context) ([]T, error),
	insert func(context.Context, []T) (database.InsertStats, error),
) error {
	rows, err := load(ctx)
	if err != nil {
		return err
	}
	metrics.RecordRowsLoaded(name, len(rows))

	stats, err := insert(ctx, rows)
	if err != nil {
		return err
	}
	metrics.RecordInsert(name, stats.Inserted, stats.Ignored)

	logging.Ctx(ctx).Info().
		Str("table", name).
		Int("rows", len(rows)).
		Int("inserted", stats.Inserted).
		Int("duplicates", stats.Ignored).
		Msg("Dataset ingested")
	return nil
}

func (r *Runner) runIngest(ctx context.Context) error {
	if err := loadAndInsert(ctx, dataset.Artists, r.source.Artists, r.store.InsertArtists); err != nil {
		return err
	}
	if err := loadAndInsert(ctx, dataset.Tags, r.source.Tags, r.store.InsertTags); err != nil {
		return err
	}
	if err := loadAndInsert(ctx, dataset.UserArtists, r.source.UserArtists, r.store.InsertUserArtists); err != nil {
		return err
	}
	if err := loadAndInsert(ctx, dataset.UserTaggedArtists, r.source.UserTaggedArtists, r.store.InsertUserTaggedArtists); err != nil {
		return err
	}
	return loadAndInsert(ctx, dataset.UserFriends, r.source.UserFriends, r.store.InsertUserFriends)
}

func (r *Runner) runExplore(ctx context.Context) error {
	summaries, err := analysis.Explore(ctx, r.source, dataset.Names())
	if err != nil {
		return err
	}

	logger := logging.Ctx(ctx)
	for _, s := range summaries {
		event := logger.Info().Str("dataset", s.Name).Int("rows", s.Rows)
		for _, c := range s.Columns {
			event = event.Int(c.Name+"_unique", c.Unique)
		}
		event.Msg("Dataset summary")
	}

	path, err := analysis.WriteSummary(r.cfg.Output.Dir, summaries)
	if err != nil {
		return err
	}
	logger.Info().Str("file", path).Msg("Summary written")
	return nil
}

func (r *Runner) runOutliers(ctx context.Context) error {
	userArtists, err := r.source.UserArtists(ctx)
	if err != nil {
		return err
	}
	tagged, err := r.source.UserTaggedArtists(ctx)
	if err != nil {
		return err
	}

	results, err := analysis.RemoveOutliers(ctx, userArtists, tagged, r.store, r.cfg.Output.Dir, r.cfg.Outliers.ZThreshold)
	if err != nil {
		return err
	}

	deleteTables := map[string]string{
		analysis.EntityArtist: database.TableUserArtists,
		analysis.EntityTag:    database.TableUserTaggedArtists,
		analysis.EntityUser:   database.TableUserArtists,
	}
	logger := logging.Ctx(ctx)
	for _, res := range results {
		metrics.RecordOutliers(res.Entity, len(res.Removed))
		metrics.RecordDelete(deleteTables[res.Entity], res.Deleted)
		logger.Info().
			Str("entity", res.Entity).
			Int("kept", len(res.Clean)).
			Int("removed", len(res.Removed)).
			Int64("rows_deleted", res.Deleted).
			Float64("z_threshold", r.cfg.Outliers.ZThreshold).
			Str("file", res.File).
			Msg("Outliers removed")
	}
	return nil
}

func (r *Runner) runTemporal(ctx context.Context) error {
	tagged, err := r.source.UserTaggedArtists(ctx)
	if err != nil {
		return err
	}

	res, err := analysis.Temporal(ctx, tagged, r.store, r.cfg.Output.Dir, r.cfg.Temporal.TopN)
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Info().
		Int("months", len(res.Counts)).
		Int("top_tags", len(res.TopTags)).
		Int("top_artists", len(res.TopArtists)).
		Strs("files", res.Files).
		Msg("Temporal analysis written")
	return nil
}

func (r *Runner) runSimilarity(ctx context.Context) error {
	policy, err := similarity.ParseDuplicatePolicy(r.cfg.Similarity.DuplicatePolicy)
	if err != nil {
		return err
	}

	var source similarity.InteractionSource = r.source
	if r.cfg.Similarity.Source == "database" {
		source = r.store
	}

	engine, err := similarity.NewEngine(similarity.Options{
		KValues:   r.cfg.Similarity.KValues,
		Policy:    policy,
		Workers:   r.cfg.Similarity.Workers,
		OutputDir: r.cfg.Output.Dir,
	}, source, r.store, *logging.Ctx(ctx))
	if err != nil {
		return fmt.Errorf("failed to create similarity engine: %w", err)
	}

	res, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	metrics.RecordSimilarity(res.Users, res.Items, res.NonZero, res.CosineTime)
	metrics.RecordInsert(database.TableUserPairsSimilarity, res.Pairs.Inserted, res.Pairs.Ignored)
	for _, k := range r.cfg.Similarity.KValues {
		metrics.RecordNeighborLists(k, len(res.NeighborSets[k]))
		stats := res.Neighbors[k]
		metrics.RecordInsert(database.NeighborTable(k), stats.Inserted, stats.Ignored)
	}
	return nil
}

func (r *Runner) runCorrelation(ctx context.Context) error {
	userArtists, err := r.source.UserArtists(ctx)
	if err != nil {
		return err
	}
	friends, err := r.source.UserFriends(ctx)
	if err != nil {
		return err
	}

	corrs := analysis.FriendCorrelations(userArtists, friends)
	logger := logging.Ctx(ctx)
	for _, c := range corrs {
		event := logger.Info().Str("name", c.Name).Int("users", c.Users)
		if c.R != nil {
			event = event.Str("r", fmt.Sprintf("%.4f", *c.R))
		} else {
			event = event.Str("r", "undefined")
		}
		event.Msg("Friend correlation")
	}

	path, err := analysis.WriteCorrelations(r.cfg.Output.Dir, corrs)
	if err != nil {
		return err
	}
	logger.Info().Str("file", path).Msg("Correlations written")
	return nil
}

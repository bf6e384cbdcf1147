// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

/*
Package models defines the data structures shared by the pipeline stages.

Key Components:

  - Dataset records: Artist, Tag, UserArtist, UserTaggedArtist, UserFriend,
    one struct per row of the hetrec2011-lastfm-2k .dat files
  - Interaction: the (user, item, weight) triple consumed by the similarity engine
  - NeighborList: a user's ranked nearest neighbors
  - Analysis results: ColumnSummary, DatasetSummary, EntityScore, MonthlyCount,
    MonthlyTop, Correlation

The models carry json tags where a stage serializes them to an output file.
*/
package models

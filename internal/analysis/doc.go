// LastFM EDA - Exploratory Data Analysis of the LastFM Listening Dataset
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lastfm-eda

/*
Package analysis implements the exploratory stages of the pipeline.

  - Explore: per-column descriptive statistics and the first rows of every
    dataset file (q1_summary.json).
  - RemoveOutliers: z-score filtering of artists by total weight, tags by
    usage count and users by total weight. Outliers are deleted from the
    relational store and the kept entities are written to q2_clean_*.csv.
  - Temporal: distinct users, tags and artists per month
    (q3_monthly_counts.csv) and the top tags and artists per month
    (q3_top5_*.csv).
  - FriendCorrelations: Pearson correlation between friend count and
    listening breadth or volume (q5_correlations.json).

Statistics follow the usual sample conventions: standard deviation uses
n-1, quartiles interpolate linearly between closest ranks. An undefined
statistic (too few values, zero variance) is reported as null, never NaN.

Every function takes its inputs explicitly; nothing is cached between calls.
*/
package analysis

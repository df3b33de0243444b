// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package benchcharts turns CSV benchmark results into grids of comparison
// line charts. Two kinds of grid are supported: cluster grids, which show
// strong and weak scaling of each metric across process counts, and
// single-node grids, which show each metric across image sizes. Every chart in
// a grid carries one line per device.
//
// A [Builder] loads the CSV files named by a [Config], reduces repeated trials
// to one value per data point with a configurable policy, and assembles the
// resulting series into a [Grid]. Data points without any matching rows are
// kept as explicitly absent values so that renderers can show them as gaps
// instead of zeros. Rendering of a Grid lives outside this package.
package benchcharts

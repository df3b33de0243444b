// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts

import (
	"fmt"
	"slices"

	"github.com/montanaflynn/stats"
	"golang.org/x/perf/benchmath"
)

// A ReduceFunc collapses the means of repeated trials of one data point into
// a single representative value. It is never called with an empty slice.
type ReduceFunc func(means []float64) (float64, error)

// Names of the reduce policies understood by [ParseReduce].
const (
	ReduceMax    = "max"
	ReduceMin    = "min"
	ReduceMean   = "mean"
	ReduceMedian = "median"
	ReduceUnique = "unique"
)

// ReducePolicies lists the accepted reduce policy names.
var ReducePolicies = []string{ReduceMax, ReduceMin, ReduceMean, ReduceMedian, ReduceUnique}

// ParseReduce returns the ReduceFunc for a policy name. The empty name selects
// [ReduceMax].
func ParseReduce(name string) (ReduceFunc, error) {
	switch name {
	case "", ReduceMax:
		return Max, nil
	case ReduceMin:
		return Min, nil
	case ReduceMean:
		return Mean, nil
	case ReduceMedian:
		return Median, nil
	case ReduceUnique:
		return Unique, nil
	default:
		return nil, fmt.Errorf("%w: reduce %q, want one of %v", ErrUnknownPolicy, name, ReducePolicies)
	}
}

// Max returns the slowest trial.
func Max(means []float64) (float64, error) {
	return stats.Max(means)
}

// Min returns the fastest trial.
func Min(means []float64) (float64, error) {
	return stats.Min(means)
}

// Mean returns the arithmetic mean of the trials.
func Mean(means []float64) (float64, error) {
	return stats.Mean(means)
}

// Median returns the median of the trials.
func Median(means []float64) (float64, error) {
	// NewSample sorts its input in place.
	sample := benchmath.NewSample(slices.Clone(means), &benchmath.DefaultThresholds)
	return benchmath.AssumeNothing.Summary(sample, 0.95).Center, nil
}

// Unique rejects repeated trials.
func Unique(means []float64) (float64, error) {
	if len(means) != 1 {
		return 0, fmt.Errorf("%w: %d rows for one data point", ErrDuplicateRow, len(means))
	}
	return means[0], nil
}

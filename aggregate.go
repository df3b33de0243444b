// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts

import (
	"fmt"
	"slices"
	"strconv"
)

// A SizePlan selects the image size measured at each process count: the same
// size everywhere for strong scaling, or one size per process count for weak
// scaling.
type SizePlan struct {
	fixed    Size
	perCount []Size
}

// FixedSize plans strong scaling at size s.
func FixedSize(s Size) SizePlan {
	return SizePlan{fixed: s}
}

// PerProcessCount plans weak scaling; sizes[i] belongs to the i-th process
// count.
func PerProcessCount(sizes []Size) SizePlan {
	return SizePlan{perCount: slices.Clone(sizes)}
}

// SizeAt returns the size planned for the process count at index i.
func (p SizePlan) SizeAt(i int) (Size, error) {
	if p.perCount == nil {
		return p.fixed, nil
	}
	if i < 0 || i >= len(p.perCount) {
		return Size{}, fmt.Errorf("%w: no image size for process count index %d (%d sizes)", ErrInvalidConfig, i, len(p.perCount))
	}
	return p.perCount[i], nil
}

// TableKey identifies the file of one device at one process count.
type TableKey struct {
	Device       string
	ProcessCount int
}

// AggregateRow is one reduced data point of a scaling chart.
type AggregateRow struct {
	Device       string
	ProcessCount string
	Metric       string
	Size         Size
	Mean         Value
}

// ScalingInput describes one scaling aggregation.
type ScalingInput struct {
	Devices       []string
	ProcessCounts []int
	Metrics       []string
	Sizes         SizePlan
	Tables        map[TableKey][]Row
	Reduce        ReduceFunc
}

// AggregateScaling produces one row per device, process count and metric, in
// that nesting order. A combination without matching rows gets an absent Mean.
func AggregateScaling(in ScalingInput) ([]AggregateRow, error) {
	reduce := in.Reduce
	if reduce == nil {
		reduce = Max
	}
	out := make([]AggregateRow, 0, len(in.Devices)*len(in.ProcessCounts)*len(in.Metrics))
	for _, device := range in.Devices {
		for i, processCount := range in.ProcessCounts {
			size, err := in.Sizes.SizeAt(i)
			if err != nil {
				return nil, err
			}
			rows, ok := in.Tables[TableKey{Device: device, ProcessCount: processCount}]
			if !ok {
				return nil, fmt.Errorf("no table loaded for device %q at process count %d", device, processCount)
			}
			for _, metric := range in.Metrics {
				mean, err := reduceMatching(rows, metric, size, reduce)
				if err != nil {
					return nil, fmt.Errorf("device %q, process count %d, metric %q, size %v: %w", device, processCount, metric, size, err)
				}
				out = append(out, AggregateRow{
					Device:       device,
					ProcessCount: strconv.Itoa(processCount),
					Metric:       metric,
					Size:         size,
					Mean:         mean,
				})
			}
		}
	}
	return out, nil
}

func reduceMatching(rows []Row, metric string, size Size, reduce ReduceFunc) (Value, error) {
	var means []float64
	for _, r := range rows {
		if r.Metric == metric && r.Width == size.Width && r.Height == size.Height {
			means = append(means, r.Mean)
		}
	}
	if len(means) == 0 {
		return Value{}, nil
	}
	v, err := reduce(means)
	if err != nil {
		return Value{}, err
	}
	return Some(v), nil
}

// SizedValue is one point of a single-node series.
type SizedValue struct {
	Size Size
	Mean Value
}

// NodeSeries holds the measurements of one metric on one device, ordered by
// width and then height.
type NodeSeries struct {
	Device string
	Metric string
	Points []SizedValue
}

// SingleNodeInput describes one single-node aggregation.
type SingleNodeInput struct {
	Devices []string
	Metrics []string
	Tables  map[string][]Row
	Reduce  ReduceFunc
}

// AggregateSingleNode produces one series per device and metric, in that
// nesting order. Rows sharing a size are reduced to one point. A metric
// missing from a device's table yields a series with no points.
func AggregateSingleNode(in SingleNodeInput) ([]NodeSeries, error) {
	reduce := in.Reduce
	if reduce == nil {
		reduce = Max
	}
	out := make([]NodeSeries, 0, len(in.Devices)*len(in.Metrics))
	for _, device := range in.Devices {
		rows, ok := in.Tables[device]
		if !ok {
			return nil, fmt.Errorf("no table loaded for device %q", device)
		}
		for _, metric := range in.Metrics {
			means := make(map[Size][]float64)
			var sizes []Size
			for _, r := range rows {
				if r.Metric != metric {
					continue
				}
				s := r.Size()
				if _, seen := means[s]; !seen {
					sizes = append(sizes, s)
				}
				means[s] = append(means[s], r.Mean)
			}
			slices.SortFunc(sizes, Size.Compare)

			series := NodeSeries{Device: device, Metric: metric, Points: make([]SizedValue, 0, len(sizes))}
			for _, s := range sizes {
				v, err := reduce(means[s])
				if err != nil {
					return nil, fmt.Errorf("device %q, metric %q, size %v: %w", device, metric, s, err)
				}
				series.Points = append(series.Points, SizedValue{Size: s, Mean: Some(v)})
			}
			out = append(out, series)
		}
	}
	return out, nil
}

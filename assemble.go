// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts

import (
	"fmt"
	"strconv"
)

// MissingPolicy decides what happens to data points without matching rows.
type MissingPolicy int

const (
	// MissingGap keeps the point as absent so the line is drawn with a gap.
	MissingGap MissingPolicy = iota
	// MissingSkip drops the point so the line joins its neighbours.
	MissingSkip
	// MissingError fails assembly.
	MissingError
)

// MissingPolicies lists the accepted missing policy names.
var MissingPolicies = []string{"gap", "skip", "error"}

func (p MissingPolicy) String() string {
	switch p {
	case MissingGap:
		return "gap"
	case MissingSkip:
		return "skip"
	case MissingError:
		return "error"
	default:
		return "MissingPolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

// ParseMissing returns the policy for a name. The empty name selects
// [MissingGap].
func ParseMissing(name string) (MissingPolicy, error) {
	switch name {
	case "", "gap":
		return MissingGap, nil
	case "skip":
		return MissingSkip, nil
	case "error":
		return MissingError, nil
	default:
		return 0, fmt.Errorf("%w: missing %q, want one of %v", ErrUnknownPolicy, name, MissingPolicies)
	}
}

// Assembler turns aggregates into charts. Devices fix the series order and
// color assignment, Metrics the column order.
type Assembler struct {
	Devices []string
	Metrics []string
	// Colors, when not empty, holds one color per device.
	Colors  []Color
	Missing MissingPolicy
}

func (a *Assembler) color(deviceIndex int) Color {
	if deviceIndex < len(a.Colors) {
		return a.Colors[deviceIndex]
	}
	palette := defaultPalette()
	return palette[deviceIndex%len(palette)]
}

func (a *Assembler) point(device, metric, category string, x int, v Value, points []Point) ([]Point, error) {
	if v.Valid {
		return append(points, Point{X: x, Value: v}), nil
	}
	switch a.Missing {
	case MissingSkip:
		return points, nil
	case MissingError:
		return nil, fmt.Errorf("%w: device %q, metric %q at %s", ErrMissingValue, device, metric, category)
	default:
		return append(points, Point{X: x}), nil
	}
}

// ScalingRow builds one chart per metric from the output of
// [AggregateScaling], with the process counts as categories.
func (a *Assembler) ScalingRow(rows []AggregateRow, processCounts []int, subtitle string) ([]*Chart, error) {
	categories := make([]string, len(processCounts))
	for i, pc := range processCounts {
		categories[i] = strconv.Itoa(pc)
	}

	type key struct{ device, processCount, metric string }
	means := make(map[key]Value, len(rows))
	for _, r := range rows {
		means[key{r.Device, r.ProcessCount, r.Metric}] = r.Mean
	}

	charts := make([]*Chart, 0, len(a.Metrics))
	for _, metric := range a.Metrics {
		c := &Chart{
			Title:      metric,
			Subtitle:   subtitle,
			XLabel:     XLabelProcessCount,
			YLabel:     YLabelTime,
			Categories: categories,
			Series:     make([]Series, 0, len(a.Devices)),
		}
		for di, device := range a.Devices {
			s := Series{Label: device, Color: a.color(di)}
			for x, category := range categories {
				var err error
				s.Points, err = a.point(device, metric, category, x, means[key{device, category, metric}], s.Points)
				if err != nil {
					return nil, err
				}
			}
			c.Series = append(c.Series, s)
		}
		charts = append(charts, c)
	}
	return charts, nil
}

// SingleNodeRow builds one chart per metric from the output of
// [AggregateSingleNode], whose points must stay in ascending size order. The
// categories of a chart are the sizes measured by any device, ordered by width
// and then height.
func (a *Assembler) SingleNodeRow(series []NodeSeries, subtitle string) ([]*Chart, error) {
	type key struct{ device, metric string }
	byKey := make(map[key]NodeSeries, len(series))
	for _, s := range series {
		byKey[key{s.Device, s.Metric}] = s
	}

	charts := make([]*Chart, 0, len(a.Metrics))
	for _, metric := range a.Metrics {
		lists := make([][]SizedValue, len(a.Devices))
		for i, device := range a.Devices {
			lists[i] = byKey[key{device, metric}].Points
		}
		sizes := mergeSizes(lists...)
		categories := make([]string, len(sizes))
		for i, s := range sizes {
			categories[i] = s.String()
		}

		c := &Chart{
			Title:      metric,
			Subtitle:   subtitle,
			XLabel:     XLabelImageSize,
			YLabel:     YLabelTime,
			Categories: categories,
			Series:     make([]Series, 0, len(a.Devices)),
		}
		for di, device := range a.Devices {
			values := make(map[Size]Value)
			for _, p := range byKey[key{device, metric}].Points {
				values[p.Size] = p.Mean
			}
			s := Series{Label: device, Color: a.color(di)}
			for x, size := range sizes {
				var err error
				s.Points, err = a.point(device, metric, categories[x], x, values[size], s.Points)
				if err != nil {
					return nil, err
				}
			}
			c.Series = append(c.Series, s)
		}
		charts = append(charts, c)
	}
	return charts, nil
}

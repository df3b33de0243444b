// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts_test

import (
	"slices"
	"testing"

	"github.com/petenewcomb/benchcharts"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func scalingRows() []benchcharts.AggregateRow {
	agg := func(device, pc, metric string, v benchcharts.Value) benchcharts.AggregateRow {
		return benchcharts.AggregateRow{Device: device, ProcessCount: pc, Metric: metric, Mean: v}
	}
	return []benchcharts.AggregateRow{
		agg("cpp", "1", "kerr", benchcharts.Some(8)),
		agg("cpp", "2", "kerr", benchcharts.Some(4)),
		agg("cpp", "4", "kerr", benchcharts.Some(2)),
		agg("cuda", "1", "kerr", benchcharts.Some(1)),
		agg("cuda", "2", "kerr", benchcharts.Value{}),
		agg("cuda", "4", "kerr", benchcharts.Some(0.5)),
	}
}

func TestScalingRowChartShape(t *testing.T) {
	chk := require.New(t)
	asm := &benchcharts.Assembler{
		Devices: []string{"cpp", "cuda"},
		Metrics: []string{"kerr", "minkowski"},
	}
	charts, err := asm.ScalingRow(scalingRows(), []int{1, 2, 4}, benchcharts.StrongScalingTitle)
	chk.NoError(err)
	chk.Len(charts, 2)

	for i, metric := range asm.Metrics {
		c := charts[i]
		chk.Equal(metric, c.Title)
		chk.Equal(benchcharts.StrongScalingTitle, c.Subtitle)
		chk.Equal(benchcharts.XLabelProcessCount, c.XLabel)
		chk.Equal(benchcharts.YLabelTime, c.YLabel)
		chk.Equal([]string{"1", "2", "4"}, c.Categories)
		chk.Len(c.Series, 2)
		for j, device := range asm.Devices {
			chk.Equal(device, c.Series[j].Label)
		}
	}

	cpp, ok := charts[0].SeriesByLabel("cpp")
	chk.True(ok)
	chk.Equal([]benchcharts.Point{
		{X: 0, Value: benchcharts.Some(8)},
		{X: 1, Value: benchcharts.Some(4)},
		{X: 2, Value: benchcharts.Some(2)},
	}, cpp.Points)

	// No aggregate rows at all for minkowski: every point is an explicit gap.
	for _, s := range charts[1].Series {
		chk.Len(s.Points, 3)
		for _, p := range s.Points {
			chk.False(p.Value.Valid)
		}
	}
}

func TestScalingRowMissingPolicies(t *testing.T) {
	build := func(policy benchcharts.MissingPolicy) ([]*benchcharts.Chart, error) {
		asm := &benchcharts.Assembler{
			Devices: []string{"cpp", "cuda"},
			Metrics: []string{"kerr"},
			Missing: policy,
		}
		return asm.ScalingRow(scalingRows(), []int{1, 2, 4}, "")
	}

	t.Run("gap", func(t *testing.T) {
		chk := require.New(t)
		charts, err := build(benchcharts.MissingGap)
		chk.NoError(err)
		cuda, _ := charts[0].SeriesByLabel("cuda")
		chk.Equal([]benchcharts.Point{
			{X: 0, Value: benchcharts.Some(1)},
			{X: 1},
			{X: 2, Value: benchcharts.Some(0.5)},
		}, cuda.Points)
	})

	t.Run("skip", func(t *testing.T) {
		chk := require.New(t)
		charts, err := build(benchcharts.MissingSkip)
		chk.NoError(err)
		cuda, _ := charts[0].SeriesByLabel("cuda")
		chk.Equal([]benchcharts.Point{
			{X: 0, Value: benchcharts.Some(1)},
			{X: 2, Value: benchcharts.Some(0.5)},
		}, cuda.Points)
	})

	t.Run("error", func(t *testing.T) {
		chk := require.New(t)
		_, err := build(benchcharts.MissingError)
		chk.ErrorIs(err, benchcharts.ErrMissingValue)
		chk.ErrorContains(err, `device "cuda"`)
		chk.ErrorContains(err, "at 2")
	})
}

func TestAssemblerColors(t *testing.T) {
	chk := require.New(t)
	red := benchcharts.Color{R: 255}
	blue := benchcharts.Color{B: 255}

	asm := &benchcharts.Assembler{
		Devices: []string{"cpp", "cuda"},
		Metrics: []string{"kerr"},
		Colors:  []benchcharts.Color{red, blue},
	}
	strong, err := asm.ScalingRow(scalingRows(), []int{1, 2, 4}, benchcharts.StrongScalingTitle)
	chk.NoError(err)
	weak, err := asm.ScalingRow(scalingRows(), []int{1, 2, 4}, benchcharts.WeakScalingTitle)
	chk.NoError(err)
	for _, charts := range [][]*benchcharts.Chart{strong, weak} {
		chk.Equal(red, charts[0].Series[0].Color)
		chk.Equal(blue, charts[0].Series[1].Color)
	}

	// Without configured colors each device still keeps a distinct, stable color.
	asm.Colors = nil
	first, err := asm.ScalingRow(scalingRows(), []int{1, 2, 4}, "")
	chk.NoError(err)
	second, err := asm.ScalingRow(scalingRows(), []int{1, 2, 4}, "")
	chk.NoError(err)
	chk.NotEqual(first[0].Series[0].Color, first[0].Series[1].Color)
	chk.Equal(first[0].Series[0].Color, second[0].Series[0].Color)
	chk.Equal(first[0].Series[1].Color, second[0].Series[1].Color)
}

func TestSingleNodeRow(t *testing.T) {
	chk := require.New(t)
	s512 := benchcharts.Size{Width: 512, Height: 512}
	s724 := benchcharts.Size{Width: 724, Height: 724}
	s1024 := benchcharts.Size{Width: 1024, Height: 1024}
	series := []benchcharts.NodeSeries{
		{Device: "cpp", Metric: "kerr", Points: []benchcharts.SizedValue{
			{Size: s512, Mean: benchcharts.Some(1)},
			{Size: s1024, Mean: benchcharts.Some(4)},
		}},
		{Device: "tbb", Metric: "kerr", Points: []benchcharts.SizedValue{
			{Size: s724, Mean: benchcharts.Some(2)},
			{Size: s1024, Mean: benchcharts.Some(3)},
		}},
	}
	asm := &benchcharts.Assembler{Devices: []string{"cpp", "tbb"}, Metrics: []string{"kerr"}}
	charts, err := asm.SingleNodeRow(series, "")
	chk.NoError(err)
	chk.Len(charts, 1)

	c := charts[0]
	chk.Equal("kerr", c.Title)
	chk.Equal(benchcharts.XLabelImageSize, c.XLabel)
	chk.Equal(benchcharts.YLabelTime, c.YLabel)
	chk.Equal([]string{"512x512", "724x724", "1024x1024"}, c.Categories)

	cpp, ok := c.SeriesByLabel("cpp")
	chk.True(ok)
	chk.Equal([]benchcharts.Point{
		{X: 0, Value: benchcharts.Some(1)},
		{X: 1},
		{X: 2, Value: benchcharts.Some(4)},
	}, cpp.Points)

	tbb, ok := c.SeriesByLabel("tbb")
	chk.True(ok)
	chk.Equal([]benchcharts.Point{
		{X: 0},
		{X: 1, Value: benchcharts.Some(2)},
		{X: 2, Value: benchcharts.Some(3)},
	}, tbb.Points)
}

func TestSingleNodeRowCategoriesAreSortedUnion(t *testing.T) {
	devices := []string{"cpp", "omp", "tbb"}
	rapid.Check(t, func(t *rapid.T) {
		var series []benchcharts.NodeSeries
		want := map[string]bool{}
		for _, device := range devices {
			rows := rapid.SliceOf(rapid.Custom(func(t *rapid.T) benchcharts.Row {
				return row("kerr",
					rapid.IntRange(1, 8).Draw(t, "width"),
					rapid.IntRange(1, 8).Draw(t, "height"),
					1)
			})).Draw(t, "rows")
			for _, r := range rows {
				want[r.Size().String()] = true
			}
			agg, err := benchcharts.AggregateSingleNode(benchcharts.SingleNodeInput{
				Devices: []string{device},
				Metrics: []string{"kerr"},
				Tables:  map[string][]benchcharts.Row{device: rows},
			})
			require.NoError(t, err)
			series = append(series, agg...)
		}

		asm := &benchcharts.Assembler{Devices: devices, Metrics: []string{"kerr"}}
		charts, err := asm.SingleNodeRow(series, "")
		require.NoError(t, err)
		categories := charts[0].Categories
		require.Len(t, categories, len(want))

		sizes := make([]benchcharts.Size, len(categories))
		for i, c := range categories {
			require.True(t, want[c], c)
			sizes[i], err = benchcharts.ParseSize(c)
			require.NoError(t, err)
		}
		require.True(t, slices.IsSortedFunc(sizes, benchcharts.Size.Compare))
	})
}

func TestParseMissing(t *testing.T) {
	chk := require.New(t)
	for _, name := range benchcharts.MissingPolicies {
		p, err := benchcharts.ParseMissing(name)
		chk.NoError(err)
		chk.Equal(name, p.String())
	}
	p, err := benchcharts.ParseMissing("")
	chk.NoError(err)
	chk.Equal(benchcharts.MissingGap, p)

	_, err = benchcharts.ParseMissing("zero")
	chk.ErrorIs(err, benchcharts.ErrUnknownPolicy)
}

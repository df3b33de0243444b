// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package htmlrender writes chart grids as an interactive ECharts page.
package htmlrender

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/petenewcomb/benchcharts"
)

// gap is the ECharts placeholder for a missing data point.
const gap = "-"

// Options tunes the generated page.
type Options struct {
	ChartWidth  string
	ChartHeight string
}

// DefaultOptions returns a chart size close to one image tile.
func DefaultOptions() Options {
	return Options{ChartWidth: "480px", ChartHeight: "380px"}
}

func newLine(c *benchcharts.Chart, o *Options) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  o.ChartWidth,
			Height: o.ChartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    c.Title,
			Subtitle: c.Subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:         c.XLabel,
			NameLocation: "middle",
			NameGap:      30,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         c.YLabel,
			NameLocation: "middle",
			NameGap:      50,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:  opts.Bool(true),
			Right: "0%",
			Top:   "10%",
		}),
	)

	line.SetXAxis(c.Categories)
	for _, s := range c.Series {
		// Values are positional, so skipped points still need a slot.
		data := make([]opts.LineData, len(c.Categories))
		for i := range data {
			data[i].Value = gap
		}
		for _, pt := range s.Points {
			if pt.Value.Valid {
				data[pt.X].Value = pt.Value.V
			}
		}
		// A series with fewer points than categories had its absent points
		// skipped, and its line joins across them.
		skipped := len(s.Points) < len(c.Categories)
		line.AddSeries(s.Label, data,
			charts.WithLineChartOpts(opts.LineChart{ConnectNulls: opts.Bool(skipped)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color.Hex()}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color.Hex()}),
		)
	}
	return line
}

// Render writes an HTML page holding one line chart per grid cell, laid out
// in the grid's rows and columns.
func Render(w io.Writer, g *benchcharts.Grid, o Options) error {
	if len(g.Rows) == 0 || g.Columns() == 0 {
		return errors.New("empty grid")
	}
	def := DefaultOptions()
	if o.ChartWidth == "" {
		o.ChartWidth = def.ChartWidth
	}
	if o.ChartHeight == "" {
		o.ChartHeight = def.ChartHeight
	}

	page := components.NewPage()
	page.PageTitle = g.Title
	page.SetLayout(components.PageFlexLayout)
	for _, row := range g.Rows {
		for _, c := range row {
			if c == nil {
				return fmt.Errorf("grid %q has an empty cell", g.Title)
			}
			page.AddCharts(newLine(c, &o))
		}
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return err
	}
	// The flex layout wraps charts to the window width; pin it to the grid's
	// column count so each grid row stays a row.
	html := buf.Bytes()
	style := fmt.Sprintf("<style> .box { display: grid; grid-template-columns: repeat(%d, max-content); justify-content: center; } </style>\n", g.Columns())
	end := bytes.LastIndex(html, []byte("</body>"))
	if end < 0 {
		end = len(html)
	}
	if _, err := w.Write(html[:end]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, style); err != nil {
		return err
	}
	_, err := w.Write(html[end:])
	return err
}

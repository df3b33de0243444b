// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package plotrender draws chart grids as static images with gonum/plot.
package plotrender

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/petenewcomb/benchcharts"
	"golang.org/x/perf/benchunit"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Formats lists the image formats Render accepts.
var Formats = []string{"svg", "png", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// Options tunes the rendered image.
type Options struct {
	// TileWidth and TileHeight size each chart of the grid.
	TileWidth  vg.Length
	TileHeight vg.Length
	// ValueLabels prints each point's value next to it.
	ValueLabels bool
}

// DefaultOptions returns a tile size close to one matplotlib subplot.
func DefaultOptions() Options {
	return Options{
		TileWidth:  4.5 * vg.Inch,
		TileHeight: 3.5 * vg.Inch,
	}
}

var axisColor = color.Gray{128}

func setupPlot(c *benchcharts.Chart) *plot.Plot {
	p := plot.New()

	p.Title.Text = chartTitle(c)
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel

	p.X.Color = axisColor
	p.Y.Color = axisColor
	p.X.Label.TextStyle.Color = axisColor
	p.Y.Label.TextStyle.Color = axisColor
	p.X.Tick.Color = axisColor
	p.Y.Tick.Color = axisColor
	p.X.Tick.Label.Color = axisColor
	p.Y.Tick.Label.Color = axisColor
	p.Legend.TextStyle.Color = axisColor

	xTicks := make([]plot.Tick, len(c.Categories))
	for i, label := range c.Categories {
		xTicks[i] = plot.Tick{Value: float64(i), Label: label}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.X.Min = -0.25
	p.X.Max = float64(max(len(c.Categories)-1, 0)) + 0.25

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = 1 * vg.Millimeter

	return p
}

// chartTitle names the metric and, when set, the row the chart belongs to.
func chartTitle(c *benchcharts.Chart) string {
	if c.Subtitle == "" {
		return c.Title
	}
	return c.Title + " (" + c.Subtitle + ")"
}

// segments splits a series at its absent points.
func segments(s *benchcharts.Series) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for _, pt := range s.Points {
		if !pt.Value.Valid {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(pt.X), Y: pt.Value.V})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func plotLines(c *benchcharts.Chart, opts *Options) (*plot.Plot, error) {
	p := setupPlot(c)
	p.Add(plotter.NewGrid())

	for i := range c.Series {
		s := &c.Series[i]

		style := plotter.DefaultLineStyle
		style.Color = s.Color
		style.Width = vg.Points(1.5)

		for _, xys := range segments(s) {
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", c.Title, s.Label, err)
			}
			line.LineStyle = style

			points, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", c.Title, s.Label, err)
			}
			points.GlyphStyle.Color = s.Color
			points.GlyphStyle.Radius = vg.Points(2)
			p.Add(line, points)

			if opts.ValueLabels {
				labels, err := valueLabels(xys, &p.Y.Label.TextStyle)
				if err != nil {
					return nil, err
				}
				p.Add(labels)
			}
		}

		// The legend gets its own thumbnail so a series that is entirely
		// absent is still listed.
		p.Legend.Add(s.Label, &plotter.Line{LineStyle: style})
	}
	return p, nil
}

func valueLabels(xys plotter.XYs, base *text.Style) (*plotter.Labels, error) {
	texts := make([]string, len(xys))
	for i, xy := range xys {
		texts[i] = benchunit.Scale(xy.Y, benchunit.Decimal)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i] = *base
		labels.TextStyle[i].Font.Size *= 0.7
		labels.TextStyle[i].XAlign = text.XCenter
	}
	labels.Offset = vg.Point{Y: vg.Points(4)}
	return labels, nil
}

// Render draws every chart of g, tiled as in the grid under the grid title,
// and writes the image in the given format to w.
func Render(w io.Writer, g *benchcharts.Grid, format string, opts Options) error {
	rows, cols := len(g.Rows), g.Columns()
	if rows == 0 || cols == 0 {
		return errors.New("empty grid")
	}
	for i, row := range g.Rows {
		if len(row) != cols {
			return fmt.Errorf("grid row %d has %d charts, want %d", i, len(row), cols)
		}
	}
	if opts.TileWidth <= 0 || opts.TileHeight <= 0 {
		def := DefaultOptions()
		opts.TileWidth, opts.TileHeight = def.TileWidth, def.TileHeight
	}

	plots := make([][]*plot.Plot, rows)
	for i, row := range g.Rows {
		plots[i] = make([]*plot.Plot, cols)
		for j, c := range row {
			p, err := plotLines(c, &opts)
			if err != nil {
				return err
			}
			plots[i][j] = p
		}
	}

	img, err := draw.NewFormattedCanvas(vg.Length(cols)*opts.TileWidth, vg.Length(rows)*opts.TileHeight, format)
	if err != nil {
		return err
	}
	dc := draw.New(img)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	if g.Title != "" {
		style := plots[0][0].Title.TextStyle
		style.Font.Size *= 1.25
		style.XAlign = text.XCenter
		style.YAlign = text.YTop
		top := dc.Max.Y - 2*vg.Millimeter
		dc.FillText(style, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: top}, g.Title)
		dc = draw.Crop(dc, 0, 0, 0, -(style.Height(g.Title) + 2*vg.Millimeter))
	}

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      5 * vg.Millimeter,
		PadY:      5 * vg.Millimeter,
		PadTop:    3 * vg.Millimeter,
		PadBottom: 3 * vg.Millimeter,
		PadLeft:   3 * vg.Millimeter,
		PadRight:  3 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	_, err = img.WriteTo(w)
	return err
}

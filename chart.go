// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts

// Axis labels shared by every chart.
const (
	XLabelProcessCount = "Process Count"
	XLabelImageSize    = "Image Size (Pixels)"
	YLabelTime         = "Time (Milliseconds)"
)

// Grid is a figure made of rows of charts. All rows have the same length.
type Grid struct {
	Title string
	Rows  [][]*Chart
}

// Columns returns the length of the longest row.
func (g *Grid) Columns() int {
	n := 0
	for _, row := range g.Rows {
		n = max(n, len(row))
	}
	return n
}

// Chart is a single line chart over categorical X positions.
type Chart struct {
	Title      string
	Subtitle   string
	XLabel     string
	YLabel     string
	Categories []string
	Series     []Series
}

// SeriesByLabel returns the series with the given label.
func (c *Chart) SeriesByLabel(label string) (*Series, bool) {
	for i := range c.Series {
		if c.Series[i].Label == label {
			return &c.Series[i], true
		}
	}
	return nil, false
}

// Series is one line of a chart.
type Series struct {
	Label  string
	Color  Color
	Points []Point
}

// Point places a value at Categories[X] of the owning chart. An absent value
// marks a gap in the line.
type Point struct {
	X     int
	Value Value
}

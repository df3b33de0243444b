// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package render_test

import "github.com/petenewcomb/benchcharts"

func testGrid() *benchcharts.Grid {
	return &benchcharts.Grid{
		Title: "Cluster Benchmarks",
		Rows: [][]*benchcharts.Chart{{{
			Title:      "kerr",
			Subtitle:   benchcharts.StrongScalingTitle,
			XLabel:     benchcharts.XLabelProcessCount,
			YLabel:     benchcharts.YLabelTime,
			Categories: []string{"1", "2"},
			Series: []benchcharts.Series{{
				Label:  "cpp",
				Color:  benchcharts.Color{R: 102, G: 102, B: 102},
				Points: []benchcharts.Point{{X: 0, Value: benchcharts.Some(4)}, {X: 1, Value: benchcharts.Some(2)}},
			}},
		}}},
	}
}

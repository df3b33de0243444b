// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
	"sync"

	"gonum.org/v1/plot/palette/brewer"
	"gopkg.in/yaml.v3"
)

// Color is an opaque RGB display color for a device's series.
type Color struct {
	R, G, B uint8
}

var _ color.Color = Color{}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBf builds a color from unit-interval components.
func RGBf(r, g, b float64) Color {
	return Color{R: unit8(r), G: unit8(g), B: unit8(b)}
}

func unit8(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
}

// ParseColor accepts "#rrggbb".
func ParseColor(s string) (Color, error) {
	h, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || len(h) != 6 {
		return Color{}, fmt.Errorf("color %q: expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// UnmarshalYAML accepts either an [r, g, b] sequence of unit-interval floats
// or a "#rrggbb" string.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var rgb []float64
		if err := node.Decode(&rgb); err != nil {
			return err
		}
		if len(rgb) != 3 {
			return fmt.Errorf("line %d: color must have exactly three components, got %d", node.Line, len(rgb))
		}
		for _, v := range rgb {
			if v < 0 || v > 1 {
				return fmt.Errorf("line %d: color component %v outside [0, 1]", node.Line, v)
			}
		}
		*c = RGBf(rgb[0], rgb[1], rgb[2])
		return nil
	case yaml.ScalarNode:
		parsed, err := ParseColor(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("line %d: cannot decode color", node.Line)
	}
}

// MarshalYAML encodes the color as a "#rrggbb" string.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// brewer's qualitative palettes hold between 3 and 9 colors.
const paletteSize = 9

// defaultPalette returns the colors assigned to devices that have no
// configured color. Index i always maps to the same color.
var defaultPalette = sync.OnceValue(func() []Color {
	p, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", paletteSize)
	if err != nil {
		panic(err)
	}
	colors := make([]Color, 0, paletteSize)
	for _, c := range p.Colors() {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		colors = append(colors, Color{R: rgba.R, G: rgba.G, B: rgba.B})
	}
	return colors
})

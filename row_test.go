// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts_test

import (
	"testing"

	"github.com/petenewcomb/benchcharts"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSize(t *testing.T) {
	chk := require.New(t)
	s := benchcharts.Size{Width: 1448, Height: 724}
	chk.Equal("1448x724", s.String())

	parsed, err := benchcharts.ParseSize(" 1448x724 ")
	chk.NoError(err)
	chk.Equal(s, parsed)

	for _, bad := range []string{"1448", "wx724", "1448xh"} {
		_, err := benchcharts.ParseSize(bad)
		chk.Error(err, bad)
	}

	chk.Negative(benchcharts.Size{Width: 512, Height: 4096}.Compare(benchcharts.Size{Width: 724, Height: 1}))
	chk.Negative(benchcharts.Size{Width: 512, Height: 1}.Compare(benchcharts.Size{Width: 512, Height: 2}))
	chk.Zero(s.Compare(s))
}

func TestSizeYAML(t *testing.T) {
	chk := require.New(t)
	var sizes []benchcharts.Size
	chk.NoError(yaml.Unmarshal([]byte(`[[1, 2], "3x4"]`), &sizes))
	chk.Equal([]benchcharts.Size{{Width: 1, Height: 2}, {Width: 3, Height: 4}}, sizes)

	out, err := yaml.Marshal(benchcharts.Size{Width: 5, Height: 6})
	chk.NoError(err)
	chk.Equal("[5, 6]\n", string(out))

	var s benchcharts.Size
	chk.Error(yaml.Unmarshal([]byte(`[1, 2, 3]`), &s))
	chk.Error(yaml.Unmarshal([]byte(`{w: 1}`), &s))
}

func TestColor(t *testing.T) {
	chk := require.New(t)
	c := benchcharts.RGBf(0.75, 0.225, 0.225)
	chk.Equal(benchcharts.Color{R: 191, G: 57, B: 57}, c)
	chk.Equal("#bf3939", c.Hex())

	parsed, err := benchcharts.ParseColor("#BF3939")
	chk.NoError(err)
	chk.Equal(c, parsed)

	r, g, b, a := c.RGBA()
	chk.Equal(uint32(191*0x101), r)
	chk.Equal(uint32(57*0x101), g)
	chk.Equal(uint32(57*0x101), b)
	chk.Equal(uint32(0xffff), a)

	var colors []benchcharts.Color
	chk.NoError(yaml.Unmarshal([]byte(`[[0, 0.45, 0.75], "#666666"]`), &colors))
	chk.Equal([]benchcharts.Color{{G: 115, B: 191}, {R: 102, G: 102, B: 102}}, colors)

	chk.Error(yaml.Unmarshal([]byte(`[[2, 0, 0]]`), &colors))
	chk.Error(yaml.Unmarshal([]byte(`["red"]`), &colors))
}

func TestValue(t *testing.T) {
	chk := require.New(t)
	chk.False(benchcharts.Value{}.Valid)
	chk.Equal("absent", benchcharts.Value{}.String())
	chk.Equal("15", benchcharts.Some(15).String())
}

// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Row is one record of a benchmark CSV file.
type Row struct {
	Metric string
	Width  int
	Height int
	Mean   float64
}

// Size returns the image size the row was measured at.
func (r Row) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Size is an image size in pixels.
type Size struct {
	Width  int
	Height int
}

// String formats the size as "<width>x<height>".
func (s Size) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// Compare orders sizes by width, then by height.
func (s Size) Compare(o Size) int {
	if c := cmp.Compare(s.Width, o.Width); c != 0 {
		return c
	}
	return cmp.Compare(s.Height, o.Height)
}

// ParseSize parses the "<width>x<height>" form produced by [Size.String].
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return Size{}, fmt.Errorf("size %q: expected <width>x<height>", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Size{}, fmt.Errorf("size %q: width: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Size{}, fmt.Errorf("size %q: height: %w", s, err)
	}
	return Size{Width: width, Height: height}, nil
}

// UnmarshalYAML accepts either a [width, height] sequence or a "WxH" string.
func (s *Size) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var pair []int
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: size must have exactly two elements, got %d", node.Line, len(pair))
		}
		*s = Size{Width: pair[0], Height: pair[1]}
		return nil
	case yaml.ScalarNode:
		parsed, err := ParseSize(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*s = parsed
		return nil
	default:
		return fmt.Errorf("line %d: cannot decode size", node.Line)
	}
}

// MarshalYAML encodes the size as a flow sequence.
func (s Size) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range [2]int{s.Width, s.Height} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)})
	}
	return node, nil
}

// Value is a measurement that may be absent. The zero Value is absent.
type Value struct {
	V     float64
	Valid bool
}

// Some returns a present value.
func Some(v float64) Value {
	return Value{V: v, Valid: true}
}

func (v Value) String() string {
	if !v.Valid {
		return "absent"
	}
	return strconv.FormatFloat(v.V, 'g', -1, 64)
}

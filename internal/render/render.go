// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package render picks a renderer for a chart grid by output format.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/petenewcomb/benchcharts"
	"github.com/petenewcomb/benchcharts/internal/cerr"
	"github.com/petenewcomb/benchcharts/internal/render/htmlrender"
	"github.com/petenewcomb/benchcharts/internal/render/plotrender"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// FormatHTML selects the interactive page.
const FormatHTML = "html"

const ErrUnknownFormat = cerr.Error("unknown output format")

// Options configures every renderer; each one reads only its own fields.
type Options struct {
	Plot plotrender.Options
	HTML htmlrender.Options
}

// Formats lists every accepted format.
func Formats() []string {
	return append([]string{FormatHTML}, plotrender.Formats...)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "htm" {
		ext = FormatHTML
	}
	if !slices.Contains(Formats(), ext) {
		return "", fmt.Errorf("%w: %q (from %s), want one of %v", ErrUnknownFormat, ext, path, Formats())
	}
	return ext, nil
}

// Write renders g in format to w.
func Write(ctx context.Context, w io.Writer, g *benchcharts.Grid, format string, o Options) error {
	_, span := otel.Tracer("benchcharts").Start(ctx, "render",
		trace.WithAttributes(attribute.String("format", format)))
	defer span.End()

	switch {
	case format == FormatHTML:
		return htmlrender.Render(w, g, o.HTML)
	case slices.Contains(plotrender.Formats, format):
		return plotrender.Render(w, g, format, o.Plot)
	default:
		return fmt.Errorf("%w: %q, want one of %v", ErrUnknownFormat, format, Formats())
	}
}

// WriteFile renders g into path, creating its directory if needed. An empty
// format is derived from the path.
func WriteFile(ctx context.Context, path string, g *benchcharts.Grid, format string, o Options) (err error) {
	if format == "" {
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return Write(ctx, f, g, format, o)
}

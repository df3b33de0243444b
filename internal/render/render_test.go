// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package render_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/petenewcomb/benchcharts/internal/render"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	chk := require.New(t)
	for path, want := range map[string]string{
		"charts/cluster.html": "html",
		"charts/cluster.HTM":  "html",
		"out.svg":             "svg",
		"out.PNG":             "png",
		"a/b/c.pdf":           "pdf",
	} {
		got, err := render.FormatFromPath(path)
		chk.NoError(err, path)
		chk.Equal(want, got, path)
	}

	for _, path := range []string{"out.txt", "noext"} {
		_, err := render.FormatFromPath(path)
		chk.ErrorIs(err, render.ErrUnknownFormat, path)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	chk := require.New(t)
	var buf bytes.Buffer
	err := render.Write(context.Background(), &buf, testGrid(), "bmp", render.Options{})
	chk.ErrorIs(err, render.ErrUnknownFormat)
}

func TestWriteFile(t *testing.T) {
	chk := require.New(t)
	dir := t.TempDir()

	htmlPath := filepath.Join(dir, "nested", "cluster.html")
	chk.NoError(render.WriteFile(context.Background(), htmlPath, testGrid(), "", render.Options{}))
	data, err := os.ReadFile(htmlPath)
	chk.NoError(err)
	chk.Contains(string(data), "Cluster Benchmarks")

	// An explicit format wins over the extension.
	svgPath := filepath.Join(dir, "cluster.out")
	chk.NoError(render.WriteFile(context.Background(), svgPath, testGrid(), "svg", render.Options{}))
	data, err = os.ReadFile(svgPath)
	chk.NoError(err)
	chk.Contains(string(data), "<svg")

	err = render.WriteFile(context.Background(), filepath.Join(dir, "cluster.txt"), testGrid(), "", render.Options{})
	chk.ErrorIs(err, render.ErrUnknownFormat)
	_, err = os.Stat(filepath.Join(dir, "cluster.txt"))
	chk.ErrorIs(err, os.ErrNotExist)
}

// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Column names every benchmark CSV file must carry.
const (
	ColumnMetric = "metric"
	ColumnWidth  = "width"
	ColumnHeight = "height"
	ColumnMean   = "mean"
)

// ClusterPath returns the file holding the results of one device at one
// process count.
func ClusterPath(prefix, device string, processCount int) string {
	return prefix + device + "_" + strconv.Itoa(processCount) + ".csv"
}

// SingleNodePath returns the file holding the single-node results of one
// device.
func SingleNodePath(prefix, device string) string {
	return prefix + device + ".csv"
}

// ReadRows parses benchmark CSV data. Columns are located by header name, so
// their order does not matter and unrecognized columns are ignored.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", ErrMissingColumn)
	}
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}
	var cols [4]int
	for i, name := range [4]string{ColumnMetric, ColumnWidth, ColumnHeight, ColumnMean} {
		col, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		cols[i] = col
	}
	metricCol, widthCol, heightCol, meanCol := cols[0], cols[1], cols[2], cols[3]
	last := max(metricCol, widthCol, heightCol, meanCol)

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(record) <= last {
			return nil, fmt.Errorf("%w: line %d: %d fields, need at least %d", ErrMalformedRow, line, len(record), last+1)
		}

		row := Row{Metric: strings.TrimSpace(record[metricCol])}
		if row.Width, err = strconv.Atoi(strings.TrimSpace(record[widthCol])); err != nil {
			return nil, fmt.Errorf("%w: line %d: %s: %w", ErrMalformedRow, line, ColumnWidth, err)
		}
		if row.Height, err = strconv.Atoi(strings.TrimSpace(record[heightCol])); err != nil {
			return nil, fmt.Errorf("%w: line %d: %s: %w", ErrMalformedRow, line, ColumnHeight, err)
		}
		if row.Mean, err = strconv.ParseFloat(strings.TrimSpace(record[meanCol]), 64); err != nil {
			return nil, fmt.Errorf("%w: line %d: %s: %w", ErrMalformedRow, line, ColumnMean, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Loader reads benchmark CSV files, optionally several at once.
type Loader struct {
	open        func(name string) (fs.File, error)
	parallelism int
	logger      *zap.Logger
}

// NewLoader returns a Loader reading from fsys, or from the operating system
// when fsys is nil. At most parallelism files are read at the same time; zero
// means no limit.
func NewLoader(fsys fs.FS, parallelism int, logger *zap.Logger) *Loader {
	l := &Loader{
		open:        func(name string) (fs.File, error) { return os.Open(name) },
		parallelism: parallelism,
		logger:      logger,
	}
	if fsys != nil {
		l.open = fsys.Open
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	return l
}

// LoadFile reads all rows of one file. A missing file yields an error wrapping
// fs.ErrNotExist.
func (l *Loader) LoadFile(path string) ([]Row, error) {
	f, err := l.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug("Loaded benchmark file",
		zap.String("path", path),
		zap.Int("rows", len(rows)))
	return rows, nil
}

// LoadAll reads every file in paths and returns their rows positionally. The
// first failure cancels the loads still pending and is returned.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([][]Row, error) {
	tables := make([][]Row, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if l.parallelism > 0 {
		g.SetLimit(l.parallelism)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, err := l.LoadFile(path)
			if err != nil {
				return err
			}
			tables[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

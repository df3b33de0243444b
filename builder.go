// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts

import (
	"context"
	"io/fs"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Row labels of the cluster grid.
const (
	StrongScalingTitle = "Strong Scaling"
	WeakScalingTitle   = "Weak Scaling"
)

// Builder loads benchmark files and assembles them into chart grids.
type Builder struct {
	cfg     Config
	reduce  ReduceFunc
	missing MissingPolicy
	fsys    fs.FS
	logger  *zap.Logger
	tracer  trace.Tracer
}

// An Option customizes a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for progress and failures.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithFS makes the builder read benchmark files from fsys instead of the
// operating system.
func WithFS(fsys fs.FS) Option {
	return func(b *Builder) {
		b.fsys = fsys
	}
}

// NewBuilder validates the section-independent fields of cfg and returns a
// Builder for it. Each section is validated when its grid is built.
func NewBuilder(cfg Config, opts ...Option) (*Builder, error) {
	if err := cfg.validatePolicies(); err != nil {
		return nil, err
	}
	reduce, err := ParseReduce(cfg.Reduce)
	if err != nil {
		return nil, err
	}
	missing, err := ParseMissing(cfg.Missing)
	if err != nil {
		return nil, err
	}
	b := &Builder{
		cfg:     cfg,
		reduce:  reduce,
		missing: missing,
		logger:  zap.NewNop(),
		tracer:  otel.Tracer("benchcharts"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Config returns the configuration the builder was created with.
func (b *Builder) Config() Config {
	return b.cfg
}

func (b *Builder) loader() *Loader {
	return NewLoader(b.fsys, b.cfg.Parallelism, b.logger)
}

// Cluster builds the two-row grid of strong (row 0) and weak (row 1) scaling
// charts, one column per metric.
func (b *Builder) Cluster(ctx context.Context) (*Grid, error) {
	cc := &b.cfg.Cluster
	ctx, span := b.tracer.Start(ctx, "cluster",
		trace.WithAttributes(
			attribute.StringSlice("devices", cc.Devices),
			attribute.IntSlice("process_counts", cc.ProcessCounts),
		))
	defer span.End()
	if err := cc.Validate(); err != nil {
		return nil, recordError(span, err)
	}

	var keys []TableKey
	var paths []string
	for _, device := range cc.Devices {
		for _, pc := range cc.ProcessCounts {
			keys = append(keys, TableKey{Device: device, ProcessCount: pc})
			paths = append(paths, ClusterPath(cc.FilePrefix, device, pc))
		}
	}
	tables, err := step(ctx, b, "load", func(ctx context.Context) ([][]Row, error) {
		return b.loader().LoadAll(ctx, paths)
	})
	if err != nil {
		return nil, recordError(span, err)
	}
	byKey := make(map[TableKey][]Row, len(keys))
	for i, k := range keys {
		byKey[k] = tables[i]
	}

	asm := &Assembler{Devices: cc.Devices, Metrics: cc.Metrics, Colors: cc.Colors, Missing: b.missing}
	plans := []struct {
		title string
		sizes SizePlan
	}{
		{StrongScalingTitle, FixedSize(cc.StrongScalingSize)},
		{WeakScalingTitle, PerProcessCount(cc.WeakScalingSizes)},
	}
	grid := &Grid{Title: "Cluster Benchmarks"}
	for _, plan := range plans {
		row, err := step(ctx, b, "assemble "+plan.title, func(ctx context.Context) ([]*Chart, error) {
			rows, err := AggregateScaling(ScalingInput{
				Devices:       cc.Devices,
				ProcessCounts: cc.ProcessCounts,
				Metrics:       cc.Metrics,
				Sizes:         plan.sizes,
				Tables:        byKey,
				Reduce:        b.reduce,
			})
			if err != nil {
				return nil, err
			}
			return asm.ScalingRow(rows, cc.ProcessCounts, plan.title)
		})
		if err != nil {
			return nil, recordError(span, err)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

// SingleNode builds the one-row grid of image size charts, one column per
// metric.
func (b *Builder) SingleNode(ctx context.Context) (*Grid, error) {
	sc := &b.cfg.SingleNode
	ctx, span := b.tracer.Start(ctx, "single_node",
		trace.WithAttributes(attribute.StringSlice("devices", sc.Devices)))
	defer span.End()
	if err := sc.Validate(); err != nil {
		return nil, recordError(span, err)
	}

	paths := make([]string, len(sc.Devices))
	for i, device := range sc.Devices {
		paths[i] = sc.Path(device)
	}
	tables, err := step(ctx, b, "load", func(ctx context.Context) ([][]Row, error) {
		return b.loader().LoadAll(ctx, paths)
	})
	if err != nil {
		return nil, recordError(span, err)
	}
	byDevice := make(map[string][]Row, len(sc.Devices))
	for i, device := range sc.Devices {
		byDevice[device] = tables[i]
	}

	row, err := step(ctx, b, "assemble", func(ctx context.Context) ([]*Chart, error) {
		series, err := AggregateSingleNode(SingleNodeInput{
			Devices: sc.Devices,
			Metrics: sc.Metrics,
			Tables:  byDevice,
			Reduce:  b.reduce,
		})
		if err != nil {
			return nil, err
		}
		asm := &Assembler{Devices: sc.Devices, Metrics: sc.Metrics, Colors: sc.Colors, Missing: b.missing}
		return asm.SingleNodeRow(series, "")
	})
	if err != nil {
		return nil, recordError(span, err)
	}
	return &Grid{Title: "Single Node Benchmarks", Rows: [][]*Chart{row}}, nil
}

// step runs fn inside a span and logs its start, duration and outcome.
func step[T any](ctx context.Context, b *Builder, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, span := b.tracer.Start(ctx, name)
	defer span.End()

	b.logger.Debug("Starting step", zap.String("step", name))
	startTime := time.Now()
	result, err := fn(ctx)
	duration := time.Since(startTime)

	if err != nil {
		recordError(span, err)
		b.logger.Error("Step failed",
			zap.String("step", name),
			zap.Duration("duration", duration),
			zap.Error(err))
	} else {
		b.logger.Debug("Step completed",
			zap.String("step", name),
			zap.Duration("duration", duration))
	}
	return result, err
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

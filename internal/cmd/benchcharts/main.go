// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command benchcharts renders benchmark CSV results as comparison charts.
//
//	benchcharts cluster -o charts/cluster.html
//	benchcharts single --config bench.yaml -o charts/single.svg
//	benchcharts config > bench.yaml
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/petenewcomb/benchcharts"
	"github.com/petenewcomb/benchcharts/internal/render"
	"github.com/petenewcomb/benchcharts/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type options struct {
	configPath  string
	logLevel    string
	trace       bool
	format      string
	reduce      string
	missing     string
	parallelism int
	labels      bool

	logger   *zap.Logger
	shutdown func(context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "benchcharts: %v\n", err)
		os.Exit(1)
	}
}

// execute runs the command line args and flushes logs and spans whatever the
// outcome.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root, o := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if closeErr := o.close(context.WithoutCancel(ctx)); err == nil {
		err = closeErr
	}
	return err
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *options) {
	o := &options{}
	root := &cobra.Command{
		Use:           "benchcharts",
		Short:         "Render benchmark CSV results as comparison line charts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := telemetry.NewLogger(o.logLevel)
			if err != nil {
				return err
			}
			o.logger = logger
			if o.trace {
				o.shutdown, err = telemetry.StartTracing(stderr)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "YAML configuration file (default: built-in layout)")
	pf.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.BoolVar(&o.trace, "trace", false, "print trace spans to stderr")

	root.AddCommand(
		newChartCmd(o, "cluster", "Strong and weak scaling across process counts", "charts/cluster.html",
			func(ctx context.Context, b *benchcharts.Builder) (*benchcharts.Grid, error) {
				return b.Cluster(ctx)
			}),
		newChartCmd(o, "single", "Per-device performance across image sizes", "charts/single.html",
			func(ctx context.Context, b *benchcharts.Builder) (*benchcharts.Grid, error) {
				return b.SingleNode(ctx)
			}),
		newConfigCmd(o),
	)
	return root, o
}

func (o *options) close(ctx context.Context) error {
	if o.shutdown != nil {
		if err := o.shutdown(ctx); err != nil {
			return err
		}
		o.shutdown = nil
	}
	if o.logger != nil {
		_ = o.logger.Sync()
	}
	return nil
}

// loadConfig reads the configuration and applies the flags that were set.
// Sections are validated by whoever uses them.
func (o *options) loadConfig(cmd *cobra.Command) (benchcharts.Config, error) {
	cfg := benchcharts.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = benchcharts.LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("reduce") {
		cfg.Reduce = o.reduce
	}
	if flags.Changed("missing") {
		cfg.Missing = o.missing
	}
	if flags.Changed("parallel") {
		cfg.Parallelism = o.parallelism
	}
	return cfg, nil
}

func newChartCmd(o *options, use, short, defaultOutput string,
	build func(context.Context, *benchcharts.Builder) (*benchcharts.Grid, error),
) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runChart(cmd, output, build)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", defaultOutput, "output file; its extension selects the format")
	f.StringVar(&o.format, "format", "", fmt.Sprintf("output format overriding the extension, one of %v", render.Formats()))
	f.BoolVar(&o.labels, "labels", false, "print values next to points in image output")
	o.addPolicyFlags(f)
	return cmd
}

// addPolicyFlags registers the flags that override configuration fields.
func (o *options) addPolicyFlags(f *pflag.FlagSet) {
	f.StringVar(&o.reduce, "reduce", "", fmt.Sprintf("reduce repeated trials, one of %v", benchcharts.ReducePolicies))
	f.StringVar(&o.missing, "missing", "", fmt.Sprintf("treat data points without rows, one of %v", benchcharts.MissingPolicies))
	f.IntVar(&o.parallelism, "parallel", 0, "maximum files loaded at once (0 = unlimited)")
}

func (o *options) runChart(cmd *cobra.Command, output string, build func(context.Context, *benchcharts.Builder) (*benchcharts.Grid, error)) error {
	ctx := cmd.Context()
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}
	b, err := benchcharts.NewBuilder(cfg, benchcharts.WithLogger(o.logger))
	if err != nil {
		return err
	}
	grid, err := build(ctx, b)
	if err != nil {
		return err
	}

	ro := render.Options{}
	ro.Plot.ValueLabels = o.labels
	if err := render.WriteFile(ctx, output, grid, o.format, ro); err != nil {
		return err
	}
	o.logger.Info("Charts generated", zap.String("output", output))
	return nil
}

func newConfigCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return cfg.WriteYAML(cmd.OutOrStdout())
		},
	}
	o.addPolicyFlags(cmd.Flags())
	return cmd
}

// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package benchcharts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config names the benchmark files to read and how to reduce them.
type Config struct {
	Cluster    ClusterConfig    `yaml:"cluster"`
	SingleNode SingleNodeConfig `yaml:"single_node"`
	// Reduce names the policy applied to repeated trials, see ParseReduce.
	Reduce string `yaml:"reduce"`
	// Missing names the policy applied to absent data points, see
	// ParseMissing.
	Missing string `yaml:"missing"`
	// Parallelism bounds concurrent file loads; zero means unbounded.
	Parallelism int `yaml:"parallelism"`
}

// ClusterConfig describes the strong and weak scaling benchmarks. Files are
// found at ClusterPath(FilePrefix, device, processCount).
type ClusterConfig struct {
	FilePrefix        string   `yaml:"file_prefix"`
	Devices           []string `yaml:"devices"`
	Metrics           []string `yaml:"metrics"`
	ProcessCounts     []int    `yaml:"process_counts"`
	StrongScalingSize Size     `yaml:"strong_scaling_size"`
	WeakScalingSizes  []Size   `yaml:"weak_scaling_sizes"`
	Colors            []Color  `yaml:"colors,omitempty"`
}

// SingleNodeConfig describes the single-node benchmarks. Files are found at
// SingleNodePath(FilePrefix, device) unless Files names one explicitly.
type SingleNodeConfig struct {
	FilePrefix string            `yaml:"file_prefix"`
	Devices    []string          `yaml:"devices"`
	Metrics    []string          `yaml:"metrics"`
	Files      map[string]string `yaml:"files,omitempty"`
	Colors     []Color           `yaml:"colors,omitempty"`
}

// Path returns the file holding device's results.
func (c *SingleNodeConfig) Path(device string) string {
	if p, ok := c.Files[device]; ok {
		return p
	}
	return SingleNodePath(c.FilePrefix, device)
}

var defaultMetrics = []string{"minkowski", "schwarzschild", "kerr", "kastor_traschen"}

// DefaultConfig returns the configuration of the stock benchmark layout.
func DefaultConfig() Config {
	return Config{
		Cluster: ClusterConfig{
			FilePrefix:        "../../data/outputs/performance/benchmark_cluster_",
			Devices:           []string{"cpp", "cuda", "omp", "tbb"},
			Metrics:           slices.Clone(defaultMetrics),
			ProcessCounts:     []int{1, 2, 4, 8, 16},
			StrongScalingSize: Size{Width: 1024, Height: 1024},
			WeakScalingSizes: []Size{
				{Width: 512, Height: 512},
				{Width: 724, Height: 724},
				{Width: 1024, Height: 1024},
				{Width: 1448, Height: 1448},
				{Width: 2048, Height: 2048},
			},
			Colors: []Color{
				RGBf(0.4, 0.4, 0.4),
				RGBf(0.45, 0.75, 0),
				RGBf(0.75, 0.225, 0.225),
				RGBf(0, 0.45, 0.75),
			},
		},
		SingleNode: SingleNodeConfig{
			FilePrefix: "../../data/outputs/performance/benchmark_single_",
			Devices:    []string{"cpp", "omp", "tbb", "cuda"},
			Metrics:    slices.Clone(defaultMetrics),
		},
		Reduce:  ReduceMax,
		Missing: MissingGap.String(),
	}
}

// LoadConfig reads a YAML configuration file. Fields it leaves out keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// seriesKeys records which series fields of a section a document sets.
type seriesKeys struct {
	Devices yaml.Node `yaml:"devices"`
	Colors  yaml.Node `yaml:"colors"`
}

// replacesDevices reports whether the document swaps the device list without
// giving colors for it, which leaves the default colors unmatched.
func (k *seriesKeys) replacesDevices() bool {
	return k.Devices.Kind != 0 && k.Colors.Kind == 0
}

// ParseConfig decodes YAML over DefaultConfig. A section whose devices are
// replaced without colors falls back to the default palette. Only the
// section-independent fields are validated here; each section is checked by
// the Builder method that uses it, or all at once by Validate.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	var keys struct {
		Cluster    seriesKeys `yaml:"cluster"`
		SingleNode seriesKeys `yaml:"single_node"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return Config{}, err
	}
	if keys.Cluster.replacesDevices() {
		cfg.Cluster.Colors = nil
	}
	if keys.SingleNode.replacesDevices() {
		cfg.SingleNode.Colors = nil
	}

	if err := cfg.validatePolicies(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteYAML encodes the configuration.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate reports the first inconsistency in any section, wrapped in
// ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.validatePolicies(); err != nil {
		return err
	}
	if err := c.Cluster.Validate(); err != nil {
		return err
	}
	return c.SingleNode.Validate()
}

func (c *Config) validatePolicies() error {
	if _, err := ParseReduce(c.Reduce); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := ParseMissing(c.Missing); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism %d is negative", ErrInvalidConfig, c.Parallelism)
	}
	return nil
}

// Validate reports the first inconsistency of the cluster section, wrapped in
// ErrInvalidConfig.
func (c *ClusterConfig) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("%w: cluster: %s", ErrInvalidConfig, err)
	}
	return nil
}

func (c *ClusterConfig) validate() error {
	if err := validateSeries(c.Devices, c.Metrics, c.Colors); err != nil {
		return err
	}
	if len(c.ProcessCounts) == 0 {
		return errors.New("no process counts")
	}
	for _, pc := range c.ProcessCounts {
		if pc <= 0 {
			return fmt.Errorf("process count %d is not positive", pc)
		}
	}
	if err := validateSize(c.StrongScalingSize); err != nil {
		return fmt.Errorf("strong scaling size: %s", err)
	}
	if len(c.WeakScalingSizes) != len(c.ProcessCounts) {
		return fmt.Errorf("%d weak scaling sizes for %d process counts", len(c.WeakScalingSizes), len(c.ProcessCounts))
	}
	for _, s := range c.WeakScalingSizes {
		if err := validateSize(s); err != nil {
			return fmt.Errorf("weak scaling size: %s", err)
		}
	}
	return nil
}

// Validate reports the first inconsistency of the single-node section,
// wrapped in ErrInvalidConfig.
func (c *SingleNodeConfig) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("%w: single_node: %s", ErrInvalidConfig, err)
	}
	return nil
}

func (c *SingleNodeConfig) validate() error {
	if err := validateSeries(c.Devices, c.Metrics, c.Colors); err != nil {
		return err
	}
	for device := range c.Files {
		if !slices.Contains(c.Devices, device) {
			return fmt.Errorf("file given for unknown device %q", device)
		}
	}
	return nil
}

func validateSeries(devices, metrics []string, colors []Color) error {
	if len(devices) == 0 {
		return errors.New("no devices")
	}
	for i, d := range devices {
		if d == "" {
			return errors.New("empty device name")
		}
		if slices.Contains(devices[:i], d) {
			return fmt.Errorf("duplicate device %q", d)
		}
	}
	if len(metrics) == 0 {
		return errors.New("no metrics")
	}
	if len(colors) != 0 && len(colors) != len(devices) {
		return fmt.Errorf("%d colors for %d devices", len(colors), len(devices))
	}
	return nil
}

func validateSize(s Size) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%v is not positive", s)
	}
	return nil
}

// SPDX-License-Identifier: MIT

// Package config loads the YAML configuration of the qmf binary and turns it
// into options for the transform, device and enumerate packages.
//
// Missing keys keep their Default() values:
//
//	vars: 2
//	selector: ["1", "1"]      # optional, one block per variable
//	tolerance: 0.01
//	enumeration:
//	  small_vars_below: 4
//	  small_chunk: 8
//	  chunk_overrides: {5: 16777216, 6: 67305472}
//	  workers: 0              # 0 → all CPUs
//	  work_group_size: 32
//	  histogram_path: hist.csv
//	log:
//	  level: info
//	  format: text            # text | json
//	metrics:
//	  addr: ""                # e.g. ":9090"; empty disables /metrics
package config

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/MrOnlineCoder/qmf/bitvec"
	"github.com/MrOnlineCoder/qmf/device"
	"github.com/MrOnlineCoder/qmf/enumerate"
	"github.com/MrOnlineCoder/qmf/monotone"
	"github.com/MrOnlineCoder/qmf/transform"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	DefaultHistogramPath = "hist.csv"
)

// Config is the file configuration.
type Config struct {
	Vars        int         `yaml:"vars"`
	Selector    []string    `yaml:"selector,omitempty"`
	Tolerance   float64     `yaml:"tolerance"`
	Enumeration Enumeration `yaml:"enumeration"`
	Log         Log         `yaml:"log"`
	Metrics     Metrics     `yaml:"metrics"`
}

// Enumeration configures chunking, the CPU device and the histogram output.
type Enumeration struct {
	SmallVarsBelow int            `yaml:"small_vars_below"`
	SmallChunk     uint64         `yaml:"small_chunk"`
	ChunkOverrides map[int]uint64 `yaml:"chunk_overrides,omitempty"`
	Workers        int            `yaml:"workers"`
	WorkGroupSize  uint64         `yaml:"work_group_size"`
	HistogramPath  string         `yaml:"histogram_path"`
}

// Log configures the logrus logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Metrics configures the Prometheus endpoint.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Default returns the reference configuration.
func Default() *Config {
	p := enumerate.DefaultPolicy()

	return &Config{
		Vars:      transform.DefaultVars,
		Tolerance: monotone.DefaultTolerance,
		Enumeration: Enumeration{
			SmallVarsBelow: p.SmallVarsBelow,
			SmallChunk:     p.SmallChunk,
			ChunkOverrides: p.Overrides,
			WorkGroupSize:  device.DefaultWorkGroupSize,
			HistogramPath:  DefaultHistogramPath,
		},
		Log: Log{Level: logrus.InfoLevel.String(), Format: FormatText},
	}
}

// Load reads path over Default() and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML over Default() and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse the config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Save writes c as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.Vars < 1 || c.Vars > bitvec.MaxVars {
		return fmt.Errorf("vars=%d outside [1, %d]: %w", c.Vars, bitvec.MaxVars, ErrInvalid)
	}
	if _, err := c.SelectorValue(); err != nil {
		return err
	}
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance < 0 {
		return fmt.Errorf("tolerance=%g: %w", c.Tolerance, ErrInvalid)
	}
	if err := c.Policy().Validate(); err != nil {
		return fmt.Errorf("enumeration: %w: %w", ErrInvalid, err)
	}
	if c.Enumeration.Workers < 0 {
		return fmt.Errorf("enumeration.workers=%d: %w", c.Enumeration.Workers, ErrInvalid)
	}
	if c.Enumeration.WorkGroupSize == 0 {
		return fmt.Errorf("enumeration.work_group_size=0: %w", ErrInvalid)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w: %w", ErrInvalid, err)
	}
	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("log.format=%q: %w", c.Log.Format, ErrInvalid)
	}

	return nil
}

// SelectorValue parses the configured selector; nil when none is set.
func (c *Config) SelectorValue() (transform.Selector, error) {
	if len(c.Selector) == 0 {
		return nil, nil
	}
	sel, err := transform.ParseSelector(c.Selector)
	if err != nil {
		return nil, fmt.Errorf("selector: %w: %w", ErrInvalid, err)
	}
	if err = sel.Validate(c.Vars); err != nil {
		return nil, fmt.Errorf("selector: %w: %w", ErrInvalid, err)
	}

	return sel, nil
}

// Policy returns the configured chunk policy.
func (c *Config) Policy() enumerate.ChunkPolicy {
	overrides := make(map[int]uint64, len(c.Enumeration.ChunkOverrides))
	for n, size := range c.Enumeration.ChunkOverrides {
		overrides[n] = size
	}

	return enumerate.ChunkPolicy{
		SmallVarsBelow: c.Enumeration.SmallVarsBelow,
		SmallChunk:     c.Enumeration.SmallChunk,
		Overrides:      overrides,
	}
}

// Backend returns the CPU backend described by the enumeration section.
func (c *Config) Backend(logger logrus.FieldLogger) *device.CPUBackend {
	return device.NewCPUBackend(
		device.WithWorkers(c.Enumeration.Workers),
		device.WithWorkGroupSize(c.Enumeration.WorkGroupSize),
		device.WithLogger(logger),
	)
}

// Logger builds a logrus logger writing to out.
func (c *Config) Logger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w: %w", ErrInvalid, err)
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	switch c.Log.Format {
	case FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	case FormatText:
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		return nil, fmt.Errorf("log.format=%q: %w", c.Log.Format, ErrInvalid)
	}

	return l, nil
}

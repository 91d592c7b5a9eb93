package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ja7ad/satin/pkg/laser"
	"github.com/ja7ad/satin/pkg/scheduler"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is the run configuration. The YAML keys match the CLI flag names
// where one exists.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	LaserFile string `yaml:"laser_file"`
	PowerFile string `yaml:"power_file"`
	OutputDir string `yaml:"output_dir"`
	Mode      string `yaml:"mode"`
	Workers   int    `yaml:"workers"`
	Chart     bool   `yaml:"chart"`
	Plot      bool   `yaml:"plot"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:   "data",
		LaserFile: laser.DefaultLaserFile,
		PowerFile: laser.DefaultPowerFile,
		OutputDir: ".",
		Mode:      scheduler.Sequential.String(),
		LogLevel:  "info",
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields and ranges.
func (c *Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Policy returns the scheduling policy named by Mode.
func (c *Config) Policy() (scheduler.Policy, error) {
	return scheduler.ParsePolicy(c.Mode)
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

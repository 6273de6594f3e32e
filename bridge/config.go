package bridge

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/signadot/tony-format/go-bridge/format"
	"github.com/signadot/tony-format/go-bridge/objrt"
	"github.com/signadot/tony-format/go-bridge/tree"
)

// Config configures contexts.
type Config struct {
	// Runtime is the foreign runtime. If nil, the process runtime
	// installed with objrt.Init is used.
	Runtime objrt.Service

	// Log receives context lifecycle events and recorded errors. If nil,
	// slog.Default() is used.
	Log *slog.Logger

	// Format is the format offered by Session.Format to callers with no
	// preference of their own.
	Format format.Format

	// MaxDepth bounds the nesting of loaded, encoded and decoded trees.
	MaxDepth int
}

// fileConfig is the on-disk form of Config.
type fileConfig struct {
	Format   string `yaml:"format"`
	MaxDepth *int   `yaml:"maxDepth"`
}

// DefaultConfig returns a Config using the process runtime.
func DefaultConfig() *Config {
	return &Config{
		Format:   format.BinaryFormat,
		MaxDepth: tree.DefaultMaxDepth,
	}
}

// LoadConfig reads a YAML configuration file. Keys left out keep their
// DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	fc := &fileConfig{}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg := DefaultConfig()
	if fc.Format != "" {
		f, err := format.ParseFormat(fc.Format)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.Format = f
	}
	if fc.MaxDepth != nil {
		cfg.MaxDepth = *fc.MaxDepth
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !c.Format.Valid() {
		return fmt.Errorf("invalid config: %w: %d", format.ErrBadFormat, c.Format)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid config: negative maxDepth %d", c.MaxDepth)
	}
	return nil
}

func (c *Config) runtime() (objrt.Service, error) {
	if c.Runtime != nil {
		return c.Runtime, nil
	}
	return objrt.Default()
}

func (c *Config) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.Default()
}

func (c *Config) treeOptions() []tree.Option {
	return []tree.Option{tree.WithLogger(c.logger()), tree.WithMaxDepth(c.MaxDepth)}
}

func configOrDefault(cfg *Config) *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return cfg
}

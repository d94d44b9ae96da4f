package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/rewax/internal/errors"
	"github.com/vango-dev/rewax/pkg/rewax"
	"github.com/vango-dev/rewax/pkg/vdom"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "rewax.yaml"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log handler.
	DefaultLogFormat = "text"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "rewax"
)

// Config represents the complete rewax.yaml configuration.
type Config struct {
	// Diff configures the diff/patch engine.
	Diff DiffConfig `yaml:"diff"`

	// Runtime configures instance behavior.
	Runtime RuntimeConfig `yaml:"runtime"`

	// Log configures the structured logger.
	Log LogConfig `yaml:"log"`

	// Metrics configures Prometheus collectors.
	Metrics MetricsConfig `yaml:"metrics"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DiffConfig mirrors vdom.DiffOptions.
type DiffConfig struct {
	// ValueDiffing emits value/checked updates for form controls.
	ValueDiffing bool `yaml:"valueDiffing"`

	// MaxChildCount replaces elements wholesale above this many children.
	// Zero disables the limit.
	MaxChildCount int `yaml:"maxChildCount"`
}

// RuntimeConfig contains instance settings.
type RuntimeConfig struct {
	// MaxRedrawDrain bounds how many queued re-entrant redraws are drained.
	MaxRedrawDrain int `yaml:"maxRedrawDrain"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`

	// Labels are attached to every series as constant labels.
	Labels map[string]string `yaml:"labels,omitempty"`

	// Buckets overrides the redraw duration histogram buckets. They must be
	// strictly increasing.
	Buckets []float64 `yaml:"buckets,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			MaxRedrawDrain: rewax.DefaultMaxRedrawDrain,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads rewax.yaml from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("R031").
			WithDetail("Could not read " + path).
			Wrap(err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes YAML configuration, applies defaults and validates it.
// Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.New("R030").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid YAML and uses known keys")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("R031").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("R031").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Runtime.MaxRedrawDrain == 0 {
		c.Runtime.MaxRedrawDrain = rewax.DefaultMaxRedrawDrain
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Diff.MaxChildCount < 0 {
		return errors.New("R030").
			WithDetail("diff.maxChildCount must not be negative")
	}
	if c.Runtime.MaxRedrawDrain < 0 {
		return errors.New("R030").
			WithDetail("runtime.maxRedrawDrain must not be negative")
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("R030").
			WithDetailf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("R030").
			WithDetailf("log.format %q is not one of text, json", c.Log.Format)
	}
	for i := 1; i < len(c.Metrics.Buckets); i++ {
		if c.Metrics.Buckets[i] <= c.Metrics.Buckets[i-1] {
			return errors.New("R030").
				WithDetailf("metrics.buckets must be strictly increasing, got %v", c.Metrics.Buckets)
		}
	}
	return nil
}

// RuntimeConfig converts the file settings into a runtime configuration.
func (c *Config) RuntimeConfig() rewax.Config {
	return rewax.Config{
		Diff: vdom.DiffOptions{
			ValueDiffing:  c.Diff.ValueDiffing,
			MaxChildCount: c.Diff.MaxChildCount,
		},
		MaxRedrawDrain: c.Runtime.MaxRedrawDrain,
	}
}

// NewLogger builds the slog logger described by the log section.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// RuntimeOptions returns the runtime options for this configuration. The
// logger writes to stderr; metrics are registered with the default
// Prometheus registerer when enabled.
func (c *Config) RuntimeOptions() []rewax.Option {
	opts := []rewax.Option{
		rewax.WithConfig(c.RuntimeConfig()),
		rewax.WithLogger(c.NewLogger(os.Stderr)),
	}
	if c.Metrics.Enabled {
		opts = append(opts, rewax.WithMetrics(rewax.NewMetrics(c.MetricsOptions()...)))
	}
	return opts
}

// MetricsOptions translates the metrics section. Callers append
// rewax.WithRegisterer to target a registry other than the default.
func (c *Config) MetricsOptions() []rewax.MetricsOption {
	opts := []rewax.MetricsOption{
		rewax.WithNamespace(c.Metrics.Namespace),
		rewax.WithSubsystem(c.Metrics.Subsystem),
	}
	if len(c.Metrics.Labels) > 0 {
		opts = append(opts, rewax.WithConstLabels(c.Metrics.Labels))
	}
	if len(c.Metrics.Buckets) > 0 {
		opts = append(opts, rewax.WithBuckets(c.Metrics.Buckets))
	}
	return opts
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

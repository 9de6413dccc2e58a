package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/backbone81/durable-log/internal/durablelog"
	"github.com/backbone81/durable-log/internal/store"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the root of the configuration.
type Config struct {
	Logger LoggerConfig `yaml:"logger"`
	Store  StoreConfig  `yaml:"store"`
	Writer WriterConfig `yaml:"writer"`
	Bench  BenchConfig  `yaml:"bench"`
}

// LoggerConfig configures the structured logger.
type LoggerConfig struct {
	// One of debug, info, warn, error.
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// StoreConfig configures the shared entry store.
type StoreConfig struct {
	MaxAppendSize int `yaml:"max_append_size"`
}

// WriterConfig configures every log writing to the store.
type WriterConfig struct {
	WriteConcurrency int `yaml:"write_concurrency"`

	// One of none, fixed, random.
	DelayPolicy string `yaml:"delay_policy"`

	// The delay for the fixed policy and the lower bound for the random policy.
	Delay time.Duration `yaml:"delay"`

	// The upper bound for the random policy.
	MaxDelay time.Duration `yaml:"max_delay"`
}

// BenchConfig configures the bench command.
type BenchConfig struct {
	Writers     int `yaml:"writers"`
	Appends     int `yaml:"appends"`
	PayloadSize int `yaml:"payload_size"`
}

// Default returns a configuration which works fine for most use cases.
func Default() Config {
	return Config{
		Logger: LoggerConfig{
			Level: "info",
		},
		Store: StoreConfig{
			MaxAppendSize: store.DefaultMaxAppendSize,
		},
		Writer: WriterConfig{
			WriteConcurrency: durablelog.DefaultWriteConcurrency,
			DelayPolicy:      durablelog.DefaultDelayPolicy.String(),
		},
		Bench: BenchConfig{
			Writers:     2,
			Appends:     10000,
			PayloadSize: 128,
		},
	}
}

// Load reads the configuration from the YAML file at the given path. Values missing from the file keep their
// defaults. A missing file results in the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // The path is provided by the user on purpose.
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid value of the configuration.
func (c Config) Validate() error {
	if _, err := c.Logger.SlogLevel(); err != nil {
		return err
	}
	if c.Store.MaxAppendSize < 1 {
		return fmt.Errorf("store.max_append_size must be at least 1: %w", ErrInvalidConfig)
	}
	if c.Writer.WriteConcurrency < 1 {
		return fmt.Errorf("writer.write_concurrency must be at least 1: %w", ErrInvalidConfig)
	}
	if _, err := durablelog.ParseDelayPolicyType(c.Writer.DelayPolicy); err != nil {
		return fmt.Errorf("writer.delay_policy %q: %w", c.Writer.DelayPolicy, errors.Join(err, ErrInvalidConfig))
	}
	if c.Writer.Delay < 0 || c.Writer.MaxDelay < 0 {
		return fmt.Errorf("writer delays must not be negative: %w", ErrInvalidConfig)
	}
	if c.Bench.Writers < 1 || c.Bench.Appends < 0 || c.Bench.PayloadSize < 1 {
		return fmt.Errorf("bench.writers and bench.payload_size must be at least 1, bench.appends must not be negative: %w", ErrInvalidConfig)
	}
	if c.Bench.PayloadSize > c.Store.MaxAppendSize {
		return fmt.Errorf("bench.payload_size exceeds store.max_append_size: %w", ErrInvalidConfig)
	}
	return nil
}

// SlogLevel returns the slog level matching the configured level.
func (c LoggerConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logger.level %q: %w", c.Level, ErrInvalidConfig)
	}
}

// NewLogger creates a text or JSON logger writing to stderr depending on the configuration.
func (c LoggerConfig) NewLogger() (*slog.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}

	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.JSON {
		handler = slog.NewJSONHandler(os.Stderr, options)
	} else {
		handler = slog.NewTextHandler(os.Stderr, options)
	}
	return slog.New(handler), nil
}

// LogOptions returns the options for creating a durablelog.Log according to the writer configuration.
func (c WriterConfig) LogOptions() []durablelog.Option {
	options := []durablelog.Option{
		durablelog.WithWriteConcurrency(c.WriteConcurrency),
	}
	delayPolicyType, err := durablelog.ParseDelayPolicyType(c.DelayPolicy)
	if err != nil {
		// Validate rejects unknown policies, fall back to the default for unvalidated configs.
		delayPolicyType = durablelog.DefaultDelayPolicy
	}
	switch delayPolicyType {
	case durablelog.DelayPolicyTypeNone:
		options = append(options, durablelog.WithDelayPolicyNone())
	case durablelog.DelayPolicyTypeFixed:
		options = append(options, durablelog.WithDelayPolicyFixed(c.Delay))
	case durablelog.DelayPolicyTypeRandom:
		options = append(options, durablelog.WithDelayPolicyRandom(c.Delay, c.MaxDelay))
	}
	return options
}

// Marshal returns the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Package config provides the optional seqstate.yaml configuration file.
// It holds the defaults each tool starts from; CLI flags override it.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses human-readable durations ("5s", "250ms") from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds tool defaults loaded from seqstate.yaml.
type Config struct {
	Counter CounterConfig `yaml:"counter"`
	Feed    FeedConfig    `yaml:"feed"`
}

// CounterConfig configures the sequence counter defaults.
type CounterConfig struct {
	// Seed is the value a fresh counter file starts from
	Seed int64 `yaml:"seed"`

	// Prefix is prepended to formatted identifiers
	Prefix string `yaml:"prefix"`

	// Padding is the minimum digit width of the numeric portion
	Padding int `yaml:"padding"`

	// LockTimeout bounds the wait for the counter file lock
	LockTimeout Duration `yaml:"lockTimeout"`
}

// FeedConfig configures the feed state defaults.
type FeedConfig struct {
	// MaxGUIDs caps the seen-GUID sliding window
	MaxGUIDs int `yaml:"maxGuids"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Counter: CounterConfig{
			Seed:        1000,
			Prefix:      "INV-",
			Padding:     4,
			LockTimeout: Duration(5 * time.Second),
		},
		Feed: FeedConfig{
			MaxGUIDs: 10000,
		},
	}
}

// Validate rejects configurations that no tool could run with.
func (c *Config) Validate() error {
	if c.Counter.Seed < 0 {
		return fmt.Errorf("counter.seed must not be negative, got %d", c.Counter.Seed)
	}
	if c.Counter.Padding < 0 {
		return fmt.Errorf("counter.padding must not be negative, got %d", c.Counter.Padding)
	}
	if c.Counter.LockTimeout <= 0 {
		return fmt.Errorf("counter.lockTimeout must be positive, got %s", c.Counter.LockTimeout.Std())
	}
	if c.Feed.MaxGUIDs < 1 {
		return fmt.Errorf("feed.maxGuids must be at least 1, got %d", c.Feed.MaxGUIDs)
	}
	return nil
}

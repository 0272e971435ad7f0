package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file seqstate looks for.
const FileName = "seqstate.yaml"

// Load reads the configuration at path, layered over the built-in defaults.
// A missing file yields the defaults; a file that exists but cannot be parsed
// or validated is a caller error and is returned as such.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

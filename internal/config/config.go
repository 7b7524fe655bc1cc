package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goldrun/goldrun/internal/schema"
)

// Load reads and parses a goldrun.yaml suite file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	return Parse(data)
}

// Parse parses suite configuration from raw YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse suite file: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults reads a suite file and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

// LoadAndValidate reads a suite file, checks it against the embedded JSON
// schema, applies defaults, runs semantic validation, and returns warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	// Structural validation first: schema errors point at the document
	// shape before semantic checks run against a half-decoded struct.
	if err := schema.ValidateSuite(data); err != nil {
		return nil, nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)

	warnings, err := Validate(cfg)
	if err != nil {
		return nil, warnings, err
	}

	return cfg, warnings, nil
}

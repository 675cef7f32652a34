// Package config loads the synthesizer's YAML configuration document
// (SPEC_FULL.md ambient stack "Configuration").
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls the synthesis run. The zero value is the spec-default
// behavior (SPEC_FULL.md: "Zero-value config is the spec-default behavior").
type Config struct {
	// Strict rejects a lone `=` instead of normalizing it to `==`
	// (spec §9 Open Question 4).
	Strict bool `yaml:"strict"`

	// AtomBudgetMS is a per-atom search budget in milliseconds (0 means
	// unbounded). It is loaded from the document, but nothing in the
	// synthesis run reads it: the per-atom search is bounded only by
	// internal/smt's maxCandidateCombos.
	AtomBudgetMS int `yaml:"atom_budget_ms"`

	// Precision is the minimum significant-digit count for rendered real
	// values (spec §4.5); 0 falls back to the spec-mandated minimum of 10.
	Precision int `yaml:"precision"`

	// OutputPath is where the CLI's CSVWriter writes records when the
	// `--out` flag is not given; empty means stdout.
	OutputPath string `yaml:"output_path"`

	// LogFormat selects the diagnostic sink: "text" (default) for the
	// terminal Reporter, or "json" for structured go.uber.org/zap output
	// suitable for a caller embedding the synthesizer in a service.
	LogFormat string `yaml:"log_format"`
}

// Default returns the spec-default configuration.
func Default() *Config {
	return &Config{Precision: 10, LogFormat: "text"}
}

// Load reads and parses a YAML config document from path, filling in
// spec-default values for anything left zero.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Precision == 0 {
		cfg.Precision = 10
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	return cfg, nil
}

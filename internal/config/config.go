// Package config loads the batch driver's configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable batch settings. Flags override file values,
// file values override defaults.
type Config struct {
	// LineRatio is the height-relative epsilon for baseline decimation.
	LineRatio float64 `yaml:"line_ratio"`
	// MaskRatio is the height-relative tolerance for mask simplification.
	MaskRatio float64 `yaml:"mask_ratio"`
	// Algorithm selects the line-decimation strategy
	// ("douglas-peucker" or "visvalingam-whyatt").
	Algorithm string `yaml:"algorithm"`
	// Epsilon, when positive, is an absolute tolerance overriding the
	// ratio derivation for lines.
	Epsilon float64 `yaml:"epsilon"`
	// Tolerance, when positive, is an absolute tolerance overriding the
	// ratio derivation for masks.
	Tolerance float64 `yaml:"tolerance"`
	// Sweep lists the ratios tried per file in sweep mode; each value is
	// used for both lines and masks.
	Sweep []float64 `yaml:"sweep"`
	// Suffix names derived outputs: page.xml becomes page.simple.xml.
	Suffix string `yaml:"suffix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LineRatio: 0.10,
		MaskRatio: 0.15,
		Algorithm: "douglas-peucker",
		Sweep:     []float64{0.10, 0.05, 0.15, 0.20},
		Suffix:    "simple",
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

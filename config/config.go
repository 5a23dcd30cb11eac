// Package config provides configuration loading and management for the
// mzTab-M to ISA-Tab converter.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// accessionPattern matches MetaboLights study accession numbers.
var accessionPattern = regexp.MustCompile(`^MTBLS\d+$`)

// Config represents the complete converter configuration.
type Config struct {
	Study     StudyConfig     `yaml:"study"`
	Converter ConverterConfig `yaml:"converter"`
	Output    OutputConfig    `yaml:"output"`
}

// StudyConfig configures the destination study.
type StudyConfig struct {
	// Accession is the MetaboLights study accession number.
	Accession string `yaml:"accession"`
}

// ConverterConfig configures the external jmztab-m pre-conversion tool.
type ConverterConfig struct {
	// Engine is the container run engine (docker, podman).
	Engine string `yaml:"engine"`
	// Image is the container image holding the jmztab-m converter.
	Image string `yaml:"image"`
	// Timeout bounds one pre-conversion invocation; on expiry the whole
	// run aborts.
	Timeout time.Duration `yaml:"timeout"`
	// OverrideJSON re-runs the pre-conversion even when a JSON sibling
	// of the input file already exists.
	OverrideJSON bool `yaml:"override_json"`
}

// OutputConfig configures where the ISA-Tab file set is written.
type OutputConfig struct {
	// Dir is the output base directory; files land in Dir/<accession>.
	Dir string `yaml:"dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Study: StudyConfig{
			Accession: "MTBLS1000000",
		},
		Converter: ConverterConfig{
			Engine:  "docker",
			Image:   "quay.io/biocontainers/jmztab-m:1.0.6--hdfd78af_1",
			Timeout: 2 * time.Minute,
		},
		Output: OutputConfig{
			Dir: "output",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if !accessionPattern.MatchString(c.Study.Accession) {
		return fmt.Errorf("study.accession %q must match MTBLS<number>", c.Study.Accession)
	}
	if c.Converter.Engine == "" {
		return fmt.Errorf("converter.engine is required")
	}
	if c.Converter.Image == "" {
		return fmt.Errorf("converter.image is required")
	}
	if c.Converter.Timeout <= 0 {
		return fmt.Errorf("converter.timeout must be positive")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence
// for non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Study.Accession != "" {
		c.Study.Accession = other.Study.Accession
	}

	if other.Converter.Engine != "" {
		c.Converter.Engine = other.Converter.Engine
	}
	if other.Converter.Image != "" {
		c.Converter.Image = other.Converter.Image
	}
	if other.Converter.Timeout != 0 {
		c.Converter.Timeout = other.Converter.Timeout
	}
	if other.Converter.OverrideJSON {
		c.Converter.OverrideJSON = true
	}

	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
}

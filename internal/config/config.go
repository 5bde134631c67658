package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mcncl/jvalue/internal/parser"
	"github.com/mcncl/jvalue/internal/transform"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jvalue
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Output OutputConfig `yaml:"output"`
	Dev    DevConfig    `yaml:"dev"`
}

// ParserConfig controls which documents are accepted
type ParserConfig struct {
	JSONWhitespace     bool `yaml:"json_whitespace"`
	AllowScalarRoot    bool `yaml:"allow_scalar_root"`
	RejectTrailingData bool `yaml:"reject_trailing_data"`
	MaxDepth           int  `yaml:"max_depth"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	IndentLevel int               `yaml:"indent_level"`
	KeyCase     string            `yaml:"key_case"`
	KeyMappings map[string]string `yaml:"key_mappings"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// CLIOverrides carries command-line values that take precedence over the
// config file when they differ from the flag defaults.
type CLIOverrides struct {
	IndentLevel        int
	KeyCase            string
	MaxDepth           int
	AllowScalarRoot    bool
	RejectTrailingData bool
	Debug              bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			JSONWhitespace:     true,
			AllowScalarRoot:    false,
			RejectTrailingData: false,
			MaxDepth:           parser.DefaultMaxDepth,
		},
		Output: OutputConfig{
			IndentLevel: 0,
			KeyCase:     "",
			KeyMappings: make(map[string]string),
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file. Unknown fields are errors.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Output.KeyMappings == nil {
		cfg.Output.KeyMappings = make(map[string]string)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jvalue.yml", ".jvalue.yaml", "jvalue.yml", "jvalue.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks value ranges and the key case name
func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if c.Output.IndentLevel < 0 {
		return fmt.Errorf("output.indent_level must not be negative, got %d", c.Output.IndentLevel)
	}
	if _, err := transform.NamerFor(transform.KeyCase(c.Output.KeyCase)); err != nil {
		return fmt.Errorf("invalid output.key_case: %w", err)
	}
	return nil
}

// ParserOptions converts the parser section into parser.Options
func (c *Config) ParserOptions() parser.Options {
	return parser.Options{
		JSONWhitespace:     c.Parser.JSONWhitespace,
		AllowScalarRoot:    c.Parser.AllowScalarRoot,
		RejectTrailingData: c.Parser.RejectTrailingData,
		MaxDepth:           c.Parser.MaxDepth,
	}
}

// GetKeyName returns the output name for an object key, applying explicit
// mappings first and then the key case.
func (c *Config) GetKeyName(key string) (string, error) {
	namer, err := c.KeyNamer()
	if err != nil {
		return "", err
	}
	if namer == nil {
		return key, nil
	}
	return namer(key), nil
}

// KeyNamer builds the renaming function for the output section. It returns
// nil when keys are left as they are.
func (c *Config) KeyNamer() (transform.Namer, error) {
	caseNamer, err := transform.NamerFor(transform.KeyCase(c.Output.KeyCase))
	if err != nil {
		return nil, err
	}
	if caseNamer == nil && len(c.Output.KeyMappings) == 0 {
		return nil, nil
	}

	mappings := c.Output.KeyMappings
	return func(key string) string {
		if mapped, exists := mappings[key]; exists {
			return mapped
		}
		if caseNamer != nil {
			return caseNamer(key)
		}
		return key
	}, nil
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	// Only non-default CLI values override the file
	if cli.IndentLevel > 0 {
		cfg.Output.IndentLevel = cli.IndentLevel
	}
	if cli.KeyCase != "" {
		cfg.Output.KeyCase = cli.KeyCase
	}
	if cli.MaxDepth > 0 {
		cfg.Parser.MaxDepth = cli.MaxDepth
	}
	if cli.AllowScalarRoot {
		cfg.Parser.AllowScalarRoot = true
	}
	if cli.RejectTrailingData {
		cfg.Parser.RejectTrailingData = true
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

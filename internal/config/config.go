// If you are AI: This file defines the configuration structure for amfdump.
// It uses strict YAML decoding and explicit defaults.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"amfpeek/internal/core/protocol/amf0"
)

// Config holds the complete tool configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	Decoder DecoderConfig `yaml:"decoder"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// DecoderConfig defines AMF0 decoder limits and policies.
type DecoderConfig struct {
	MaxDepth     int    `yaml:"max_depth"`     // Maximum value nesting depth
	LengthPolicy string `yaml:"length_policy"` // "advisory" or "strict"
}

// OutputConfig defines how decoded packets are printed.
type OutputConfig struct {
	Format string `yaml:"format"` // "yaml" or "json"
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console or json
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// Load reads configuration from a YAML file.
// Returns an error if the file cannot be read or decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	// An empty document keeps every default
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Apply defaults
	cfg.setDefaults()

	return &cfg, nil
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Decoder.MaxDepth == 0 {
		c.Decoder.MaxDepth = amf0.DefaultMaxDepth
	}
	if c.Decoder.LengthPolicy == "" {
		c.Decoder.LengthPolicy = amf0.LengthAdvisory.String()
	}
	if c.Output.Format == "" {
		c.Output.Format = "yaml"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Encoding == "" {
		c.Log.Encoding = "console"
	}
}

// DecoderOptions converts the decoder section into amf0 options.
func (c *Config) DecoderOptions() ([]amf0.Option, error) {
	policy, err := amf0.ParseLengthPolicy(c.Decoder.LengthPolicy)
	if err != nil {
		return nil, err
	}
	return []amf0.Option{
		amf0.WithMaxDepth(c.Decoder.MaxDepth),
		amf0.WithLengthPolicy(policy),
	}, nil
}

// If you are AI: This file validates configuration values and returns descriptive errors.

package config

import (
	"fmt"

	"amfpeek/internal/core/protocol/amf0"
)

// maxDepthLimit caps the configurable nesting depth.
const maxDepthLimit = 100000

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if err := c.Decoder.Validate(); err != nil {
		return fmt.Errorf("decoder config: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

// Validate checks decoder configuration values.
func (d *DecoderConfig) Validate() error {
	if d.MaxDepth <= 0 || d.MaxDepth > maxDepthLimit {
		return fmt.Errorf("max_depth must be between 1 and %d, got %d", maxDepthLimit, d.MaxDepth)
	}
	if _, err := amf0.ParseLengthPolicy(d.LengthPolicy); err != nil {
		return fmt.Errorf("length_policy: %w", err)
	}
	return nil
}

// Validate checks output configuration values.
func (o *OutputConfig) Validate() error {
	switch o.Format {
	case "yaml", "json":
		return nil
	default:
		return fmt.Errorf("format must be yaml or json, got %q", o.Format)
	}
}

// Validate checks logger configuration values.
func (l *LogConfig) Validate() error {
	if _, err := parseLevel(l.Level); err != nil {
		return err
	}
	if l.Encoding != "console" && l.Encoding != "json" {
		return fmt.Errorf("encoding must be console or json, got %q", l.Encoding)
	}
	return nil
}

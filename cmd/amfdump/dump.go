// If you are AI: This file decodes one input and prints the rendered result.

package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"amfpeek/internal/config"
	"amfpeek/internal/core/protocol/amf0"
	"amfpeek/internal/render"
)

// dumper decodes inputs with a fixed option set and writes them to out.
type dumper struct {
	opts   []amf0.Option
	format string
	values bool
	logger *zap.Logger
	out    io.Writer
}

// newDumper builds a dumper from configuration.
func newDumper(cfg *config.Config, logger *zap.Logger, out io.Writer) (*dumper, error) {
	opts, err := cfg.DecoderOptions()
	if err != nil {
		return nil, err
	}
	return &dumper{
		opts:   append(opts, amf0.WithLogger(logger)),
		format: cfg.Output.Format,
		logger: logger,
		out:    out,
	}, nil
}

// dump decodes everything readable from r and writes the rendered tree.
func (d *dumper) dump(name string, r io.Reader) error {
	data, err := readAll(r)
	if err != nil {
		return err
	}
	log := d.logger.With(zap.String("input", name), zap.Int("bytes", len(data)))

	var node *yaml.Node
	if d.values {
		values, _, err := amf0.DecodeValues(data, d.opts...)
		if err != nil {
			return fmt.Errorf("decode values: %w", err)
		}
		log.Debug("decoded values", zap.Int("count", len(values)))
		node = render.Values(values)
	} else {
		p, err := amf0.Decode(data, d.opts...)
		if err != nil {
			return fmt.Errorf("decode packet: %w", err)
		}
		log.Debug("decoded packet",
			zap.Int("headers", len(p.Headers)),
			zap.Int("messages", len(p.Messages)))
		node = render.Packet(p)
	}
	return render.Write(d.out, d.format, node)
}

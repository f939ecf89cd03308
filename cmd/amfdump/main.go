// If you are AI: This is the main entrypoint for amfdump.
// It loads configuration, decodes AMF0 files and prints them as YAML or JSON.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"amfpeek/internal/config"
)

// main is the entrypoint for amfdump.
// It loads configuration, builds the logger and dumps every input.
func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to configuration file")
	format := flag.String("format", "", "Output format: yaml or json (overrides config)")
	values := flag.Bool("values", false, "Decode inputs as bare value sequences instead of packets")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "amfdump: %v\n", err)
		os.Exit(2)
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "amfdump: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	d, err := newDumper(cfg, logger, os.Stdout)
	if err != nil {
		logger.Error("invalid decoder config", zap.Error(err))
		os.Exit(2)
	}
	d.values = *values

	if flag.NArg() == 0 {
		if err := d.dump("-", os.Stdin); err != nil {
			logger.Error("decode failed", zap.String("input", "-"), zap.Error(err))
			os.Exit(1)
		}
		return
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := d.dumpFile(path); err != nil {
			logger.Error("decode failed", zap.String("input", path), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		logger.Warn("some inputs failed", zap.Int("failed", failed), zap.Int("total", flag.NArg()))
		os.Exit(1)
	}
}

// loadConfig reads the config file if given, applies the format override
// and validates the result.
func loadConfig(path, format string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// dumpFile opens path and dumps its contents.
func (d *dumper) dumpFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return d.dump(path, f)
}

// readAll reads an entire input; decoding needs the whole buffer up front.
func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

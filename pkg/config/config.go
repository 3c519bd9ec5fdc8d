// Package config loads spendlens configuration from an optional JSON file
// with environment-variable overrides, and loads the externally maintained
// retailer classification map.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/spendlens/spendlens/pkg/api"
)

// DefaultWindowDays is the suggested minimum trailing window the analysis
// surfaces offer. The filter itself accepts any positive value.
const DefaultWindowDays = 7

// Config holds the externally tunable parameters of the pipeline. Keys double
// as environment variable names, the same convention the config file uses.
type Config struct {
	// WindowDays is the trailing analysis window in days.
	// Environment variable: SPENDLENS_WINDOW_DAYS
	WindowDays int `koanf:"SPENDLENS_WINDOW_DAYS"`

	// OutputDir is where CSV and JSON reports are written.
	// Environment variable: SPENDLENS_OUTPUT_DIR
	OutputDir string `koanf:"SPENDLENS_OUTPUT_DIR"`

	// ClassificationFile is the path to the retailer→category JSON map.
	// Optional; without it category totals are omitted.
	// Environment variable: SPENDLENS_CLASSIFICATION_FILE
	ClassificationFile string `koanf:"SPENDLENS_CLASSIFICATION_FILE"`

	// Addr is the listen address of the HTTP API.
	// Environment variable: SPENDLENS_ADDR
	Addr string `koanf:"SPENDLENS_ADDR"`

	// MaxUploadBytes caps statement uploads accepted by the HTTP API.
	// Environment variable: SPENDLENS_MAX_UPLOAD_BYTES
	MaxUploadBytes int64 `koanf:"SPENDLENS_MAX_UPLOAD_BYTES"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		WindowDays:     DefaultWindowDays,
		OutputDir:      "reports",
		Addr:           ":8080",
		MaxUploadBytes: 10 << 20,
	}
}

// Load reads configPath (skipped silently when empty or absent) and then
// applies environment variable overrides on top of the defaults.
func Load(configPath string) (Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), kjson.Parser()); err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("loading config file %s: %w", configPath, err)
			}
		}
	}
	if err := k.Load(env.Provider("SPENDLENS_", ".", nil), nil); err != nil {
		return Config{}, fmt.Errorf("loading config from environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.WindowDays <= 0 {
		return Config{}, fmt.Errorf("%w: SPENDLENS_WINDOW_DAYS must be positive, got %d",
			api.ErrInvalidWindow, cfg.WindowDays)
	}
	return cfg, nil
}

// LoadClassification reads a retailer→category JSON object. The map is owned
// by whoever maintains the file; spendlens never writes it back. Category
// values outside the known set are kept as-is.
func LoadClassification(path string) (api.Classification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading classification file: %w", err)
	}

	var classification api.Classification
	if err := json.Unmarshal(data, &classification); err != nil {
		return nil, fmt.Errorf("parsing classification file %s: %w", path, err)
	}
	return classification, nil
}

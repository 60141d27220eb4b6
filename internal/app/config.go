package app

import (
	"errors"
	"fmt"
)

// Output formats for resolved values.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // hcl file or directory

	LogFormat    string
	LogLevel     string
	OutputFormat string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}

	switch cfg.OutputFormat {
	case "":
		cfg.OutputFormat = OutputText
	case OutputText, OutputJSON:
	default:
		return nil, fmt.Errorf("invalid output format %q: must be '%s' or '%s'", cfg.OutputFormat, OutputText, OutputJSON)
	}

	return &cfg, nil
}

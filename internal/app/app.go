package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/resolvegrid/internal/config"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader config.Loader
	config *Config
}

// NewApp is the constructor for the main application. Results are written
// to outW and logs to logW, through an isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		loader: loader,
		config: cfg,
	}
}

package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/shaderbuild/internal/config"
	"github.com/vk/shaderbuild/internal/ctxlog"
	"github.com/vk/shaderbuild/internal/diag"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   BuildConfig
	reporter *diag.Reporter
	progress *progress

	httpServer *http.Server
}

// NewApp is the constructor for the main application. Diagnostics and the
// build summary go to outW; logs go to logW. Settings are resolved in order:
// built-in defaults, the settings file named by cfg (read with loader), then
// the command-line overrides in cfg. Failures are returned as *ConfigError.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) (*App, error) {
	resolved := DefaultBuildConfig()

	// Bootstrap logger: only the command line can be consulted before the
	// settings file is read.
	bootLevel, bootFormat := resolved.LogLevel, resolved.LogFormat
	if cfg.Overrides.LogLevel != nil {
		bootLevel = *cfg.Overrides.LogLevel
	}
	if cfg.Overrides.LogFormat != nil {
		bootFormat = *cfg.Overrides.LogFormat
	}
	logger, err := newLogger(bootLevel, bootFormat, logW)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	ctx := ctxlog.WithLogger(context.Background(), logger)

	if cfg.SettingsPath != "" {
		settings, err := loader.Load(ctx, cfg.SettingsPath)
		if err != nil {
			return nil, &ConfigError{Err: err}
		}
		if err := resolved.apply(settings); err != nil {
			return nil, &ConfigError{Err: err}
		}
		logger.Debug("Settings file applied.", "path", cfg.SettingsPath)
	}

	if err := resolved.apply(&cfg.Overrides); err != nil {
		return nil, &ConfigError{Err: err}
	}
	if err := resolved.validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	logger, err = newLogger(resolved.LogLevel, resolved.LogFormat, logW)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	logger.Debug("Configuration resolved.",
		"source_dir", resolved.SourceDir,
		"compiler", resolved.CompilerPath,
		"workers", resolved.Workers,
		"failure_policy", resolved.FailurePolicy,
		"timeout", resolved.Timeout,
	)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   resolved,
		reporter: diag.NewReporter(outW),
		progress: &progress{},
	}, nil
}

// Config returns the resolved configuration. This is primarily for testing.
func (a *App) Config() BuildConfig {
	return a.config
}

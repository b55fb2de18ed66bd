package app

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/vk/shaderbuild/internal/compiler"
	"github.com/vk/shaderbuild/internal/config"
)

const (
	// DefaultSourceDir is used when no source directory is given.
	DefaultSourceDir = "shaders"
	// DefaultCompiler is used when no compiler path is given.
	DefaultCompiler = "/usr/bin/glslc"
)

// Config holds everything the entrypoint hands to the App.
type Config struct {
	// SettingsPath is an optional settings file layered between the built-in
	// defaults and Overrides.
	SettingsPath string
	// Overrides holds the values given on the command line; nil fields were
	// not given.
	Overrides config.Settings
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Overrides.Workers != nil && *cfg.Overrides.Workers < 0 {
		return nil, errors.New("workers must not be negative")
	}
	if cfg.Overrides.Timeout != nil && *cfg.Overrides.Timeout < 0 {
		return nil, errors.New("timeout must not be negative")
	}
	if cfg.Overrides.FailurePolicy != nil {
		if _, err := compiler.ParsePolicy(*cfg.Overrides.FailurePolicy); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// BuildConfig is the fully resolved configuration of a run.
type BuildConfig struct {
	SourceDir     string
	CompilerPath  string
	CompilerArgs  []string
	Workers       int
	FailurePolicy compiler.Policy
	Timeout       time.Duration
	LogLevel      string
	LogFormat     string
	StatusPort    int
}

// DefaultBuildConfig returns the built-in defaults.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		SourceDir:     DefaultSourceDir,
		CompilerPath:  DefaultCompiler,
		Workers:       runtime.NumCPU(),
		FailurePolicy: compiler.DefaultPolicy,
		LogLevel:      "warn",
		LogFormat:     "text",
	}
}

// apply overlays every field set in s.
func (b *BuildConfig) apply(s *config.Settings) error {
	if s == nil {
		return nil
	}
	if s.SourceDir != nil {
		b.SourceDir = *s.SourceDir
	}
	if s.Compiler != nil {
		b.CompilerPath = *s.Compiler
	}
	if s.CompilerArgs != nil {
		b.CompilerArgs = s.CompilerArgs
	}
	if s.Workers != nil && *s.Workers > 0 {
		b.Workers = *s.Workers
	}
	if s.FailurePolicy != nil {
		p, err := compiler.ParsePolicy(*s.FailurePolicy)
		if err != nil {
			return err
		}
		b.FailurePolicy = p
	}
	if s.Timeout != nil {
		b.Timeout = *s.Timeout
	}
	if s.LogLevel != nil {
		b.LogLevel = *s.LogLevel
	}
	if s.LogFormat != nil {
		b.LogFormat = *s.LogFormat
	}
	if s.StatusPort != nil {
		b.StatusPort = *s.StatusPort
	}
	return nil
}

// validate checks values that may have come from a settings file. Log level
// and format are checked when the logger is built.
func (b *BuildConfig) validate() error {
	if b.StatusPort < 0 || b.StatusPort > 65535 {
		return fmt.Errorf("invalid status_port %d", b.StatusPort)
	}
	return nil
}

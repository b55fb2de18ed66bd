package app

import (
	"errors"
	"fmt"
)

// Process exit statuses.
const (
	// ExitSuccess means every shader compiled or was skipped.
	ExitSuccess = 0
	// ExitFailure covers an unusable manifest, a missing compiler or source
	// directory, any failed shader, and an interrupted build.
	ExitFailure = 1
	// ExitUsage means invalid flags or an invalid settings file.
	ExitUsage = 2
)

// ErrBuildFailed is returned by Run when at least one shader failed.
var ErrBuildFailed = errors.New("one or more shaders failed to compile")

// ConfigError is returned when the settings file cannot be loaded or holds
// invalid values.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ManifestError is returned when the shader list cannot be used.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("failed to load shader list %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// exitCoder is implemented by errors that already know their exit status,
// such as the command-line parser's usage errors.
type exitCoder interface {
	ExitCode() int
}

// ExitCode maps an error from command-line parsing, NewApp or Run to a
// process exit status. It is the single place where that mapping is defined:
// errors carrying their own code keep it, settings problems are usage errors,
// and everything else that stopped or failed the build is ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return ExitUsage
	}
	return ExitFailure
}

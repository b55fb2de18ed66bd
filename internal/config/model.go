package config

import "time"

// Settings is the unified representation of a build settings file.
type Settings struct {
	SourceDir     *string
	Compiler      *string
	CompilerArgs  []string
	Workers       *int
	FailurePolicy *string
	Timeout       *time.Duration
	LogLevel      *string
	LogFormat     *string
	StatusPort    *int
}

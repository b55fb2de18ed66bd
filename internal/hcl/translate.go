package hcl

import (
	"fmt"
	"time"

	"github.com/vk/shaderbuild/internal/config"
)

// translate converts the decoded HCL schema into the agnostic model.
func translate(root *fileRoot) (*config.Settings, error) {
	s := &config.Settings{
		SourceDir:     root.SourceDir,
		Compiler:      root.Compiler,
		CompilerArgs:  root.CompilerArgs,
		Workers:       root.Workers,
		FailurePolicy: root.FailurePolicy,
		LogLevel:      root.LogLevel,
		LogFormat:     root.LogFormat,
		StatusPort:    root.StatusPort,
	}

	if root.Timeout != nil {
		d, err := time.ParseDuration(*root.Timeout)
		if err != nil {
			return nil, fmt.Errorf("timeout: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("timeout must not be negative, got %s", d)
		}
		s.Timeout = &d
	}
	if root.Workers != nil && *root.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", *root.Workers)
	}

	return s, nil
}

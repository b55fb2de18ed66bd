package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/shaderbuild/internal/config"
	"github.com/vk/shaderbuild/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// environ supplies the `env` variable; nil means os.Environ.
	environ func() []string
}

// NewLoader creates a new HCL settings loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the schema of a settings file. Unknown attributes and blocks
// are rejected by the decoder.
type fileRoot struct {
	SourceDir     *string  `hcl:"source_dir,optional"`
	Compiler      *string  `hcl:"compiler,optional"`
	CompilerArgs  []string `hcl:"compiler_args,optional"`
	Workers       *int     `hcl:"workers,optional"`
	FailurePolicy *string  `hcl:"failure_policy,optional"`
	Timeout       *string  `hcl:"timeout,optional"`
	LogLevel      *string  `hcl:"log_level,optional"`
	LogFormat     *string  `hcl:"log_format,optional"`
	StatusPort    *int     `hcl:"status_port,optional"`
}

// Load parses and decodes the settings file at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL settings loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, l.evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	settings, err := translate(&root)
	if err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	logger.Debug("HCL settings loaded.", "path", path)
	return settings, nil
}

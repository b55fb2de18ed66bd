package app

import (
	"context"
	"path/filepath"

	"github.com/vk/shaderbuild/internal/build"
	"github.com/vk/shaderbuild/internal/compiler"
	"github.com/vk/shaderbuild/internal/ctxlog"
	"github.com/vk/shaderbuild/internal/diag"
	"github.com/vk/shaderbuild/internal/manifest"
)

// Run loads the manifest and builds every shader in it. The returned error is
// nil only when no shader failed; pass it to ExitCode for the process status.
// The Outcome is nil when the manifest could not be loaded.
func (a *App) Run(ctx context.Context) (*build.Outcome, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	manifestPath := filepath.Join(a.config.SourceDir, manifest.FileName)
	shaders, err := manifest.Load(ctx, manifestPath, a.outW)
	if err != nil {
		a.reporter.Error(diag.Subject, "Failed to load shader list "+manifestPath)
		a.logger.Error("Shader manifest unusable.", "path", manifestPath, "error", err)
		return nil, &ManifestError{Path: manifestPath, Err: err}
	}

	if a.config.StatusPort > 0 {
		a.startStatusServer(a.config.StatusPort)
		defer a.closeStatusServer(ctx)
	}

	a.progress.begin(len(shaders) * len(build.Stages))
	builder := build.New(build.Options{
		SourceDir: a.config.SourceDir,
		Compiler:  compiler.New(a.config.CompilerPath, a.config.CompilerArgs, a.config.Timeout),
		Policy:    a.config.FailurePolicy,
		Workers:   a.config.Workers,
		Progress:  a.progress.record,
	}, a.reporter)

	outcome, err := builder.Run(ctx, shaders)
	a.progress.finish(err)
	if err != nil {
		return outcome, err
	}
	if !outcome.OK() {
		return outcome, ErrBuildFailed
	}

	a.logger.Debug("App.Run method finished.")
	return outcome, nil
}

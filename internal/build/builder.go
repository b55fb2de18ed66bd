package build

import (
	"context"
	"fmt"
	"runtime"

	"github.com/vk/shaderbuild/internal/compiler"
	"github.com/vk/shaderbuild/internal/ctxlog"
	"github.com/vk/shaderbuild/internal/diag"
	"github.com/vk/shaderbuild/internal/fsutil"
)

// Options configures a Builder.
type Options struct {
	// SourceDir holds the shader sources; artifacts are written next to them.
	SourceDir string
	// Compiler runs the external compiler. Its Bin must be an existing file.
	Compiler *compiler.Compiler
	// Policy decides whether a finished compiler run failed.
	Policy compiler.Policy
	// Workers bounds concurrent compiler processes. Zero or less uses
	// runtime.NumCPU().
	Workers int
	// Progress, if set, is called from worker goroutines once per finished
	// job. It must be safe for concurrent use.
	Progress func(job Job, status Status)
}

// Builder runs shader builds. A Builder holds no per-run state and may be
// reused.
type Builder struct {
	opts     Options
	reporter *diag.Reporter
}

// New creates a Builder that prints its summary and diagnostics to reporter.
func New(opts Options, reporter *diag.Reporter) *Builder {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Policy == "" {
		opts.Policy = compiler.DefaultPolicy
	}
	return &Builder{opts: opts, reporter: reporter}
}

// Workers returns the effective worker count.
func (b *Builder) Workers() int {
	return b.opts.Workers
}

// Run compiles every stage of every shader and reports the result.
//
// A *PreconditionError is returned, with an empty Outcome, when the compiler
// or the source directory is missing. A context error is returned when ctx is
// cancelled mid-run; the Outcome then holds the jobs that finished. Shader
// failures are not errors: check Outcome.OK.
func (b *Builder) Run(ctx context.Context, shaders []string) (*Outcome, error) {
	logger := ctxlog.FromContext(ctx)

	if err := b.checkPreconditions(); err != nil {
		b.reporter.Error(diag.Subject, err.Error())
		return &Outcome{}, err
	}

	jobs := Plan(b.opts.SourceDir, shaders)
	logger.Info("🚀 Starting shader build...", "shaders", len(shaders), "jobs", len(jobs), "workers", b.opts.Workers)

	outcome, err := b.execute(ctx, jobs)
	if err != nil {
		logger.Error("Shader build interrupted.", "error", err, "finished", outcome.Total())
		return outcome, fmt.Errorf("shader build interrupted: %w", err)
	}
	logger.Info("🏁 Shader build finished.", "compiled", len(outcome.Completed), "skipped", len(outcome.Skipped), "failed", len(outcome.Failed))

	b.report(outcome, len(shaders))
	return outcome, nil
}

// checkPreconditions verifies the compiler first, then the source directory.
func (b *Builder) checkPreconditions() error {
	if b.opts.Compiler == nil || !fsutil.IsFile(b.opts.Compiler.Bin) {
		bin := ""
		if b.opts.Compiler != nil {
			bin = b.opts.Compiler.Bin
		}
		return &PreconditionError{Message: fmt.Sprintf("Compiler executable not found in %s", bin)}
	}
	if !fsutil.IsDir(b.opts.SourceDir) {
		return &PreconditionError{Message: fmt.Sprintf("Cannot find path %s", b.opts.SourceDir)}
	}
	return nil
}

// report prints the summary line, the all-skipped warning and per-shader
// failures, or the success confirmation.
func (b *Builder) report(outcome *Outcome, manifestLen int) {
	b.reporter.Println("Shaders: " + outcome.Summary())

	// Counts stage attempts against manifest entries, so it also fires when
	// only some stages are missing.
	if len(outcome.Skipped) >= manifestLen {
		b.reporter.Warning(diag.Subject, "All skipped, ensure the path is correct")
	}

	if !outcome.OK() {
		for _, f := range outcome.Failed {
			b.reporter.Error(f.Source, f.Message)
		}
		return
	}
	b.reporter.Println("Shader compilation successfully completed")
}

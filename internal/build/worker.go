package build

import (
	"context"

	"github.com/vk/shaderbuild/internal/ctxlog"
	"github.com/vk/shaderbuild/internal/fsutil"
	"golang.org/x/sync/errgroup"
)

// jobResult is the slot a single job writes its classification into.
type jobResult struct {
	status  Status
	message string
}

// execute runs jobs on the worker pool and merges their results in job order.
func (b *Builder) execute(ctx context.Context, jobs []Job) (*Outcome, error) {
	results := make([]jobResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Workers)

	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := b.compileOne(gctx, jobs[i])
			if err != nil {
				return err
			}
			results[i] = res
			if b.opts.Progress != nil {
				b.opts.Progress(jobs[i], res.status)
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	return merge(jobs, results), err
}

// compileOne classifies a single job. The returned error is non-nil only when
// ctx was cancelled; every other problem is recorded as a failed result.
func (b *Builder) compileOne(ctx context.Context, job Job) (jobResult, error) {
	logger := ctxlog.FromContext(ctx).With("shader", job.Shader, "stage", job.Stage)

	if !fsutil.IsFile(job.Source) {
		logger.Debug("Source file not found, skipping.", "source", job.Source)
		return jobResult{status: StatusSkipped}, nil
	}

	logger.Debug("▶️ Compiling shader stage.", "source", job.Source, "artifact", job.Artifact)
	res, err := b.opts.Compiler.Compile(ctx, job.Source, job.Artifact)
	if err != nil {
		if ctx.Err() != nil {
			return jobResult{}, ctx.Err()
		}
		logger.Warn("Compiler could not be run.", "source", job.Source, "error", err)
		return jobResult{status: StatusFailed, message: err.Error()}, nil
	}

	if isFailure, message := b.opts.Policy.Classify(res); isFailure {
		logger.Debug("Shader stage failed.", "source", job.Source, "exit_code", res.ExitCode)
		return jobResult{status: StatusFailed, message: message}, nil
	}

	logger.Debug("✅ Shader stage compiled.", "artifact", job.Artifact)
	return jobResult{status: StatusCompiled}, nil
}

// merge folds per-job results into an Outcome in job order. Pending slots
// belong to jobs that never ran and are left out.
func merge(jobs []Job, results []jobResult) *Outcome {
	outcome := &Outcome{}
	for i, res := range results {
		job := jobs[i]
		switch res.status {
		case StatusCompiled:
			outcome.Completed = append(outcome.Completed, job.Artifact)
		case StatusSkipped:
			outcome.Skipped = append(outcome.Skipped, job.Source)
		case StatusFailed:
			outcome.Failed = append(outcome.Failed, Failure{Source: job.Source, Message: res.message})
		}
	}
	return outcome
}

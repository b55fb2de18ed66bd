package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/vk/shaderbuild/internal/ctxlog"
)

// OutputFlag is the token that precedes the artifact path on the command line.
const OutputFlag = "-o"

// Result holds what a finished compiler process produced.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Compiler invokes an external shader compiler executable.
type Compiler struct {
	// Bin is the path to the compiler executable.
	Bin string
	// Args are passed before the source path, e.g. "-O" or "--target-env=vulkan1.3".
	Args []string
	// Timeout bounds a single invocation. Zero means no limit.
	Timeout time.Duration
}

// New returns a Compiler for the executable at bin.
func New(bin string, args []string, timeout time.Duration) *Compiler {
	return &Compiler{Bin: bin, Args: args, Timeout: timeout}
}

// Command returns the argument vector used to compile src into dst.
func (c *Compiler) Command(src, dst string) []string {
	argv := make([]string, 0, len(c.Args)+4)
	argv = append(argv, c.Bin)
	argv = append(argv, c.Args...)
	return append(argv, src, OutputFlag, dst)
}

// Compile runs the compiler on src, writing dst, and waits for it to exit.
// A non-zero exit is not an error here; it is reported in Result.ExitCode.
// The error is non-nil only when the process could not be run to completion:
// it failed to start, hit the timeout, or ctx was cancelled.
func (c *Compiler) Compile(ctx context.Context, src, dst string) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("source", src)

	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	argv := c.Command(src, dst)
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Invoking shader compiler.", "argv", argv)
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctxErr := runCtx.Err(); ctxErr != nil {
		if ctx.Err() == nil && errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("compiler timed out after %s", c.Timeout)
		}
		return nil, fmt.Errorf("compilation cancelled: %w", ctx.Err())
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run compiler %s: %w", c.Bin, err)
		}
		exitCode = exitErr.ExitCode()
	}

	logger.Debug("Shader compiler exited.", "exit_code", exitCode, "duration", elapsed, "stdout", stdout.String())
	return &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
	}, nil
}

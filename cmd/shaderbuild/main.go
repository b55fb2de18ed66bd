package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/shaderbuild/internal/app"
	"github.com/vk/shaderbuild/internal/cli"
	"github.com/vk/shaderbuild/internal/hcl"
)

// main is the entrypoint for the shaderbuild application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	os.Exit(app.ExitCode(err))
}

// run encapsulates the main application logic for easier testing and error
// handling. Diagnostics for build problems are already printed to outW by the
// app; only CLI and configuration errors are printed here.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		fmt.Fprintln(errW, err)
		return err
	}
	if shouldExit {
		return nil
	}

	shaderApp, err := app.NewApp(outW, errW, appConfig, hcl.NewLoader())
	if err != nil {
		fmt.Fprintln(errW, err)
		return err
	}

	_, err = shaderApp.Run(ctx)
	return err
}

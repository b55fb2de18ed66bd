package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vk/shaderbuild/internal/app"
	"github.com/vk/shaderbuild/internal/compiler"
	"github.com/vk/shaderbuild/internal/manifest"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode returns the process exit status carried by the error.
func (e *ExitError) ExitCode() int {
	return e.Code
}

const longHelp = `Compiles every shader listed in <source-root-dir>/` + manifest.FileName + ` to SPIR-V.

For each listed name X, X.frag and X.vert are compiled with
"<compiler-path> X.<stage> -o X.<stage>.spv" when they exist and skipped
otherwise. Diagnostics use the "<file> : error GLSL: ..." line format.

Settings are resolved from built-in defaults, then the --config file, then
the command line.`

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		settingsPath  string
		workers       int
		failurePolicy string
		timeout       time.Duration
		compilerArgs  []string
		logFormat     string
		logLevel      string
		statusPort    int

		cfg *app.Config
	)

	cmd := &cobra.Command{
		Use:           "shaderbuild [source-root-dir] [compiler-path]",
		Short:         "Batch-compile GLSL shaders to SPIR-V with an external compiler",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			var c app.Config
			c.SettingsPath = settingsPath
			o := &c.Overrides

			if len(positional) >= 1 {
				o.SourceDir = &positional[0]
			}
			if len(positional) >= 2 {
				o.Compiler = &positional[1]
			}

			flags := cmd.Flags()
			if flags.Changed("workers") {
				o.Workers = &workers
			}
			if flags.Changed("failure-policy") {
				if _, err := compiler.ParsePolicy(failurePolicy); err != nil {
					return err
				}
				o.FailurePolicy = &failurePolicy
			}
			if flags.Changed("timeout") {
				o.Timeout = &timeout
			}
			if flags.Changed("compiler-arg") {
				o.CompilerArgs = compilerArgs
			}
			if flags.Changed("log-format") {
				f := strings.ToLower(logFormat)
				if f != "text" && f != "json" {
					return errors.New("invalid log-format: must be 'text' or 'json'")
				}
				o.LogFormat = &f
			}
			if flags.Changed("log-level") {
				l := strings.ToLower(logLevel)
				switch l {
				case "debug", "info", "warn", "error":
					// valid
				default:
					return errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
				}
				o.LogLevel = &l
			}
			if flags.Changed("status-port") {
				o.StatusPort = &statusPort
			}
			slog.Debug("CLI parameter validation complete.")

			validated, err := app.NewConfig(c)
			if err != nil {
				return err
			}
			cfg = validated
			return nil
		},
	}
	// cobra falls back to os.Args for a nil slice.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVarP(&settingsPath, "config", "c", "", "Path to an HCL settings file.")
	flags.IntVarP(&workers, "workers", "j", 0, "Number of concurrent compiler processes (default: number of CPUs).")
	flags.StringVar(&failurePolicy, "failure-policy", string(compiler.DefaultPolicy), "What marks a compile as failed: 'stderr', 'exit-code' or 'either'.")
	flags.DurationVar(&timeout, "timeout", 0, "Time limit for a single compiler run; 0 disables it.")
	flags.StringArrayVar(&compilerArgs, "compiler-arg", nil, "Extra argument passed to the compiler before the source path (repeatable).")
	flags.StringVar(&logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.IntVar(&statusPort, "status-port", 0, "Port for the HTTP status server. 0 is disabled.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: app.ExitUsage, Message: err.Error()}
	}
	if cfg == nil {
		// --help was handled by cobra without running the command.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

// Package cmd defines and implements the CLI for the pagezip executable.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ixtalo/pagezip/internal/archive"
	"github.com/ixtalo/pagezip/internal/clock/system"
	"github.com/ixtalo/pagezip/internal/config"
	"github.com/ixtalo/pagezip/internal/downloader"
	"github.com/ixtalo/pagezip/internal/fetch"
	"github.com/ixtalo/pagezip/internal/id/uuid"
	"github.com/ixtalo/pagezip/internal/logging"
	"github.com/ixtalo/pagezip/internal/metrics"
	"github.com/ixtalo/pagezip/internal/profiling"
)

// Version is the release version reported by --version.
const Version = "1.1.0"

type rootOptions struct {
	logFile string
	noColor bool
	noSleep bool
	verbose bool
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "pagezip <config.json>",
		Short: "Downloads web pages and stores them into a ZIP file",
		Long: `pagezip fetches a configured list of web pages over HTTP and archives
their HTML bodies into a single timestamped ZIP file inside the configured
data directory. Requests run strictly one at a time, by default separated
by a randomized delay.`,
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.logFile, "logfile", "", "logging to FILE, otherwise use STDOUT")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "no colored log output")
	cmd.Flags().BoolVar(&opts.noSleep, "no-sleep", false, "do not sleep/wait randomly between requests")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "be more verbose")

	return cmd
}

// run wires the collaborators together and executes one batch. Every fatal
// setup error is logged once here before it bubbles up as a non-zero exit.
func run(cmd *cobra.Command, configArg string, opts *rootOptions) error {
	logger, err := logging.New(logging.Options{
		Verbose: opts.verbose,
		NoColor: opts.noColor,
		LogFile: opts.logFile,
	})
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	if runID, idErr := uuid.New().NewID(); idErr == nil {
		logger = logger.With(zap.String("run_id", runID))
	}

	if err := execute(cmd, configArg, opts, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}
	return nil
}

func execute(cmd *cobra.Command, configArg string, opts *rootOptions, logger *zap.Logger) error {
	logger.Info("pagezip", zap.String("version", Version))

	base, err := baseDir()
	if err != nil {
		return fmt.Errorf("determine base directory: %w", err)
	}

	cfgPath, err := config.Resolve(configArg, base)
	if err != nil {
		return err
	}
	logger.Info("loading config file", zap.String("path", cfgPath))

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	target, err := archive.ResolveTarget(cfg.DataDir, base, system.New())
	if err != nil {
		return err
	}
	logger.Info("archive target", zap.String("path", target))

	var delay downloader.DelayPolicy = downloader.UniformRandomDelay{
		Min: downloader.DefaultMinDelay,
		Max: downloader.DefaultMaxDelay,
	}
	if opts.noSleep {
		delay = downloader.NoDelay{}
	}

	dl := downloader.New(cfg, fetch.NewCollyFetcher(logger), delay, metrics.New(), logger)
	return dl.Run(cmd.Context(), target)
}

// baseDir is the directory holding the executable. Relative config and data
// paths resolve against it.
func baseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// Execute is the main entry point. Fatal setup errors exit non-zero;
// per-URL fetch failures never change the exit code.
func Execute() {
	root := newRootCmd()

	exec := root.Execute
	if profiling.Enabled() {
		exec = func() error {
			return profiling.Run(root.Execute)
		}
	}

	if err := exec(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package cli provides the command-line interface for the rvm demos.
package cli

import (
	"fmt"
	"os"

	"github.com/on-the-ground/rvm_ive_go/config"
	"github.com/on-the-ground/rvm_ive_go/engine"
	"github.com/on-the-ground/rvm_ive_go/logging"
	"github.com/on-the-ground/rvm_ive_go/programs"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

type rootOptions struct {
	envFile  string
	logLevel string
	logFile  string
}

// NewRootCommand builds the rvm command tree: one subcommand per demo and
// "all" to run them back to back on a single runtime.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "rvm",
		Short: "rvm runs the memoization, auto-free and tail-call demos.",
		Long: `rvm runs small programs on the runtime with and without ` +
			`its per-function marks and prints how long each variant took. ` +
			`Settings come from the environment and an optional .env file; ` +
			`the flags below override them.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", config.DotEnvFile, "dotenv file read before the environment")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level, overrides "+config.KeyLogLevel)
	flags.StringVar(&opts.logFile, "log-file", "", "log file, overrides "+config.KeyLogFile)

	for _, d := range programs.All() {
		root.AddCommand(demoCommand(opts, d))
	}
	root.AddCommand(allCommand(opts))
	return root
}

// Execute runs the root command with os.Args and returns the process exit
// code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		return 1
	}
	return 0
}

// runtime loads the configuration, applies flag overrides and builds a
// runtime printing to the command's output. The logger is flushed at exit.
func (o *rootOptions) runtime(cmd *cobra.Command) (*engine.Runtime, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}

	logger, closeLog, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	atexit.Register(func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "close log: %v\n", err)
		}
	})

	return engine.New(
		engine.WithConfig(cfg),
		engine.WithLogger(logger),
		engine.WithOutput(cmd.OutOrStdout()),
	), nil
}

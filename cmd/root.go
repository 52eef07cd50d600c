package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomicstack/glyph-popup/internal/app"
	"github.com/atomicstack/glyph-popup/internal/config"
	"github.com/atomicstack/glyph-popup/internal/logging"
)

const (
	exitError = 1
	exitUsage = 2
)

// usageError marks failures caused by bad flags or option values.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// runtime carries what every subcommand needs from the root command.
type runtime struct {
	args    []string
	environ []string
	opts    *config.Options
}

// config validates the bound flags and applies the logging settings.
func (r *runtime) config() (config.Config, error) {
	cfg, err := r.opts.Config(r.args)
	if err != nil {
		return config.Config{}, &usageError{err: err}
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	return cfg, nil
}

// NewRootCommand builds the command tree. args excludes the program name.
func NewRootCommand(args, environ []string, stdout, stderr io.Writer) *cobra.Command {
	rt := &runtime{
		args:    append([]string(nil), args...),
		environ: environ,
	}
	root := &cobra.Command{
		Use:           "glyph-popup",
		Short:         "Pick a glyph or snippet from a nested menu and copy it to the clipboard",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rt.config()
			if err != nil {
				return err
			}
			traceStartup(cfg)
			return app.Run(cfg.App, cfg.Environ, cmd.OutOrStdout())
		},
	}
	root.SetArgs(rt.args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	rt.opts = config.BindFlags(root.PersistentFlags(), environ)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	root.AddCommand(newCheckCommand(rt), newPathsCommand(rt))
	return root
}

// Execute runs the CLI against the process arguments and returns the exit
// code.
func Execute() int {
	return run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr)
}

func run(args, environ []string, stdout, stderr io.Writer) int {
	defer logging.Sync()
	err := NewRootCommand(args, environ, stdout, stderr).Execute()
	if err == nil {
		return 0
	}
	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitUsage
	}
	logging.Error(err)
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}

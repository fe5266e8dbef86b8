// Package cli builds the cobra commands behind the validate-data,
// analyze-conditions and analyze-features binaries.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/abilitydata/internal/config"
	"github.com/cory-johannsen/abilitydata/internal/document"
	"github.com/cory-johannsen/abilitydata/internal/observability"
	"github.com/cory-johannsen/abilitydata/internal/report"
)

// ExitError carries a process exit code for a failure whose diagnostic has
// already been printed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Execute runs cmd and maps its outcome to a process exit code. Errors that
// are not *ExitError are printed to the command's error stream.
//
// Postcondition: returns 0 on success and a non-zero code otherwise.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
	return 1
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"data":      "data.path",
	"url":       "data.url",
	"log-level": "logging.level",
	"color":     "report.color",
	"format":    "report.format",
}

// app holds the state shared by a command's setup and run phases.
type app struct {
	configPath string
	cfg        config.Config
	logger     *zap.Logger
}

type runFunc func(ctx context.Context, cmd *cobra.Command, a *app) error

// newCommand builds a root command with the shared flags. withFormat adds
// --format for commands that honour report.format.
func newCommand(use, short string, withFormat bool, run runFunc) *cobra.Command {
	a := &app{logger: zap.NewNop()}
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer func() { _ = a.logger.Sync() }()
			return run(cmd.Context(), cmd, a)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&a.configPath, "config", "", "path to an optional YAML configuration file")
	flags.String("data", "", fmt.Sprintf("path to the ability data file (default %q)", config.DefaultDataPath))
	flags.String("url", "", "fetch the ability data from this URL instead of a file")
	flags.String("log-level", "", "log level: debug, info, warn or error (default \"warn\")")
	flags.String("color", "", "colour banners: auto, always or never (default \"auto\")")
	if withFormat {
		flags.String("format", "", "output format: text, yaml or json (default \"text\")")
	}
	return cmd
}

// setup resolves configuration from defaults, file, environment and flags,
// then builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.New(a.configPath)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}

	cfg, err := config.LoadFromViper(v)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.Named(cmd.Name())
	return nil
}

func (a *app) source() document.Source {
	if a.cfg.Data.Remote() {
		return document.NewHTTPSource(a.cfg.Data.URL, a.cfg.Data.FetchTimeout, a.logger)
	}
	return document.NewFileSource(a.cfg.Data.Path, a.logger)
}

func (a *app) printer(w io.Writer, format report.Format) *report.Printer {
	return report.NewPrinter(w, format, a.colorize(w))
}

func (a *app) colorize(w io.Writer) bool {
	switch a.cfg.Report.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && f == os.Stdout && !color.NoColor
}

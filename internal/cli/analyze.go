package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/abilitydata/internal/analysis"
	"github.com/cory-johannsen/abilitydata/internal/document"
	"github.com/cory-johannsen/abilitydata/internal/report"
)

// NewConditionsCommand returns the analyze-conditions command, which lists
// every distinct string-valued condition in sorted order.
func NewConditionsCommand() *cobra.Command {
	return newCommand("analyze-conditions", "List the distinct string conditions in the ability data file", true, runConditions)
}

// NewFeaturesCommand returns the analyze-features command, which tallies
// mechanics.features entries by name and lists their key shapes.
func NewFeaturesCommand() *cobra.Command {
	return newCommand("analyze-features", "Summarise mechanics features in the ability data file", true, runFeatures)
}

func runConditions(ctx context.Context, cmd *cobra.Command, a *app) error {
	root, err := loadForAnalysis(ctx, cmd, a)
	if err != nil {
		return err
	}
	p, err := a.analysisPrinter(cmd)
	if err != nil {
		return err
	}

	set := analysis.NewConditionSet()
	set.Collect(root)
	a.logger.Debug("conditions collected", zap.Int("distinct", set.Len()))
	return p.Conditions(set.Sorted())
}

func runFeatures(ctx context.Context, cmd *cobra.Command, a *app) error {
	root, err := loadForAnalysis(ctx, cmd, a)
	if err != nil {
		return err
	}
	p, err := a.analysisPrinter(cmd)
	if err != nil {
		return err
	}

	stats := analysis.NewFeatureStats()
	stats.Collect(root)
	a.logger.Debug("features analysed", zap.Int("distinct", stats.Len()))
	return p.Features(stats.Summaries())
}

// loadForAnalysis reports a missing file on stdout with exit code 1; any other
// load failure is returned for Execute to print.
func loadForAnalysis(ctx context.Context, cmd *cobra.Command, a *app) (*document.Node, error) {
	root, err := a.source().Load(ctx)
	if err == nil {
		return root, nil
	}
	var nf *document.NotFoundError
	if errors.As(err, &nf) {
		if _, perr := fmt.Fprintln(cmd.OutOrStdout(), nf.Error()); perr != nil {
			return nil, perr
		}
		return nil, &ExitError{Code: 1}
	}
	return nil, err
}

func (a *app) analysisPrinter(cmd *cobra.Command) (*report.Printer, error) {
	format, err := report.ParseFormat(a.cfg.Report.Format)
	if err != nil {
		return nil, err
	}
	return a.printer(cmd.OutOrStdout(), format), nil
}

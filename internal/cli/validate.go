package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/abilitydata/internal/report"
	"github.com/cory-johannsen/abilitydata/internal/schema"
)

// NewValidateCommand returns the validate-data command. It prints a banner,
// walks the document and stops at the first rule violation with exit code 1.
func NewValidateCommand() *cobra.Command {
	return newCommand("validate-data", "Validate the structure of the ability data file", false, runValidate)
}

func runValidate(ctx context.Context, cmd *cobra.Command, a *app) error {
	p := a.printer(cmd.OutOrStdout(), report.FormatText)
	src := a.source()

	root, err := src.Load(ctx)
	if err != nil {
		a.logger.Debug("load failed", zap.String("source", src.Name()), zap.Error(err))
		if perr := p.ValidationFailed(err); perr != nil {
			return perr
		}
		return &ExitError{Code: 1}
	}

	if err := p.ValidationStarted(src.Name()); err != nil {
		return err
	}

	if err := schema.NewValidator(a.logger).Validate(root); err != nil {
		var v *schema.Violation
		if errors.As(err, &v) {
			a.logger.Info("schema violation", zap.String("path", v.Path), zap.String("field", v.Field))
		}
		if perr := p.ValidationFailed(err); perr != nil {
			return perr
		}
		return &ExitError{Code: 1}
	}
	return p.ValidationPassed()
}

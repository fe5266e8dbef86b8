// Package main provides the validate-data binary. It walks the ability data
// file once and exits 1 with a single diagnostic line on the first structural
// violation, or prints a success banner and exits 0.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cory-johannsen/abilitydata/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, cli.NewValidateCommand())
	stop()
	os.Exit(code)
}

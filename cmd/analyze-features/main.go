// Package main provides the analyze-features binary, which summarises the
// mechanics features found in the ability data file.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cory-johannsen/abilitydata/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, cli.NewFeaturesCommand())
	stop()
	os.Exit(code)
}

// Package main provides the analyze-conditions binary.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cory-johannsen/abilitydata/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, cli.NewConditionsCommand())
	stop()
	os.Exit(code)
}

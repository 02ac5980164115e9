package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
)

// Set via ldflags at release time.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		cancel()
		os.Exit(1)
	}
}

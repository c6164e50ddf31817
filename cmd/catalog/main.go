// Plant catalog command line
// Renders the catalog dataset into JSON views for the site pages
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nainya/plantcatalog/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// Package cli exposes the confirmwatch command-line interface.
package cli

import (
	"context"
	"os"

	"github.com/gabapcia/confirmwatch/internal/confirmwatch"

	"github.com/urfave/cli/v3"
)

// Run builds and executes the confirmwatch CLI.
//
// Available commands:
//
//   - `watch`: watches an already-mined transaction until it reaches the
//     configured confirmation threshold.
func Run(ctx context.Context, svc confirmwatch.Service) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "confirmwatch",
		Description:           "Command-line interface for tracking transaction confirmations.",
		Usage:                 "confirmwatch [command] [flags]",
		Commands: []*cli.Command{
			watchTransactionCommand(svc),
		},
	}

	return app.Run(ctx, os.Args)
}

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabapcia/confirmwatch/internal/confirmwatch"
	"github.com/gabapcia/confirmwatch/internal/pkg/logger"
	"github.com/gabapcia/confirmwatch/internal/pkg/types"

	"github.com/urfave/cli/v3"
)

// confirmationSinkBufferSize gives the watcher room to emit while the CLI
// is busy logging.
const confirmationSinkBufferSize = 8

// watchTransactionCommand returns the command that tracks a mined
// transaction until the confirmation threshold is met.
//
// Usage example:
//
//	confirmwatch watch --tx 0xf00d... --block-hash 0x8faf... --block-number 0x4b7
//
// The command runs until the threshold is reached or an interrupt
// (SIGINT or SIGTERM) arrives.
func watchTransactionCommand(svc confirmwatch.Service) *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Description: "Watches an already-mined transaction until it reaches the configured confirmation threshold.",
		Usage:       "Tracks confirmations for one transaction. Requires the receipt's block hash and block number.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "tx",
				Usage:    "Hash of the mined transaction",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "block-hash",
				Usage:    "Hash of the block the transaction was included in",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "block-number",
				Usage:    "Number of the inclusion block, hex encoded (e.g. 0x4b7)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			blockNumber, err := types.HexFromString(c.String("block-number"))
			if err != nil {
				return err
			}

			receipt := confirmwatch.Receipt{
				TxHash:      c.String("tx"),
				BlockHash:   c.String("block-hash"),
				BlockNumber: blockNumber,
			}

			sink := make(chan confirmwatch.ConfirmationEvent, confirmationSinkBufferSize)

			handle, err := svc.Watch(ctx, receipt, sink)
			if err != nil {
				return err
			}
			defer handle.Cancel()

			quit := make(chan os.Signal, 1)
			defer close(quit)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			for {
				select {
				case <-quit:
					logger.Info(ctx, "interrupted, stopping watch", "tx.hash", receipt.TxHash)
					return nil

				case event := <-sink:
					logger.Info(ctx, "transaction confirmed",
						"tx.hash", event.Receipt.TxHash,
						"confirmation.number", event.ConfirmationNumber,
						"block.hash", event.LatestBlockHash,
					)

				case <-handle.Done():
					// Drain anything emitted between the last receive and
					// termination before reporting completion.
					for {
						select {
						case event := <-sink:
							logger.Info(ctx, "transaction confirmed",
								"tx.hash", event.Receipt.TxHash,
								"confirmation.number", event.ConfirmationNumber,
								"block.hash", event.LatestBlockHash,
							)
						default:
							logger.Info(ctx, "confirmation threshold reached", "tx.hash", receipt.TxHash)
							return nil
						}
					}
				}
			}
		},
	}
}

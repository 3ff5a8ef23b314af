package confirmwatch

import (
	"context"
	"time"

	"github.com/gabapcia/confirmwatch/internal/pkg/logger"
	"github.com/gabapcia/confirmwatch/internal/pkg/x/chflow"
)

// pollConfirmations actively fetches candidate confirming blocks on a fixed
// interval until the confirmation threshold is met or ctx ends.
//
// Each tick checks the block immediately above the last confirmed one, at
// height receipt.BlockNumber + current count. A block that exists with a
// non-empty hash advances the counter and emits an event; a block the node
// does not have yet simply waits for the next tick. Fetch failures are
// logged and retried on the next tick without backoff; this keeps the loop
// a best-effort liveness mechanism rather than a correctness guarantee.
//
// The fetch runs inline on this goroutine, so ticks that fire while a fetch
// is outstanding coalesce inside the ticker and no two fetches for the same
// watch are ever in flight at once.
func (s *service) pollConfirmations(ctx context.Context, receipt Receipt, state *confirmationState, sink chan<- ConfirmationEvent) {
	ticker := time.NewTicker(s.cfg.pollingInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if state.reached() {
			return
		}

		candidateHeight := receipt.BlockNumber.Add(state.current())

		block, err := s.source.FetchBlockByNumber(ctx, candidateHeight)
		if err != nil {
			logger.Warn(ctx, "confirmation block fetch failed, retrying next tick",
				"tx.hash", receipt.TxHash,
				"block.number", candidateHeight,
				"error", err,
			)
			continue
		}

		if block.Hash == "" {
			// Not mined yet.
			continue
		}

		count := state.advance()
		event := ConfirmationEvent{
			ConfirmationNumber: count,
			Receipt:            receipt,
			LatestBlockHash:    block.Hash,
		}
		if !chflow.Send(ctx, sink, event) {
			return
		}

		s.saveCheckpoint(ctx, receipt.TxHash, count)

		if state.reached() {
			return
		}
	}
}

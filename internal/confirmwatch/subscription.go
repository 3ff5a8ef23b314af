package confirmwatch

import (
	"context"

	"github.com/gabapcia/confirmwatch/internal/pkg/logger"
	"github.com/gabapcia/confirmwatch/internal/pkg/x/chflow"
)

// watchViaSubscription confirms the first block on top of the inclusion
// block through a push-based new-heads subscription, then hands the
// remaining confirmations to the polling loop.
//
// The subscription path only ever advances the counter once: the first
// header that extends the chain at receipt.BlockNumber + 1 is confirmed
// using its parent hash, the subscription is released, and polling takes
// over when the threshold has not been met yet. If subscribing fails, or
// the live subscription reports an error before that first confirmation,
// the strategy falls back to polling with the same state. Either way the
// subscription-to-polling transition happens at most once per watch and
// never runs both strategies concurrently.
func (s *service) watchViaSubscription(ctx context.Context, receipt Receipt, state *confirmationState, sink chan<- ConfirmationEvent) {
	sub, err := s.subscriber.SubscribeNewHeads(ctx)
	if err != nil {
		logger.Warn(ctx, "new-heads subscription unavailable, falling back to polling",
			"tx.hash", receipt.TxHash,
			"error", err,
		)
		s.pollConfirmations(ctx, receipt, state, sink)
		return
	}

	expectedHeight := receipt.BlockNumber.Uint64() + 1

	for {
		select {
		case <-ctx.Done():
			sub.Unsubscribe()
			return

		case err := <-sub.Err():
			sub.Unsubscribe()
			logger.Warn(ctx, "new-heads subscription failed, falling back to polling",
				"tx.hash", receipt.TxHash,
				"error", err,
			)
			s.pollConfirmations(ctx, receipt, state, sink)
			return

		case header, ok := <-sub.Headers():
			if !ok {
				// Stream ended without a transport error; polling still owes
				// the caller the remaining confirmations.
				sub.Unsubscribe()
				s.pollConfirmations(ctx, receipt, state, sink)
				return
			}

			if header.Number.Uint64() != expectedHeight {
				continue
			}

			count := state.advance()
			event := ConfirmationEvent{
				ConfirmationNumber: count,
				Receipt:            receipt,
				LatestBlockHash:    header.ParentHash,
			}
			if !chflow.Send(ctx, sink, event) {
				sub.Unsubscribe()
				return
			}

			s.saveCheckpoint(ctx, receipt.TxHash, count)

			sub.Unsubscribe()
			if !state.reached() {
				s.pollConfirmations(ctx, receipt, state, sink)
			}
			return
		}
	}
}

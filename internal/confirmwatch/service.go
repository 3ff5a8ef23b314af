// Package confirmwatch tracks how many blocks have been mined on top of a
// transaction's inclusion block, emitting one event per confirming block
// until a configured threshold is reached.
//
// The watcher prefers a push-based new-heads subscription when the block
// source supports one and transparently falls back to active polling when
// subscriptions are unavailable or fail. It counts new chain positions
// only: it does not detect or correct for reorganizations, and offers no
// finality guarantee beyond the configured threshold.
package confirmwatch

import (
	"context"
	"sync"
	"time"

	"github.com/gabapcia/confirmwatch/internal/pkg/logger"
	"github.com/gabapcia/confirmwatch/internal/pkg/validator"
)

// defaultPollingInterval matches the Ethereum mainnet average block time.
const defaultPollingInterval = 12 * time.Second

// Configuration carries the per-service watch parameters. It is read-only
// to the watcher.
type Configuration struct {
	// ConfirmationThreshold is the number of confirming blocks required on
	// top of the inclusion block before watching stops. The inclusion block
	// itself counts as the first confirmation, so a threshold of n produces
	// events numbered 2 through n+1.
	ConfirmationThreshold uint64 `validate:"gte=1"`

	// PollingInterval is the cadence of the polling strategy.
	PollingInterval time.Duration `validate:"gt=0"`

	// ReceiptPollingInterval, when set, overrides PollingInterval for
	// confirmation watching specifically.
	ReceiptPollingInterval time.Duration `validate:"gte=0"`
}

// pollingInterval resolves the effective polling cadence.
func (c Configuration) pollingInterval() time.Duration {
	if c.ReceiptPollingInterval > 0 {
		return c.ReceiptPollingInterval
	}
	return c.PollingInterval
}

// Service watches mined transactions until they are confirmed.
type Service interface {
	// Watch begins tracking confirmations for the given receipt, emitting
	// one ConfirmationEvent per confirming block to sink. It validates the
	// receipt synchronously and returns before any confirmation work is
	// scheduled, so the caller always holds the handle before the first
	// event can fire.
	Watch(ctx context.Context, receipt Receipt, sink chan<- ConfirmationEvent) (*Handle, error)
}

// Handle controls one running watch operation.
type Handle struct {
	cancelOnce sync.Once
	cancel     context.CancelFunc
	done       chan struct{}
}

// Cancel stops the watch, halting the active ticker and/or releasing the
// active subscription. It is idempotent and safe to call after natural
// termination.
func (h *Handle) Cancel() {
	h.cancelOnce.Do(h.cancel)
}

// Done is closed when the watch terminates, whether the threshold was
// reached or the operation was canceled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

type service struct {
	cfg    Configuration
	source BlockSource

	subscriber        HeadSubscriber
	checkpointStorage CheckpointStorage
}

var _ Service = (*service)(nil)

func (s *service) Watch(ctx context.Context, receipt Receipt, sink chan<- ConfirmationEvent) (*Handle, error) {
	if err := receipt.validate(); err != nil {
		return nil, err
	}

	state := newConfirmationState(s.cfg.ConfirmationThreshold)

	ctx, cancel := context.WithCancel(ctx)
	handle := &Handle{cancel: cancel, done: make(chan struct{})}

	usePush := s.subscriber != nil && s.source.SupportsPushSubscriptions()

	go func() {
		defer close(handle.done)
		defer cancel()

		if usePush {
			s.watchViaSubscription(ctx, receipt, state, sink)
		} else {
			s.pollConfirmations(ctx, receipt, state, sink)
		}
	}()

	return handle, nil
}

// saveCheckpoint persists confirmation progress best-effort. Storage
// failures are logged and never interrupt the watch.
func (s *service) saveCheckpoint(ctx context.Context, txHash string, count uint64) {
	if err := s.checkpointStorage.SaveConfirmationCount(ctx, txHash, count); err != nil {
		logger.Warn(ctx, "failed to checkpoint confirmation progress",
			"tx.hash", txHash,
			"confirmation.count", count,
			"error", err,
		)
	}
}

type config struct {
	subscriber        HeadSubscriber
	checkpointStorage CheckpointStorage
}

// Option customizes the watch service.
type Option func(*config)

// WithHeadSubscriber enables the push-based strategy, used whenever the
// block source also reports push support.
func WithHeadSubscriber(hs HeadSubscriber) Option {
	return func(c *config) {
		c.subscriber = hs
	}
}

// WithCheckpointStorage persists per-transaction confirmation progress.
func WithCheckpointStorage(cs CheckpointStorage) Option {
	return func(c *config) {
		c.checkpointStorage = cs
	}
}

// New builds a watch service over the given block source. cfg is validated
// eagerly; a zero PollingInterval is replaced by the Ethereum average
// block time before validation.
func New(source BlockSource, cfg Configuration, opts ...Option) (*service, error) {
	if cfg.PollingInterval == 0 {
		cfg.PollingInterval = defaultPollingInterval
	}

	if err := validator.Validate(cfg); err != nil {
		return nil, err
	}

	c := config{
		subscriber:        nil,
		checkpointStorage: nopCheckpoint{},
	}
	for _, opt := range opts {
		opt(&c)
	}

	return &service{
		cfg:               cfg,
		source:            source,
		subscriber:        c.subscriber,
		checkpointStorage: c.checkpointStorage,
	}, nil
}

package confirmwatch

import (
	"context"
	"errors"
)

// ErrNoCheckpointFound is returned by LoadConfirmationCount when no
// progress has been recorded yet for the requested transaction.
var ErrNoCheckpointFound = errors.New("no confirmation checkpoint found for transaction")

// CheckpointStorage persists the confirmation progress of each watched
// transaction so operators can inspect or resume a watch after a restart.
// Saving is best-effort: a storage failure never interrupts the watch.
type CheckpointStorage interface {
	// SaveConfirmationCount records the latest confirmation count observed
	// for the given transaction, overwriting any previous value.
	SaveConfirmationCount(ctx context.Context, txHash string, count uint64) error

	// LoadConfirmationCount returns the last saved confirmation count for
	// the given transaction, or ErrNoCheckpointFound when none exists.
	LoadConfirmationCount(ctx context.Context, txHash string) (uint64, error)
}

// nopCheckpoint discards all progress. It is the default when no storage
// is configured.
type nopCheckpoint struct{}

var _ CheckpointStorage = nopCheckpoint{}

func (nopCheckpoint) SaveConfirmationCount(ctx context.Context, txHash string, count uint64) error {
	return nil
}

func (nopCheckpoint) LoadConfirmationCount(ctx context.Context, txHash string) (uint64, error) {
	return 0, ErrNoCheckpointFound
}

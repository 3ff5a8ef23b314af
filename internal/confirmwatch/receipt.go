package confirmwatch

import (
	"errors"
	"fmt"

	"github.com/gabapcia/confirmwatch/internal/pkg/types"
)

var (
	// ErrMissingReceiptOrBlockHash is returned by Watch when the receipt is
	// absent or carries no block hash, meaning the transaction was never
	// actually mined. This is a caller error and is never retried.
	ErrMissingReceiptOrBlockHash = errors.New("receipt absent or missing its block hash")

	// ErrReceiptMissingBlockNumber is returned by Watch when the receipt
	// lacks the number of its inclusion block.
	ErrReceiptMissingBlockNumber = errors.New("receipt missing its block number")
)

// Receipt records a transaction's inclusion in a specific block. It is
// produced by the transaction-sending workflow and is never mutated here.
type Receipt struct {
	TxHash      string    // hash of the mined transaction
	BlockHash   string    // hash of the inclusion block; empty means absent
	BlockNumber types.Hex // number of the inclusion block; empty means absent
}

// validate enforces the Watch preconditions. Both checks run synchronously
// before any timer or subscription is scheduled.
func (r Receipt) validate() error {
	if r.BlockHash == "" {
		return fmt.Errorf("%w (tx %q)", ErrMissingReceiptOrBlockHash, r.TxHash)
	}

	if r.BlockNumber.IsEmpty() {
		return fmt.Errorf("%w (tx %q)", ErrReceiptMissingBlockNumber, r.TxHash)
	}

	return nil
}

package confirmwatch

import (
	"context"

	"github.com/gabapcia/confirmwatch/internal/pkg/types"
)

// Block is the slice of a blockchain block the watcher cares about.
type Block struct {
	Number     types.Hex // block height
	Hash       string    // block hash; empty while the block is pending
	ParentHash string    // hash of the preceding block
}

// Header is a new-heads notification delivered by a push subscription.
type Header struct {
	Number     types.Hex // height of the announced block
	Hash       string    // hash of the announced block
	ParentHash string    // hash of the block it extends
}

// BlockSource provides read access to chain data. Implementations are
// shared across many concurrent watch operations and must be safe for
// concurrent use.
type BlockSource interface {
	// SupportsPushSubscriptions reports whether the underlying transport
	// can deliver new block headers without polling. The watcher uses it
	// to pick its initial strategy.
	SupportsPushSubscriptions() bool

	// FetchBlockByNumber returns the block at the given height. A block
	// the node does not know yet is reported as the zero Block with a nil
	// error; a non-nil error means the fetch itself failed.
	FetchBlockByNumber(ctx context.Context, number types.Hex) (Block, error)
}

// HeadSubscription is one live new-heads stream.
type HeadSubscription interface {
	// Headers delivers announced block headers.
	Headers() <-chan Header

	// Err delivers at most one transport failure. After an error the
	// subscription is dead and must be released via Unsubscribe.
	Err() <-chan error

	// Unsubscribe releases the subscription. It is idempotent.
	Unsubscribe()
}

// HeadSubscriber opens new-heads subscriptions. Like BlockSource it is
// shared across watch operations.
type HeadSubscriber interface {
	// SubscribeNewHeads opens a subscription scoped to ctx.
	SubscribeNewHeads(ctx context.Context) (HeadSubscription, error)
}

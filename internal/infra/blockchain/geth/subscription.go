package geth

import (
	"context"
	"sync"

	"github.com/gabapcia/confirmwatch/internal/confirmwatch"
	"github.com/gabapcia/confirmwatch/internal/pkg/types"
	"github.com/gabapcia/confirmwatch/internal/pkg/x/chflow"

	"github.com/ethereum/go-ethereum"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
)

// headerChannelBufferSize absorbs short bursts of heads so the node-facing
// channel never backs up while a watch is busy.
const headerChannelBufferSize = 16

// headSubscription adapts a go-ethereum new-heads subscription to the
// confirmwatch.HeadSubscription contract.
type headSubscription struct {
	sub     ethereum.Subscription
	headers chan confirmwatch.Header
	errs    chan error

	unsubscribeOnce sync.Once
}

var _ confirmwatch.HeadSubscription = (*headSubscription)(nil)

func (s *headSubscription) Headers() <-chan confirmwatch.Header {
	return s.headers
}

func (s *headSubscription) Err() <-chan error {
	return s.errs
}

func (s *headSubscription) Unsubscribe() {
	s.unsubscribeOnce.Do(s.sub.Unsubscribe)
}

// forward converts raw geth headers into watcher headers until the
// subscription dies or ctx ends. Transport failures are forwarded once on
// the error channel; a clean shutdown just closes the header stream.
func (s *headSubscription) forward(ctx context.Context, raw <-chan *gethtypes.Header) {
	defer close(s.headers)

	for {
		select {
		case <-ctx.Done():
			return

		case err := <-s.sub.Err():
			if err != nil {
				chflow.Send(ctx, s.errs, err)
			}
			return

		case header := <-raw:
			if header == nil {
				continue
			}

			if !chflow.Send(ctx, s.headers, headerFromGeth(header)) {
				return
			}
		}
	}
}

func headerFromGeth(h *gethtypes.Header) confirmwatch.Header {
	return confirmwatch.Header{
		Number:     types.HexFromUint64(h.Number.Uint64()),
		Hash:       h.Hash().Hex(),
		ParentHash: h.ParentHash.Hex(),
	}
}

// SubscribeNewHeads implements confirmwatch.HeadSubscriber.
func (c *client) SubscribeNewHeads(ctx context.Context) (confirmwatch.HeadSubscription, error) {
	raw := make(chan *gethtypes.Header, headerChannelBufferSize)

	sub, err := c.conn.SubscribeNewHead(ctx, raw)
	if err != nil {
		return nil, err
	}

	hs := &headSubscription{
		sub:     sub,
		headers: make(chan confirmwatch.Header, headerChannelBufferSize),
		errs:    make(chan error, 1),
	}
	go hs.forward(ctx, raw)

	return hs, nil
}

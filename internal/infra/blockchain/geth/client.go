// Package geth implements confirmwatch.BlockSource and
// confirmwatch.HeadSubscriber on top of go-ethereum's ethclient over a
// websocket endpoint, giving the watcher real push-based new-heads
// delivery.
package geth

import (
	"context"
	"errors"
	"math/big"

	"github.com/gabapcia/confirmwatch/internal/confirmwatch"
	"github.com/gabapcia/confirmwatch/internal/pkg/resilience/retry"
	"github.com/gabapcia/confirmwatch/internal/pkg/types"

	"github.com/ethereum/go-ethereum"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

type client struct {
	conn *ethclient.Client
}

var (
	_ confirmwatch.BlockSource    = (*client)(nil)
	_ confirmwatch.HeadSubscriber = (*client)(nil)
)

// Dial connects to the websocket endpoint, retrying transient dial
// failures through r.
func Dial(ctx context.Context, wsEndpoint string, r retry.Retry) (*client, error) {
	var conn *ethclient.Client
	err := r.Execute(ctx, func() error {
		var dialErr error
		conn, dialErr = ethclient.DialContext(ctx, wsEndpoint)
		return dialErr
	})
	if err != nil {
		return nil, err
	}

	return &client{conn: conn}, nil
}

// Close tears down the underlying connection.
func (c *client) Close() {
	c.conn.Close()
}

// SupportsPushSubscriptions reports true: websocket connections support
// eth_subscribe.
func (c *client) SupportsPushSubscriptions() bool {
	return true
}

// FetchBlockByNumber implements confirmwatch.BlockSource. Blocks the node
// does not know yet are reported as the zero Block with a nil error.
func (c *client) FetchBlockByNumber(ctx context.Context, number types.Hex) (confirmwatch.Block, error) {
	header, err := c.conn.HeaderByNumber(ctx, new(big.Int).SetUint64(number.Uint64()))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return confirmwatch.Block{}, nil
		}
		return confirmwatch.Block{}, err
	}

	return blockFromHeader(header), nil
}

func blockFromHeader(h *gethtypes.Header) confirmwatch.Block {
	return confirmwatch.Block{
		Number:     types.HexFromUint64(h.Number.Uint64()),
		Hash:       h.Hash().Hex(),
		ParentHash: h.ParentHash.Hex(),
	}
}

// Package ethereum implements confirmwatch.BlockSource for
// Ethereum-compatible nodes over plain HTTP JSON-RPC. HTTP providers
// cannot push new heads, so this client reports no push support and the
// watcher always polls through it.
package ethereum

import (
	"github.com/gabapcia/confirmwatch/internal/confirmwatch"
	"github.com/gabapcia/confirmwatch/internal/pkg/transport/jsonrpc"
)

type client struct {
	conn jsonrpc.Client
}

var _ confirmwatch.BlockSource = (*client)(nil)

// SupportsPushSubscriptions always reports false: new-heads subscriptions
// need a stateful transport, which a request/response JSON-RPC connection
// does not provide.
func (c *client) SupportsPushSubscriptions() bool {
	return false
}

// NewClient builds a poll-only block source on top of the given JSON-RPC
// connection.
func NewClient(conn jsonrpc.Client) *client {
	return &client{
		conn: conn,
	}
}

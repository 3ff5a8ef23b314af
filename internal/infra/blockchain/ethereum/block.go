package ethereum

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/gabapcia/confirmwatch/internal/confirmwatch"
	"github.com/gabapcia/confirmwatch/internal/pkg/types"
)

// blockResponse is the subset of the eth_getBlockByNumber result the
// watcher needs. Hash is null for pending blocks; encoding/json leaves the
// field empty in that case, which is exactly the "no hash yet" signal the
// watcher expects.
type blockResponse struct {
	Number     types.Hex `json:"number"`
	Hash       string    `json:"hash"`
	ParentHash string    `json:"parentHash"`
}

func (b blockResponse) toBlock() confirmwatch.Block {
	return confirmwatch.Block{
		Number:     b.Number,
		Hash:       b.Hash,
		ParentHash: b.ParentHash,
	}
}

// jsonNull is the result payload a node returns for a block it does not
// know about.
var jsonNull = []byte("null")

// FetchBlockByNumber implements confirmwatch.BlockSource. A block the node
// has not seen yet comes back as the zero Block with a nil error, per the
// BlockSource contract; transactions are not requested since the watcher
// only needs the header fields.
func (c *client) FetchBlockByNumber(ctx context.Context, number types.Hex) (confirmwatch.Block, error) {
	data, err := c.conn.Fetch(ctx, "eth_getBlockByNumber", number, false)
	if err != nil {
		return confirmwatch.Block{}, err
	}

	if len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return confirmwatch.Block{}, nil
	}

	var block blockResponse
	if err := json.Unmarshal(data, &block); err != nil {
		return confirmwatch.Block{}, err
	}

	return block.toBlock(), nil
}

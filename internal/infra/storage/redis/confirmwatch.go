package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gabapcia/confirmwatch/internal/confirmwatch"

	"github.com/redis/go-redis/v9"
)

// confirmwatchKeyPrefix namespaces every key owned by the confirmation
// watcher.
const confirmwatchKeyPrefix = "confirmwatch"

// confirmationCountKey builds the key holding the confirmation progress of
// one transaction: "confirmwatch:confirmations:<txHash>".
func confirmationCountKey(txHash string) string {
	return fmt.Sprintf("%s:confirmations:%s", confirmwatchKeyPrefix, txHash)
}

// SaveConfirmationCount records the latest confirmation count for the
// transaction, overwriting any previous value. The key carries no
// expiration; a finished watch leaves its final count behind for
// inspection.
func (c *client) SaveConfirmationCount(ctx context.Context, txHash string, count uint64) error {
	key := confirmationCountKey(txHash)
	return c.conn.Set(ctx, key, count, 0).Err()
}

// LoadConfirmationCount returns the last saved confirmation count for the
// transaction, or confirmwatch.ErrNoCheckpointFound when the transaction
// was never checkpointed.
func (c *client) LoadConfirmationCount(ctx context.Context, txHash string) (uint64, error) {
	key := confirmationCountKey(txHash)

	val, err := c.conn.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = confirmwatch.ErrNoCheckpointFound
		}

		return 0, err
	}

	return strconv.ParseUint(val, 10, 64)
}

var _ confirmwatch.CheckpointStorage = new(client)

package confirmwatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gabapcia/confirmwatch/internal/pkg/logger"
	"github.com/gabapcia/confirmwatch/internal/pkg/types"
)

func init() {
	// Initialize the global logger so strategy code can log during tests.
	_ = logger.Init(logger.WithLevel("error"))
}

// fakeBlockSource implements BlockSource for tests. It records every
// fetched height and tracks how many fetches ever ran concurrently.
type fakeBlockSource struct {
	pushSupported bool
	fetchDelay    time.Duration
	fetchFn       func(number types.Hex) (Block, error)

	mu      sync.Mutex
	fetched []types.Hex

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

var _ BlockSource = (*fakeBlockSource)(nil)

func (f *fakeBlockSource) SupportsPushSubscriptions() bool {
	return f.pushSupported
}

func (f *fakeBlockSource) FetchBlockByNumber(ctx context.Context, number types.Hex) (Block, error) {
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		max := f.maxInFlight.Load()
		if current <= max || f.maxInFlight.CompareAndSwap(max, current) {
			break
		}
	}

	if f.fetchDelay > 0 {
		time.Sleep(f.fetchDelay)
	}

	f.mu.Lock()
	f.fetched = append(f.fetched, number)
	fn := f.fetchFn
	f.mu.Unlock()

	if fn == nil {
		return Block{}, nil
	}
	return fn(number)
}

func (f *fakeBlockSource) fetchedHeights() []types.Hex {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.Hex(nil), f.fetched...)
}

// blocksAt builds a fetch function backed by a fixed height-to-block map.
// Heights not present behave as blocks the node does not know yet.
func blocksAt(blocks map[uint64]Block) func(number types.Hex) (Block, error) {
	return func(number types.Hex) (Block, error) {
		return blocks[number.Uint64()], nil
	}
}

// fakeHeadSubscription implements HeadSubscription with buffered channels
// the test can feed, counting Unsubscribe calls.
type fakeHeadSubscription struct {
	headers chan Header
	errs    chan error

	unsubscribes atomic.Int32
}

var _ HeadSubscription = (*fakeHeadSubscription)(nil)

func newFakeHeadSubscription() *fakeHeadSubscription {
	return &fakeHeadSubscription{
		headers: make(chan Header, 8),
		errs:    make(chan error, 1),
	}
}

func (f *fakeHeadSubscription) Headers() <-chan Header {
	return f.headers
}

func (f *fakeHeadSubscription) Err() <-chan error {
	return f.errs
}

func (f *fakeHeadSubscription) Unsubscribe() {
	f.unsubscribes.Add(1)
}

// fakeHeadSubscriber hands out a single prepared subscription, or fails
// every subscribe attempt with err.
type fakeHeadSubscriber struct {
	sub *fakeHeadSubscription
	err error

	calls atomic.Int32
}

var _ HeadSubscriber = (*fakeHeadSubscriber)(nil)

func (f *fakeHeadSubscriber) SubscribeNewHeads(ctx context.Context) (HeadSubscription, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

// recordingCheckpoint captures every saved confirmation count per tx.
type recordingCheckpoint struct {
	mu     sync.Mutex
	counts map[string][]uint64
}

var _ CheckpointStorage = (*recordingCheckpoint)(nil)

func newRecordingCheckpoint() *recordingCheckpoint {
	return &recordingCheckpoint{counts: make(map[string][]uint64)}
}

func (r *recordingCheckpoint) SaveConfirmationCount(ctx context.Context, txHash string, count uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[txHash] = append(r.counts[txHash], count)
	return nil
}

func (r *recordingCheckpoint) LoadConfirmationCount(ctx context.Context, txHash string) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved, ok := r.counts[txHash]
	if !ok || len(saved) == 0 {
		return 0, ErrNoCheckpointFound
	}
	return saved[len(saved)-1], nil
}

func (r *recordingCheckpoint) savedCounts(txHash string) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint64(nil), r.counts[txHash]...)
}

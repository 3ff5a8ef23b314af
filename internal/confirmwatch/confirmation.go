package confirmwatch

import "sync"

// ConfirmationEvent is emitted to the sink once per accepted confirming
// block.
type ConfirmationEvent struct {
	ConfirmationNumber uint64  // running confirmation count, starting from 2
	Receipt            Receipt // the receipt this confirmation belongs to
	LatestBlockHash    string  // hash of the block that produced this confirmation
}

// confirmationState is the single mutable piece of a watch operation. It is
// owned exclusively by that operation and handed to whichever strategy is
// currently active. The mutex matters at the subscription-to-polling
// handoff, where the counter crosses goroutines.
type confirmationState struct {
	mu     sync.Mutex
	count  uint64 // confirmations observed so far; the inclusion block counts as the first
	target uint64 // confirming blocks required on top of the inclusion block
}

func newConfirmationState(target uint64) *confirmationState {
	return &confirmationState{count: 1, target: target}
}

// current returns the confirmations observed so far.
func (s *confirmationState) current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// advance increments the counter by one confirmed block and returns the
// new count. The counter never decreases.
func (s *confirmationState) advance() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	return s.count
}

// reached reports whether the confirmation threshold has been met. The
// inclusion block is confirmation 1, so a threshold of n is met once n
// confirming blocks have been observed on top of it.
func (s *confirmationState) reached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count > s.target
}

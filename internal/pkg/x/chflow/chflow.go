// Package chflow wraps channel sends and receives with context awareness,
// so goroutines blocked on a channel always unblock when their context is
// canceled.
package chflow

import "context"

// Receive blocks until a value arrives on ch or ctx is canceled.
// The boolean result is false when the context ended or ch was closed.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, false
	case v, ok := <-ch:
		return v, ok
	}
}

// Send blocks until data is accepted by ch or ctx is canceled.
// It reports whether the value was actually sent.
func Send[T any](ctx context.Context, ch chan<- T, data T) bool {
	select {
	case <-ctx.Done():
		return false
	case ch <- data:
		return true
	}
}

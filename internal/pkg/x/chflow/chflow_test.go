package chflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceive(t *testing.T) {
	t.Run("receives a value", func(t *testing.T) {
		ch := make(chan int, 1)
		ch <- 42

		v, ok := Receive(t.Context(), ch)
		require.True(t, ok)
		assert.Equal(t, 42, v)
	})

	t.Run("closed channel", func(t *testing.T) {
		ch := make(chan int)
		close(ch)

		_, ok := Receive(t.Context(), ch)
		assert.False(t, ok)
	})

	t.Run("canceled context unblocks", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		ch := make(chan int)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, ok := Receive(ctx, ch)
			assert.False(t, ok)
		}()

		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Receive did not unblock on context cancellation")
		}
	})
}

func TestSend(t *testing.T) {
	t.Run("sends a value", func(t *testing.T) {
		ch := make(chan string, 1)

		ok := Send(t.Context(), ch, "hello")
		require.True(t, ok)
		assert.Equal(t, "hello", <-ch)
	})

	t.Run("canceled context unblocks", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		ch := make(chan string)

		done := make(chan struct{})
		go func() {
			defer close(done)
			ok := Send(ctx, ch, "stuck")
			assert.False(t, ok)
		}()

		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Send did not unblock on context cancellation")
		}
	})
}

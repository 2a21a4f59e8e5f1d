// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/biosynth/pkg/types"
)

func TestStatusCycleWraps(t *testing.T) {
	var c StatusCycle
	require.Len(t, StatusMessages, 7)
	assert.Equal(t, "Initializing research agents...", c.Current())

	seen := []string{c.Current()}
	for i := 0; i < len(StatusMessages); i++ {
		seen = append(seen, c.Advance())
	}
	assert.Equal(t, StatusMessages, seen[:len(StatusMessages)])
	assert.Equal(t, StatusMessages[0], seen[len(StatusMessages)], "wraps to the first message")

	c.Advance()
	c.Reset()
	assert.Equal(t, StatusMessages[0], c.Current())
}

func TestStatusCycleCustomMessages(t *testing.T) {
	c := StatusCycle{Messages: []string{"a", "b"}}
	assert.Equal(t, "a", c.Current())
	assert.Equal(t, "b", c.Advance())
	assert.Equal(t, "a", c.Advance())
}

func TestNewTickerDefaultInterval(t *testing.T) {
	assert.Equal(t, types.DefaultStatusInterval, NewTicker(0).Interval)
	assert.Equal(t, time.Second, NewTicker(time.Second).Interval)
}

func TestTickerRunCyclesAndStops(t *testing.T) {
	tk := &Ticker{Interval: 5 * time.Millisecond, Messages: []string{"one", "two", "three"}}

	var (
		mu  sync.Mutex
		got []string
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		tk.Run(ctx, func(msg string) {
			mu.Lock()
			got = append(got, msg)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) >= 4
	}, 2*time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"one", "two", "three", "one"}, got[:4])
}

func TestTickerRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	NewTicker(time.Millisecond).Run(ctx, func(string) { called = true })
	assert.False(t, called)
}

package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferDrainReturnsAndClears(t *testing.T) {
	b := NewNotificationBuffer()
	b.Push(testRecord("a", "First"))
	b.Push(testRecord("b", "Second"))

	drained := b.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, "a", drained[0].ID)
	assert.Equal(t, "b", drained[1].ID)

	assert.Nil(t, b.Drain())
}

func TestBufferSignalCoalesces(t *testing.T) {
	b := NewNotificationBuffer()
	b.Push(testRecord("a", "First"))
	b.Push(testRecord("b", "Second"))

	// Both pushes collapse into one pending signal.
	msg := b.WaitForSignal()()
	assert.IsType(t, drainNotificationsMsg{}, msg)

	select {
	case <-b.signal:
		t.Fatal("expected the signal channel to be drained")
	default:
	}
}

func TestBufferSignalWakesWaiter(t *testing.T) {
	b := NewNotificationBuffer()

	got := make(chan struct{})
	go func() {
		b.WaitForSignal()()
		close(got)
	}()

	b.Push(testRecord("a", "First"))

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("waiter was never signalled")
	}
}

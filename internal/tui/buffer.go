package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tablekit/tablekit/internal/core/notify"
)

type drainNotificationsMsg struct{}

// NotificationBuffer buffers records added outside the Bubble Tea loop
// and emits coalesced drain signals into it.
type NotificationBuffer struct {
	mu      sync.Mutex
	records []notify.Record
	signal  chan struct{}
}

// NewNotificationBuffer constructs a buffer for async notification delivery.
func NewNotificationBuffer() *NotificationBuffer {
	return &NotificationBuffer{
		records: make([]notify.Record, 0),
		signal:  make(chan struct{}, 1),
	}
}

// Push appends a record and emits a non-blocking drain signal.
// Registered as a Log OnAdd subscriber.
func (b *NotificationBuffer) Push(rec notify.Record) {
	b.mu.Lock()
	b.records = append(b.records, rec)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered records and clears the buffer.
func (b *NotificationBuffer) Drain() []notify.Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.records) == 0 {
		return nil
	}

	out := make([]notify.Record, len(b.records))
	copy(out, b.records)
	b.records = b.records[:0]
	return out
}

// WaitForSignal blocks until there are records ready to drain.
func (b *NotificationBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainNotificationsMsg{}
	}
}

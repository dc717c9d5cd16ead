package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Subscriber is a callback invoked after a record has been added to the Log.
type Subscriber func(Record)

// Log is the authoritative in-memory notification list, ordered newest
// first. All mutations go through its API; persistence happens
// asynchronously through a write-serialized saver so callers never block
// on storage. Safe for concurrent use.
type Log struct {
	mu          sync.Mutex
	records     []Record
	subscribers []Subscriber
	saver       *saver
}

// NewLog creates a Log backed by the given store. A nil store keeps the
// Log purely in-memory (used in tests).
func NewLog(store Store) *Log {
	l := &Log{}
	if store != nil {
		l.saver = newSaver(store)
	}
	return l
}

// OnAdd registers a callback invoked for every successfully added record.
// Callbacks run after the mutation commits; they cannot roll it back.
func (l *Log) OnAdd(fn Subscriber) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, fn)
}

// Add prepends a record to the Log. An empty ID gets a generated one and
// a zero CreatedAt is stamped with the current time. Adding an ID that
// already exists is a duplicate delivery and is ignored.
func (l *Log) Add(rec Record) {
	if rec.ID == "" {
		rec.ID = NewID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	l.mu.Lock()
	for _, r := range l.records {
		if r.ID == rec.ID {
			l.mu.Unlock()
			log.Debug().Str("id", rec.ID).Msg("duplicate notification ignored")
			return
		}
	}
	l.records = append([]Record{rec}, l.records...)
	l.persistLocked()
	subs := make([]Subscriber, len(l.subscribers))
	copy(subs, l.subscribers)
	l.mu.Unlock()

	for _, fn := range subs {
		fn(rec)
	}
}

// MarkRead flips a record's read flag to true. Missing or already-read
// IDs are silent no-ops; the flag never goes back to false.
func (l *Log) MarkRead(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, r := range l.records {
		if r.ID != id {
			continue
		}
		if r.Read {
			return
		}
		l.records[i].Read = true
		l.persistLocked()
		return
	}
}

// Remove deletes a record by ID. Missing IDs are silent no-ops.
func (l *Log) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i:i], l.records[i+1:]...)
			l.persistLocked()
			return
		}
	}
}

// ClearAll empties the Log and durable storage. Unlike the other
// mutations the storage write happens inline; prior history is gone.
func (l *Log) ClearAll(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
	if l.saver == nil {
		return
	}
	l.saver.discardPending()
	// A snapshot the writer already dequeued would land after the clear
	// and resurrect the old list; wait it out before touching storage.
	l.saver.flush()
	if err := l.saver.store.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to clear notification storage")
	}
}

// Load replaces the in-memory list with the persisted snapshot. Called
// once at startup; a failed or malformed load degrades to an empty list.
func (l *Log) Load(ctx context.Context) {
	if l.saver == nil {
		return
	}
	records, err := l.saver.store.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load notifications, starting empty")
		records = nil
	}
	l.mu.Lock()
	l.records = records
	l.mu.Unlock()
}

// All returns a copy of the list, newest first.
func (l *Log) All() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// UnreadCount is derived from the list on every call; it is never
// stored separately.
func (l *Log) UnreadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, r := range l.records {
		if !r.Read {
			n++
		}
	}
	return n
}

// Flush blocks until all pending persistence writes have completed.
func (l *Log) Flush() {
	if l.saver != nil {
		l.saver.flush()
	}
}

// Close flushes pending writes and stops the background saver.
func (l *Log) Close() {
	if l.saver != nil {
		l.saver.close()
	}
}

// persistLocked hands the current list to the saver. Callers hold l.mu.
func (l *Log) persistLocked() {
	if l.saver == nil {
		return
	}
	snapshot := make([]Record, len(l.records))
	copy(snapshot, l.records)
	l.saver.enqueue(snapshot)
}

package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const saveTimeout = 5 * time.Second

// saver serializes full-snapshot writes to a Store. Snapshots are
// full-list overwrites, so only the newest pending snapshot matters:
// enqueue replaces any unwritten one (latest wins) and a single writer
// goroutine performs one Save at a time. The last write to complete is
// therefore always the newest list, which is the race the Log must
// guard against.
type saver struct {
	store Store

	mu       sync.Mutex
	cond     *sync.Cond
	pending  []Record
	dirty    bool
	inflight bool

	signal chan struct{}
	quit   chan struct{}
	done   chan struct{}
}

func newSaver(store Store) *saver {
	s := &saver{
		store:  store,
		signal: make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.run()
	return s
}

// enqueue replaces the pending snapshot and wakes the writer. Never blocks.
func (s *saver) enqueue(snapshot []Record) {
	s.mu.Lock()
	s.pending = snapshot
	s.dirty = true
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// discardPending drops any unwritten snapshot. Used by ClearAll so a
// stale pre-clear snapshot cannot resurrect cleared history.
func (s *saver) discardPending() {
	s.mu.Lock()
	s.pending = nil
	s.dirty = false
	s.cond.Broadcast()
	s.mu.Unlock()
}

// flush blocks until no snapshot is pending or being written.
func (s *saver) flush() {
	s.mu.Lock()
	for s.dirty || s.inflight {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

// close flushes outstanding work and stops the writer goroutine.
func (s *saver) close() {
	s.flush()
	close(s.quit)
	<-s.done
}

func (s *saver) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case <-s.signal:
			s.drain()
		}
	}
}

func (s *saver) drain() {
	for {
		s.mu.Lock()
		if !s.dirty {
			s.mu.Unlock()
			return
		}
		snapshot := s.pending
		s.pending = nil
		s.dirty = false
		s.inflight = true
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		if err := s.store.Save(ctx, snapshot); err != nil {
			// Non-fatal: the next successful mutation's save catches up.
			log.Warn().Err(err).Int("records", len(snapshot)).Msg("failed to persist notifications")
		}
		cancel()

		s.mu.Lock()
		s.inflight = false
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

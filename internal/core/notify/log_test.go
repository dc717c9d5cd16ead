package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory snapshot Store for testing. An optional
// delay simulates slow storage I/O.
type memStore struct {
	mu       sync.Mutex
	snapshot []Record
	saves    int
	delay    time.Duration
	failSave error
}

func (m *memStore) Save(_ context.Context, records []Record) error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave != nil {
		return m.failSave
	}
	m.snapshot = append([]Record(nil), records...)
	m.saves++
	return nil
}

func (m *memStore) Load(_ context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.snapshot...), nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = nil
	return nil
}

func (m *memStore) persisted() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.snapshot...)
}

func rec(id, title string) Record {
	return Record{ID: id, Title: title, Kind: KindInfo, CreatedAt: time.Now()}
}

func TestLog_Add_orders_newest_first(t *testing.T) {
	l := NewLog(nil)

	l.Add(rec("1", "first"))
	l.Add(rec("2", "second"))
	l.Add(rec("3", "third"))

	items := l.All()
	require.Len(t, items, 3)
	assert.Equal(t, "3", items[0].ID)
	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, "1", items[2].ID)
}

func TestLog_Add_duplicate_id_is_noop(t *testing.T) {
	l := NewLog(nil)

	first := rec("1", "original")
	first.Message = "keep me"
	l.Add(first)

	dup := rec("1", "replacement")
	dup.Message = "drop me"
	l.Add(dup)

	items := l.All()
	require.Len(t, items, 1)
	assert.Equal(t, "keep me", items[0].Message)
}

func TestLog_Add_generates_id_and_timestamp(t *testing.T) {
	l := NewLog(nil)

	l.Add(Record{Title: "no id"})

	items := l.All()
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].ID)
	assert.False(t, items[0].CreatedAt.IsZero())
}

func TestLog_MarkRead_is_monotonic(t *testing.T) {
	l := NewLog(nil)
	l.Add(rec("1", "hello"))

	l.MarkRead("1")
	l.MarkRead("1")
	l.MarkRead("1")

	items := l.All()
	require.Len(t, items, 1)
	assert.True(t, items[0].Read)
	assert.Equal(t, 0, l.UnreadCount())
}

func TestLog_MarkRead_missing_id_is_noop(t *testing.T) {
	l := NewLog(nil)
	l.Add(rec("1", "hello"))

	l.MarkRead("nope")

	assert.Equal(t, 1, l.UnreadCount())
}

func TestLog_UnreadCount_is_derived(t *testing.T) {
	l := NewLog(nil)

	assert.Equal(t, 0, l.UnreadCount())

	l.Add(rec("1", "a"))
	l.Add(rec("2", "b"))
	l.Add(rec("3", "c"))
	assert.Equal(t, 3, l.UnreadCount())

	l.MarkRead("2")
	assert.Equal(t, 2, l.UnreadCount())

	l.Remove("1")
	assert.Equal(t, 1, l.UnreadCount())
}

func TestLog_lifecycle_scenario(t *testing.T) {
	l := NewLog(nil)

	l.Add(rec("1", "order up"))
	assert.Equal(t, 1, l.UnreadCount())

	l.MarkRead("1")
	assert.Equal(t, 0, l.UnreadCount())

	l.Remove("1")
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.UnreadCount())
}

func TestLog_Remove_missing_id_is_noop(t *testing.T) {
	l := NewLog(nil)
	l.Add(rec("1", "a"))

	l.Remove("nope")

	assert.Equal(t, 1, l.Len())
}

func TestLog_OnAdd_fires_for_new_records_only(t *testing.T) {
	l := NewLog(nil)

	var seen []string
	l.OnAdd(func(r Record) { seen = append(seen, r.ID) })

	l.Add(rec("1", "a"))
	l.Add(rec("1", "a again"))
	l.Add(rec("2", "b"))

	assert.Equal(t, []string{"1", "2"}, seen)
}

func TestLog_persists_after_each_mutation(t *testing.T) {
	store := &memStore{}
	l := NewLog(store)
	defer l.Close()

	l.Add(rec("1", "a"))
	l.Add(rec("2", "b"))
	l.MarkRead("1")
	l.Flush()

	persisted := store.persisted()
	require.Len(t, persisted, 2)
	assert.Equal(t, "2", persisted[0].ID)
	assert.Equal(t, "1", persisted[1].ID)
	assert.True(t, persisted[1].Read)
}

func TestLog_writes_are_serialized_latest_wins(t *testing.T) {
	store := &memStore{delay: 20 * time.Millisecond}
	l := NewLog(store)
	defer l.Close()

	l.Add(rec("a", "first"))
	l.Add(rec("b", "second"))
	l.Flush()

	persisted := store.persisted()
	require.Len(t, persisted, 2)
	assert.Equal(t, "b", persisted[0].ID)
	assert.Equal(t, "a", persisted[1].ID)
}

func TestLog_save_failure_does_not_affect_memory(t *testing.T) {
	store := &memStore{failSave: assert.AnError}
	l := NewLog(store)
	defer l.Close()

	l.Add(rec("1", "a"))
	l.Flush()

	assert.Equal(t, 1, l.Len())
	assert.Empty(t, store.persisted())
}

func TestLog_ClearAll_empties_log_and_storage(t *testing.T) {
	store := &memStore{}
	l := NewLog(store)
	defer l.Close()

	l.Add(rec("1", "a"))
	l.Add(rec("2", "b"))
	l.Flush()
	require.Len(t, store.persisted(), 2)

	l.ClearAll(context.Background())
	l.Flush()

	assert.Equal(t, 0, l.Len())
	assert.Empty(t, store.persisted())
}

func TestLog_ClearAll_waits_for_inflight_save(t *testing.T) {
	store := &memStore{delay: 150 * time.Millisecond}
	l := NewLog(store)
	defer l.Close()

	l.Add(rec("1", "a"))
	// Give the writer time to dequeue the snapshot and start the slow save.
	time.Sleep(30 * time.Millisecond)

	l.ClearAll(context.Background())
	l.Flush()

	assert.Equal(t, 0, l.Len())
	assert.Empty(t, store.persisted())
}

func TestLog_Load_replaces_in_memory_list(t *testing.T) {
	store := &memStore{}
	seed := NewLog(store)
	seed.Add(rec("1", "a"))
	seed.Add(rec("2", "b"))
	seed.Close()

	l := NewLog(store)
	defer l.Close()
	l.Load(context.Background())

	items := l.All()
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[0].ID)
}

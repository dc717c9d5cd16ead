package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/internal/core/config"
	"github.com/tablekit/tablekit/internal/core/notify"
	"github.com/tablekit/tablekit/pkg/tuitest"
)

func newTestModel(t *testing.T) (Model, *notify.Log) {
	t.Helper()
	cfg := config.DefaultConfig()
	log := notify.NewLog(nil)
	t.Cleanup(log.Close)

	m := New(&cfg, log)
	updated, _ := m.Update(tuitest.WindowSize(100, 30))
	return updated.(Model), log
}

func addAndDrain(t *testing.T, m Model, log *notify.Log, rec notify.Record) Model {
	t.Helper()
	log.Add(rec)
	updated, _ := m.Update(drainNotificationsMsg{})
	return updated.(Model)
}

func TestModelDrainShowsToastAndUpdatesList(t *testing.T) {
	m, log := newTestModel(t)

	m = addAndDrain(t, m, log, testRecord("a", "Order received"))

	assert.True(t, m.toast.Active())
	assert.Equal(t, "a", m.toast.Record().ID)

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "Order received")
	assert.Contains(t, out, "(1 unread)")
}

func TestModelDrainLatestArrivalWinsToastSlot(t *testing.T) {
	m, log := newTestModel(t)

	m = addAndDrain(t, m, log, testRecord("a", "First"))
	m = addAndDrain(t, m, log, testRecord("b", "Second"))
	m = addAndDrain(t, m, log, testRecord("c", "Third"))

	// "a" still owns the slot; only "c" is parked behind it.
	assert.Equal(t, "a", m.toast.Record().ID)
	require.NotNil(t, m.toast.pending)
	assert.Equal(t, "c", m.toast.pending.ID)

	// The list sees every record regardless of toast coalescing.
	assert.Equal(t, 3, log.Len())
}

func TestModelEnterMarksReadAndResolves(t *testing.T) {
	m, log := newTestModel(t)
	m = addAndDrain(t, m, log, notify.Record{
		ID:           "a",
		Title:        "Menu item saved",
		Message:      "\"Carbonara\" was saved",
		Kind:         notify.KindSuccess,
		TargetItemID: "itm_1",
	})

	updated, _ := m.Update(tuitest.KeyEnter())
	m = updated.(Model)

	recs := log.All()
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Read)
	assert.Equal(t, 0, log.UnreadCount())
	assert.Equal(t, "Menu item itm_1", m.dest)
}

func TestModelEnterWithoutTargetMarksReadOnly(t *testing.T) {
	m, log := newTestModel(t)
	m = addAndDrain(t, m, log, testRecord("a", "Heads up"))

	updated, _ := m.Update(tuitest.KeyEnter())
	m = updated.(Model)

	assert.Equal(t, 0, log.UnreadCount())
	assert.Empty(t, m.dest)
}

func TestModelDeleteRemovesSelected(t *testing.T) {
	m, log := newTestModel(t)
	m = addAndDrain(t, m, log, testRecord("a", "First"))
	m = addAndDrain(t, m, log, testRecord("b", "Second"))

	// Newest-first: cursor 0 is "b".
	updated, _ := m.Update(tuitest.KeyPress('x'))
	m = updated.(Model)

	recs := log.All()
	require.Len(t, recs, 1)
	assert.Equal(t, "a", recs[0].ID)

	out := tuitest.StripANSI(m.View())
	assert.NotContains(t, out, "Second")
}

func TestModelEscDismissesToastBeforeSearch(t *testing.T) {
	m, log := newTestModel(t)
	m = addAndDrain(t, m, log, testRecord("a", "First"))
	require.True(t, m.toast.Active())

	updated, _ := m.Update(tuitest.KeyEsc())
	m = updated.(Model)
	assert.Equal(t, toastExiting, m.toast.phase)
}

func TestModelSearchFlow(t *testing.T) {
	m, log := newTestModel(t)
	m = addAndDrain(t, m, log, testRecord("a", "Order received"))
	m = addAndDrain(t, m, log, testRecord("b", "Staff invited"))

	updated, _ := m.Update(tuitest.KeyPress('/'))
	m = updated.(Model)
	require.True(t, m.view.Searching())

	for _, msg := range tuitest.KeyString("staff") {
		updated, _ = m.Update(msg)
		m = updated.(Model)
	}
	require.Len(t, m.view.filtered, 1)
	assert.Equal(t, "b", m.view.filtered[0].ID)

	// Enter commits the filter; selection actions now work on it.
	updated, _ = m.Update(tuitest.KeyEnter())
	m = updated.(Model)
	assert.False(t, m.view.Searching())

	rec, ok := m.view.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", rec.ID)
}

func TestModelDetailModalOpenClose(t *testing.T) {
	m, log := newTestModel(t)
	m = addAndDrain(t, m, log, testRecord("a", "Order received"))

	updated, _ := m.Update(tuitest.KeyPress('o'))
	m = updated.(Model)
	require.NotNil(t, m.detail)

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "Order received")

	updated, _ = m.Update(tuitest.KeyEsc())
	m = updated.(Model)
	assert.Nil(t, m.detail)
}

func TestModelCtrlOOpensToastRecord(t *testing.T) {
	m, log := newTestModel(t)
	m = addAndDrain(t, m, log, notify.Record{
		ID:    "a",
		Title: "Weekly report",
		Kind:  notify.KindInfo,
		Link:  notify.RouteReports,
	})
	require.True(t, m.toast.Active())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	m = updated.(Model)

	assert.Equal(t, 0, log.UnreadCount())
	assert.Equal(t, "Reports", m.dest)
	assert.Equal(t, toastExiting, m.toast.phase)
}

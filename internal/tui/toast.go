package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tablekit/tablekit/internal/core/notify"
	"github.com/tablekit/tablekit/internal/core/styles"
)

const (
	toastFrameInterval = 40 * time.Millisecond
	toastEnterFrames   = 4
	toastWidth         = 44
	defaultToastHold   = 3 * time.Second
)

type toastPhase int

const (
	toastHidden toastPhase = iota
	toastEntering
	toastVisible
	toastExiting
)

// toastFrameMsg advances the enter/exit animation. The seq field ties
// the message to one presentation; stale messages are dropped.
type toastFrameMsg struct{ seq int }

// toastHoldMsg fires when the visible hold period elapses.
type toastHoldMsg struct{ seq int }

// Toast is the single-slot transient alert presenter. It surfaces the
// most recent notification for a few seconds, independent of the full
// log. While the slot is occupied, only the newest arriving record is
// parked for display once the slot frees; older parked records are
// dropped without touching the log's read state.
type Toast struct {
	phase   toastPhase
	rec     notify.Record
	pending *notify.Record
	hold    time.Duration
	frame   int
	seq     int
}

// NewToast creates a presenter with the given hold duration. A zero
// duration falls back to the default.
func NewToast(hold time.Duration) Toast {
	if hold <= 0 {
		hold = defaultToastHold
	}
	return Toast{hold: hold}
}

// Show presents a record, or parks it if the slot is occupied.
func (t Toast) Show(rec notify.Record) (Toast, tea.Cmd) {
	if t.phase != toastHidden {
		t.pending = &rec
		return t, nil
	}
	return t.adopt(rec)
}

func (t Toast) adopt(rec notify.Record) (Toast, tea.Cmd) {
	t.rec = rec
	t.pending = nil
	t.phase = toastEntering
	t.frame = 0
	t.seq++
	return t, toastFrame(t.seq)
}

// Update processes toast animation and timer messages.
func (t Toast) Update(msg tea.Msg) (Toast, tea.Cmd) {
	switch msg := msg.(type) {
	case toastFrameMsg:
		if msg.seq != t.seq {
			return t, nil
		}
		switch t.phase {
		case toastEntering:
			t.frame++
			if t.frame >= toastEnterFrames {
				t.phase = toastVisible
				return t, toastHoldTimer(t.seq, t.hold)
			}
			return t, toastFrame(t.seq)
		case toastExiting:
			t.frame--
			if t.frame > 0 {
				return t, toastFrame(t.seq)
			}
			t.phase = toastHidden
			t.rec = notify.Record{}
			if t.pending != nil {
				return t.adopt(*t.pending)
			}
		}

	case toastHoldMsg:
		if msg.seq != t.seq || t.phase != toastVisible {
			return t, nil
		}
		t.phase = toastExiting
		return t, toastFrame(t.seq)
	}

	return t, nil
}

// Dismiss short-circuits the presentation into its exit animation,
// cancelling the hold timer.
func (t Toast) Dismiss() (Toast, tea.Cmd) {
	if t.phase == toastHidden || t.phase == toastExiting {
		return t, nil
	}
	t.seq++ // invalidates the pending hold timer and any in-flight frame
	t.phase = toastExiting
	if t.frame < 1 {
		t.frame = 1
	}
	return t, toastFrame(t.seq)
}

// Active reports whether the slot is occupied.
func (t Toast) Active() bool {
	return t.phase != toastHidden
}

// Record returns the record currently being presented.
func (t Toast) Record() notify.Record {
	return t.rec
}

// View renders the toast box. The shrinking right padding while
// entering (and growing while exiting) slides the box in from the
// screen edge when the parent right-aligns it.
func (t Toast) View() string {
	if t.phase == toastHidden {
		return ""
	}

	content := styles.KindIcon(string(t.rec.Kind)) + " " + t.rec.Title
	if t.rec.Message != "" {
		content += ": " + t.rec.Message
	}
	if runes := []rune(content); len(runes) > toastWidth {
		content = string(runes[:toastWidth-1]) + "…"
	}

	style := styles.KindStyle(string(t.rec.Kind))
	return style.PaddingRight(1 + (toastEnterFrames - t.frame)).Render(content)
}

func toastFrame(seq int) tea.Cmd {
	return tea.Tick(toastFrameInterval, func(time.Time) tea.Msg {
		return toastFrameMsg{seq: seq}
	})
}

func toastHoldTimer(seq int, hold time.Duration) tea.Cmd {
	return tea.Tick(hold, func(time.Time) tea.Msg {
		return toastHoldMsg{seq: seq}
	})
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tablekit/tablekit/internal/core/notify"
	"github.com/tablekit/tablekit/internal/core/styles"
)

// NotificationsView is the full history browser over the log: live
// search, time-bucketed timestamps, and per-item actions. It is a pure
// consumer; ordering comes from the log and is never re-sorted here.
type NotificationsView struct {
	all      []notify.Record
	filtered []notify.Record
	cursor   int

	search    textinput.Model
	searching bool

	width  int
	height int

	now func() time.Time
}

// NewNotificationsView creates an empty view.
func NewNotificationsView() NotificationsView {
	ti := textinput.New()
	ti.Placeholder = "Search notifications..."
	ti.CharLimit = 100
	ti.Prompt = "/ "

	return NotificationsView{
		search: ti,
		now:    time.Now,
	}
}

// SetRecords replaces the backing list and re-applies the filter.
func (v *NotificationsView) SetRecords(records []notify.Record) {
	v.all = records
	v.applyFilter()
}

// SetSize updates the rendering dimensions.
func (v *NotificationsView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.search.Width = max(width-4, 10)
}

// Selected returns the record under the cursor.
func (v *NotificationsView) Selected() (notify.Record, bool) {
	if v.cursor < 0 || v.cursor >= len(v.filtered) {
		return notify.Record{}, false
	}
	return v.filtered[v.cursor], true
}

// CursorUp moves the selection up one row.
func (v *NotificationsView) CursorUp() {
	if v.cursor > 0 {
		v.cursor--
	}
}

// CursorDown moves the selection down one row.
func (v *NotificationsView) CursorDown() {
	if v.cursor < len(v.filtered)-1 {
		v.cursor++
	}
}

// StartSearch focuses the search input.
func (v *NotificationsView) StartSearch() tea.Cmd {
	v.searching = true
	return v.search.Focus()
}

// CommitSearch blurs the input, keeping the query applied.
func (v *NotificationsView) CommitSearch() {
	v.searching = false
	v.search.Blur()
}

// ClearSearch resets the query and shows the full list.
func (v *NotificationsView) ClearSearch() {
	v.searching = false
	v.search.Blur()
	v.search.SetValue("")
	v.applyFilter()
}

// Searching reports whether the search input is focused.
func (v *NotificationsView) Searching() bool {
	return v.searching
}

// Query returns the active search query.
func (v *NotificationsView) Query() string {
	return v.search.Value()
}

// Update forwards key input to the focused search field.
func (v *NotificationsView) Update(msg tea.Msg) tea.Cmd {
	if !v.searching {
		return nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.applyFilter()
	return cmd
}

func (v *NotificationsView) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(v.search.Value()))
	if query == "" {
		v.filtered = v.all
	} else {
		v.filtered = v.filtered[:0:0]
		for _, rec := range v.all {
			if matchesQuery(rec, query) {
				v.filtered = append(v.filtered, rec)
			}
		}
	}

	if v.cursor >= len(v.filtered) {
		v.cursor = len(v.filtered) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// matchesQuery is a case-insensitive substring match against title and
// message. The query is expected to be lowercase already.
func matchesQuery(rec notify.Record, query string) bool {
	return strings.Contains(strings.ToLower(rec.Title), query) ||
		strings.Contains(strings.ToLower(rec.Message), query)
}

// View renders the search line and the notification rows.
func (v *NotificationsView) View() string {
	var b strings.Builder

	if v.searching || v.search.Value() != "" {
		b.WriteString(v.search.View())
		b.WriteString("\n\n")
	}

	if len(v.filtered) == 0 {
		if v.search.Value() != "" {
			b.WriteString(styles.MutedStyle.Render("No notifications match the search."))
		} else {
			b.WriteString(styles.MutedStyle.Render("No notifications yet."))
		}
		return b.String()
	}

	now := v.now()
	for i, rec := range v.filtered {
		b.WriteString(v.renderRow(rec, i == v.cursor, now))
		if i < len(v.filtered)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderRow draws one record over two lines:
//
//	┃ ● ✓ Menu item saved • Jan 2, 15:04
//	┃   "Carbonara" was saved
func (v *NotificationsView) renderRow(rec notify.Record, selected bool, now time.Time) string {
	border := "  "
	if selected {
		border = styles.SelectedBorderStyle.Render("┃") + " "
	}

	unread := "  "
	if !rec.Read {
		unread = styles.UnreadStyle.Render("●") + " "
	}

	nameStyle := styles.NormalStyle
	if selected {
		nameStyle = styles.SelectedStyle
	}

	line1 := fmt.Sprintf("%s%s %s %s",
		unread,
		styles.KindIcon(string(rec.Kind))+" "+nameStyle.Render(rec.Title),
		styles.IconDot,
		styles.TimeStyle.Render(formatWhen(rec.CreatedAt, now)),
	)

	contentWidth := v.width - 6
	if contentWidth < 4 {
		contentWidth = 74
	}
	message := strings.ReplaceAll(rec.Message, "\n", " ")
	if runes := []rune(message); len(runes) > contentWidth {
		message = string(runes[:contentWidth-3]) + "..."
	}
	line2 := "  " + styles.MutedStyle.Render(message)

	return border + line1 + "\n" + border + line2 + "\n"
}

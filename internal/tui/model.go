// Package tui implements the interactive notification center.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tablekit/tablekit/internal/core/config"
	"github.com/tablekit/tablekit/internal/core/notify"
	"github.com/tablekit/tablekit/internal/core/styles"
)

// Model is the root Bubble Tea model: the notification list with an
// overlay toast slot and an optional detail modal.
type Model struct {
	cfg    *config.Config
	log    *notify.Log
	buffer *NotificationBuffer

	toast  Toast
	view   NotificationsView
	detail *DetailModal

	// dest is the last resolved navigation destination, shown in the
	// status line. The destination screens themselves live outside
	// this program.
	dest string

	width  int
	height int
}

// New builds the root model and subscribes its buffer to the log.
func New(cfg *config.Config, notifyLog *notify.Log) Model {
	buffer := NewNotificationBuffer()
	notifyLog.OnAdd(buffer.Push)

	m := Model{
		cfg:    cfg,
		log:    notifyLog,
		buffer: buffer,
		toast:  NewToast(time.Duration(cfg.Toast.HoldMS) * time.Millisecond),
		view:   NewNotificationsView(),
	}
	m.view.SetRecords(notifyLog.All())
	return m
}

// Init starts listening for new notifications.
func (m Model) Init() tea.Cmd {
	return m.buffer.WaitForSignal()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case drainNotificationsMsg:
		return m.handleDrain()

	case toastFrameMsg, toastHoldMsg:
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.detail != nil {
		return m, m.detail.Update(msg)
	}
	return m, nil
}

func (m Model) handleDrain() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.buffer.WaitForSignal()}
	for _, rec := range m.buffer.Drain() {
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Show(rec)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.view.SetRecords(m.log.All())
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal input wins.
	if m.detail != nil {
		switch msg.String() {
		case "esc", "q":
			m.detail = nil
			return m, nil
		}
		return m, m.detail.Update(msg)
	}

	// Live search input.
	if m.view.Searching() {
		switch msg.String() {
		case "esc":
			m.view.ClearSearch()
			return m, nil
		case "enter":
			m.view.CommitSearch()
			return m, nil
		}
		return m, m.view.Update(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.log.Flush()
		return m, tea.Quit

	case "/":
		return m, m.view.StartSearch()

	case "up", "k":
		m.view.CursorUp()
	case "down", "j":
		m.view.CursorDown()

	case "x":
		if rec, ok := m.view.Selected(); ok {
			m.log.Remove(rec.ID)
			m.view.SetRecords(m.log.All())
		}

	case "enter":
		if rec, ok := m.view.Selected(); ok {
			m.openRecord(rec)
			m.view.SetRecords(m.log.All())
		}

	case "o":
		if rec, ok := m.view.Selected(); ok {
			m.detail = NewDetailModal(rec, m.width, m.height)
		}

	case "ctrl+o":
		// Open the toast's record: navigate, mark read, dismiss.
		if m.toast.Active() {
			m.openRecord(m.toast.Record())
			m.view.SetRecords(m.log.All())
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Dismiss()
			return m, cmd
		}

	case "esc":
		if m.toast.Active() {
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Dismiss()
			return m, cmd
		}
		if m.view.Query() != "" {
			m.view.ClearSearch()
		}
	}

	return m, nil
}

// openRecord marks a record read and resolves its navigation target.
// Marking read always happens, even when nothing resolves.
func (m *Model) openRecord(rec notify.Record) {
	m.log.MarkRead(rec.ID)
	if target, ok := notify.Resolve(rec); ok {
		m.dest = describeTarget(target)
	}
}

// View renders the full screen.
func (m Model) View() string {
	header := styles.TitleStyle.Render(styles.IconBell + " Notifications")
	if unread := m.log.UnreadCount(); unread > 0 {
		header += " " + styles.BadgeStyle.Render(fmt.Sprintf("(%d unread)", unread))
	}

	body := m.view.View()
	if m.detail != nil {
		body = m.detail.View()
	}

	status := styles.ModalHelpStyle.Render("/ search • enter open • o detail • x delete • q quit")
	if m.dest != "" {
		status = styles.StatusStyle.Render(styles.IconArrow+" "+m.dest) + "  " + status
	}

	sections := []string{header, "", body}
	if m.toast.Active() && m.width > 0 {
		sections = append(sections, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, m.toast.View()))
	}
	sections = append(sections, status)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// describeTarget names a resolved destination for the status line.
func describeTarget(t notify.Target) string {
	switch t.Route {
	case notify.RouteMenuItem:
		return "Menu item " + t.ItemID
	case notify.RouteOrders:
		return "Orders"
	case notify.RouteMenu:
		return "Menu"
	case notify.RouteStaff:
		return "Staff"
	case notify.RouteReports:
		return "Reports"
	case notify.RouteSettings:
		return "Settings"
	default:
		return string(t.Route)
	}
}

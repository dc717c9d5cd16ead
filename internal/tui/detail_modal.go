package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/tablekit/tablekit/internal/core/notify"
	"github.com/tablekit/tablekit/internal/core/styles"
)

const (
	detailMaxWidth  = 80
	detailMaxHeight = 24
	detailChrome    = 5 // title + divider + help + spacing
)

// DetailModal shows a single notification with its message body rendered
// as markdown in a scrollable viewport.
type DetailModal struct {
	rec      notify.Record
	viewport viewport.Model
	width    int
}

// NewDetailModal creates a modal for the given record.
func NewDetailModal(rec notify.Record, width, height int) *DetailModal {
	modalWidth := min(width-4, detailMaxWidth)
	if modalWidth < 20 {
		modalWidth = 20
	}
	contentHeight := min(height-4, detailMaxHeight) - detailChrome
	if contentHeight < 3 {
		contentHeight = 3
	}

	vp := viewport.New(modalWidth-4, contentHeight)
	vp.SetContent(renderDetailBody(rec, modalWidth-4))

	return &DetailModal{
		rec:      rec,
		viewport: vp,
		width:    modalWidth,
	}
}

func renderDetailBody(rec notify.Record, width int) string {
	body, err := glamour.Render(rec.Message, "dark")
	if err != nil {
		// Plain text is always a safe fallback.
		body = rec.Message
	}
	meta := styles.MutedStyle.Render(fmt.Sprintf("%s %s", styles.KindIcon(string(rec.Kind)), rec.CreatedAt.Format("Jan 2 2006, 15:04")))
	return meta + "\n" + strings.TrimRight(body, "\n")
}

// Update forwards scroll input to the viewport.
func (m *DetailModal) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// View renders the modal box.
func (m *DetailModal) View() string {
	title := styles.ModalTitleStyle.Render(m.rec.Title)
	divider := styles.MutedStyle.Render(strings.Repeat("─", m.width-4))
	help := styles.ModalHelpStyle.Render("esc close • ↑/↓ scroll")

	content := strings.Join([]string{title, divider, m.viewport.View(), divider, help}, "\n")
	return styles.ModalStyle.Width(m.width).Render(content)
}

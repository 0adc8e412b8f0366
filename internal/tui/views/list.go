package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robalyx/modlog/internal/engine"
	"github.com/robalyx/modlog/internal/i18n"
	"github.com/robalyx/modlog/internal/tui/components"
	"github.com/robalyx/modlog/internal/tui/styles"
)

// List shows the records of a single kind.
type List struct {
	labels   *i18n.Labels
	viewport viewport.Model
}

// NewList creates a new list view.
func NewList(labels *i18n.Labels) *List {
	return &List{
		labels:   labels,
		viewport: viewport.New(80, 24),
	}
}

// SetSize sets the list size.
func (l *List) SetSize(width, height int) {
	l.viewport.Width = width
	l.viewport.Height = height
}

// Update handles scrolling.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	var cmd tea.Cmd
	l.viewport, cmd = scroll(l.viewport, msg)
	return l, cmd
}

// GotoTop scrolls back to the first record.
func (l *List) GotoTop() {
	l.viewport.GotoTop()
}

// View renders the entries inside the frame.
func (l *List) View(frame Frame, entries []engine.Entry) string {
	l.viewport.SetContent(l.render(frame, entries))
	return l.viewport.View()
}

func (l *List) render(frame Frame, entries []engine.Entry) string {
	switch {
	case frame.Loading:
		return styles.MutedStyle.Render(l.labels.Loading)
	case frame.Error != "":
		return styles.ErrorStyle.Render(l.labels.ErrorPrefix + frame.Error)
	case len(entries) == 0:
		return styles.MutedStyle.Render(l.labels.NoResults)
	}

	return renderCards(entries, l.labels, l.viewport.Width)
}

func renderCards(entries []engine.Entry, labels *i18n.Labels, width int) string {
	cards := make([]string, 0, len(entries))
	for i := range entries {
		cards = append(cards, components.Card(&entries[i], labels, width))
	}
	return strings.Join(cards, "\n")
}

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robalyx/modlog/internal/engine"
	"github.com/robalyx/modlog/internal/i18n"
	"github.com/robalyx/modlog/internal/tui/styles"
	"github.com/robalyx/modlog/internal/types"
)

// Search shows the matching records of every kind in separate sections.
type Search struct {
	labels   *i18n.Labels
	viewport viewport.Model
}

// NewSearch creates a new search view.
func NewSearch(labels *i18n.Labels) *Search {
	return &Search{
		labels:   labels,
		viewport: viewport.New(80, 24),
	}
}

// SetSize sets the search view size.
func (s *Search) SetSize(width, height int) {
	s.viewport.Width = width
	s.viewport.Height = height
}

// Update handles scrolling.
func (s *Search) Update(msg tea.Msg) (*Search, tea.Cmd) {
	var cmd tea.Cmd
	s.viewport, cmd = scroll(s.viewport, msg)
	return s, cmd
}

// GotoTop scrolls back to the first section.
func (s *Search) GotoTop() {
	s.viewport.GotoTop()
}

// View renders one section per kind.
func (s *Search) View(frame Frame, sections map[types.Kind][]engine.Entry) string {
	s.viewport.SetContent(s.render(frame, sections))
	return s.viewport.View()
}

func (s *Search) render(frame Frame, sections map[types.Kind][]engine.Entry) string {
	switch {
	case frame.Loading:
		return styles.MutedStyle.Render(s.labels.Loading)
	case frame.Error != "":
		return styles.ErrorStyle.Render(s.labels.ErrorPrefix + frame.Error)
	}

	parts := make([]string, 0, len(types.Kinds())*2)
	for _, kind := range types.Kinds() {
		parts = append(parts, styles.TitleStyle.Render(s.labels.Title(kind)))

		entries := sections[kind]
		if len(entries) == 0 {
			parts = append(parts, styles.MutedStyle.Render(s.labels.NoResults)+"\n")
			continue
		}

		parts = append(parts, renderCards(entries, s.labels, s.viewport.Width))
	}

	return strings.Join(parts, "\n")
}

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robalyx/modlog/internal/tui/styles"
)

// HelpSection is a titled group of key bindings.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// Help represents the help view.
type Help struct {
	sections []HelpSection
	viewport viewport.Model
}

// NewHelp creates a new help view for the given key binding groups.
func NewHelp(sections []HelpSection) *Help {
	vp := viewport.New(80, 24)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.ColorBorder)).
		Padding(1, 2)

	return &Help{
		sections: sections,
		viewport: vp,
	}
}

// SetSize sets the help view size.
func (h *Help) SetSize(width, height int) {
	h.viewport.Width = width - 4
	h.viewport.Height = height - 4
}

// Update handles scrolling.
func (h *Help) Update(msg tea.Msg) (*Help, tea.Cmd) {
	var cmd tea.Cmd
	h.viewport, cmd = scroll(h.viewport, msg)
	return h, cmd
}

// View renders the help view.
func (h *Help) View() string {
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(styles.ColorPrimary)).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(styles.ColorWarning)).
		Width(15)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(styles.ColorWhite))

	content := make([]string, 0, 32)
	content = append(content, styles.TitleStyle.Render("modlog - Help"))

	for _, section := range h.sections {
		content = append(content, sectionStyle.Render(section.Title))

		for _, binding := range section.Bindings {
			help := binding.Help()
			content = append(content, lipgloss.JoinHorizontal(lipgloss.Left,
				keyStyle.Render(help.Key),
				descStyle.Render(help.Desc)))
		}
	}

	content = append(content, "", styles.MutedStyle.Render("Press ? or esc to close help"))

	h.viewport.SetContent(strings.Join(content, "\n"))

	return h.viewport.View()
}

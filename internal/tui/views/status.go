package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/robalyx/modlog/internal/i18n"
	"github.com/robalyx/modlog/internal/tui/styles"
	"github.com/robalyx/modlog/internal/types"
)

// Status shows the game server status.
type Status struct {
	labels *i18n.Labels
	width  int
}

// NewStatus creates a new status view.
func NewStatus(labels *i18n.Labels) *Status {
	return &Status{labels: labels, width: 80}
}

// SetSize sets the status view width.
func (s *Status) SetSize(width, _ int) {
	s.width = width
}

// View renders the server status.
func (s *Status) View(frame Frame, status *types.ServerStatus) string {
	switch {
	case frame.Loading:
		return styles.MutedStyle.Render(s.labels.Loading)
	case frame.Error != "":
		return styles.ErrorStyle.Render(s.labels.ErrorPrefix + frame.Error)
	case status == nil:
		return ""
	}

	players := strings.Join(status.SamplePlayers, ", ")
	if players == "" {
		players = s.labels.None
	}

	lines := []string{
		styles.TitleStyle.Render(s.labels.StatusTitle),
		"",
		s.labels.Host + ": " + status.Host + ":" + strconv.Itoa(status.Port),
		s.labels.Online + ": " + strconv.Itoa(status.OnlinePlayers) + "/" + strconv.Itoa(status.MaxPlayers),
		s.labels.RecentPlayers + ": " + players,
		s.labels.TotalSeen + ": " + strconv.Itoa(status.TotalSeen),
	}

	return styles.CardStyle.
		Width(max(s.width-2, 20)).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/robalyx/modlog/internal/expiry"
	"github.com/robalyx/modlog/internal/types"
)

// Styles used throughout the TUI.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorSecondary))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(ColorError)).
			Padding(0, 1)

	PlayerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWhite))

	ActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary))

	ExpiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted)).
			Strikethrough(true)

	PermanentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))

	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1).
			MarginBottom(1)
)

// BadgeStyle returns the label style of a record kind.
func BadgeStyle(kind types.Kind) lipgloss.Style {
	color := ColorMuted

	switch kind {
	case types.KindBan:
		color = ColorBan
	case types.KindMute:
		color = ColorMute
	case types.KindKick:
		color = ColorKick
	}

	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// RemainingStyle returns the countdown style for an expiry state.
func RemainingStyle(state expiry.State) lipgloss.Style {
	switch state {
	case expiry.Active:
		return ActiveStyle
	case expiry.Expired:
		return ExpiredStyle
	default:
		return PermanentStyle
	}
}

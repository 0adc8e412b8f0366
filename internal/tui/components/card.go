package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/robalyx/modlog/internal/engine"
	"github.com/robalyx/modlog/internal/i18n"
	"github.com/robalyx/modlog/internal/tui/styles"
)

// CreatedLayout is how record creation times are displayed.
const CreatedLayout = "2006-01-02 15:04"

// Card renders one record entry as a bordered box.
func Card(e *engine.Entry, l *i18n.Labels, width int) string {
	lines := make([]string, 0, 6)

	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Left,
		styles.BadgeStyle(e.Kind).Render(l.Badge(e.Kind)),
		" ",
		styles.PlayerStyle.Render(e.Player),
	))

	if !e.CreatedAt.IsZero() {
		lines = append(lines, styles.MutedStyle.Render(e.CreatedAt.Local().Format(CreatedLayout)))
	}

	lines = append(lines, l.Reason+": "+e.Reason)

	if e.ShowTerm {
		lines = append(lines, Term(e, l))
	}

	lines = append(lines, styles.MutedStyle.Render(l.Issuer+": "+l.IssuerName(&e.Record)))

	if e.ImageURL != "" {
		lines = append(lines, styles.MutedStyle.Render(l.Evidence+": "+e.ImageURL))
	}

	style := styles.CardStyle
	if width > 4 {
		style = style.Width(width - 2)
	}

	return style.Render(strings.Join(lines, "\n"))
}

// Term renders the remaining time line of an entry.
func Term(e *engine.Entry, l *i18n.Labels) string {
	if e.ExpiresAt == nil {
		return l.Term + ": " + styles.PermanentStyle.Render(l.Permanent)
	}

	return l.RemainingTime + ": " + styles.RemainingStyle(e.Remaining.State).Render(l.Remaining(e.Remaining))
}

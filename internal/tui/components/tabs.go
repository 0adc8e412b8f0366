package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/robalyx/modlog/internal/tui/styles"
)

// Tabs represents a tab navigation component.
type Tabs struct {
	tabs     []string
	counts   []int
	active   int
	width    int
	maxWidth int
}

// NewTabs creates a new tabs component.
func NewTabs(tabs []string) *Tabs {
	t := &Tabs{maxWidth: 20}
	t.SetTabs(tabs)
	return t
}

// SetTabs sets the tab names and clears the counts.
func (t *Tabs) SetTabs(tabs []string) {
	t.tabs = tabs
	t.counts = make([]int, len(tabs))
	for i := range t.counts {
		t.counts[i] = -1
	}

	if t.active >= len(tabs) {
		t.active = 0
	}
}

// SetCount shows a record count next to a tab name. A negative count hides it.
func (t *Tabs) SetCount(index, count int) {
	if index >= 0 && index < len(t.counts) {
		t.counts[index] = count
	}
}

// SetActive sets the active tab index.
func (t *Tabs) SetActive(index int) {
	if index >= 0 && index < len(t.tabs) {
		t.active = index
	}
}

// GetActive returns the active tab index.
func (t *Tabs) GetActive() int {
	return t.active
}

// Len returns the number of tabs.
func (t *Tabs) Len() int {
	return len(t.tabs)
}

// SetWidth sets the total width available for tabs.
func (t *Tabs) SetWidth(width int) {
	t.width = width
	if len(t.tabs) > 0 {
		t.maxWidth = max(8, (width-4)/len(t.tabs))
	}
}

// Next moves to the next tab and returns its index.
func (t *Tabs) Next() int {
	if len(t.tabs) > 0 {
		t.active = (t.active + 1) % len(t.tabs)
	}
	return t.active
}

// Prev moves to the previous tab and returns its index.
func (t *Tabs) Prev() int {
	if len(t.tabs) > 0 {
		t.active = (t.active - 1 + len(t.tabs)) % len(t.tabs)
	}
	return t.active
}

// View renders the tabs.
func (t *Tabs) View() string {
	if len(t.tabs) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(t.tabs))

	for i, tab := range t.tabs {
		name := strconv.Itoa(i+1) + " " + tab
		if t.counts[i] >= 0 {
			name += " (" + strconv.Itoa(t.counts[i]) + ")"
		}

		if r := []rune(name); len(r) > t.maxWidth-4 && t.maxWidth > 7 {
			name = string(r[:t.maxWidth-7]) + "..."
		}

		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(styles.ColorMuted)).
			Padding(0, 2)
		if i == t.active {
			style = style.
				Bold(true).
				Foreground(lipgloss.Color(styles.ColorPrimary)).
				Background(lipgloss.Color(styles.ColorBackground))
		}

		rendered = append(rendered, style.Render(name))
	}

	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color(styles.ColorBorder))

	return borderStyle.Width(max(t.width-2, 0)).Render(strings.Join(rendered, "│"))
}

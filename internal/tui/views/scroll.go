package views

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Frame is the load state a view renders around its content.
type Frame struct {
	Loading bool
	Error   string // Display string of the last load failure
}

// scroll applies the shared scrolling keys to a viewport.
func scroll(vp viewport.Model, msg tea.Msg) (viewport.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			vp.ScrollUp(1)
			return vp, nil
		case "down", "j":
			vp.ScrollDown(1)
			return vp, nil
		case "pgup", "ctrl+u":
			vp.HalfPageUp()
			return vp, nil
		case "pgdown", "ctrl+d":
			vp.HalfPageDown()
			return vp, nil
		case "home":
			vp.GotoTop()
			return vp, nil
		case "end":
			vp.GotoBottom()
			return vp, nil
		}
	}

	return vp.Update(msg)
}

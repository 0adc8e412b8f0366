package tui

const (
	MinTerminalWidth = 60
	LargeWidth       = 120
)

// isTerminalTooSmall checks if terminal is usable.
func isTerminalTooSmall(width int) bool {
	return width < MinTerminalWidth
}

// shouldShowDetails determines if the full shortcut list fits in the header.
func shouldShowDetails(width int) bool {
	return width >= LargeWidth
}

// calculateHeaderHeight returns the rows used by the header, tabs and query line.
func calculateHeaderHeight(hasQuery bool) int {
	height := 2 + 2
	if hasQuery {
		height += 2
	}

	return height
}

// calculateContentHeight calculates available content height.
func calculateContentHeight(totalHeight, headerHeight int) int {
	return max(totalHeight-headerHeight-1, 5)
}

// truncateText truncates text if too long.
func truncateText(text string, maxWidth int) string {
	r := []rune(text)
	if len(r) <= maxWidth {
		return text
	}

	if maxWidth < 4 {
		return "..."
	}

	return string(r[:maxWidth-3]) + "..."
}

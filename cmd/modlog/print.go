package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/robalyx/modlog/internal/engine"
	"github.com/robalyx/modlog/internal/i18n"
	"github.com/robalyx/modlog/internal/tui/components"
	"github.com/robalyx/modlog/internal/types"
)

// terminalWidth is the card width used for text output.
const terminalWidth = 80

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printEntries writes one card per entry, or the empty-state line.
func printEntries(w io.Writer, entries []engine.Entry, l *i18n.Labels, width int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, l.NoResults)
		return
	}

	for i := range entries {
		fmt.Fprintln(w, components.Card(&entries[i], l, width))
	}
}

// printSearch writes the results of every kind under its title.
func printSearch(w io.Writer, results map[types.Kind][]engine.Entry, l *i18n.Labels, width int) {
	total := 0
	for _, kind := range types.Kinds() {
		total += len(results[kind])
	}
	if total == 0 {
		fmt.Fprintln(w, l.NoResults)
		return
	}

	for _, kind := range types.Kinds() {
		entries := results[kind]
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintf(w, "%s (%d)\n", l.Title(kind), len(entries))
		printEntries(w, entries, l, width)
	}
}

// printStatus writes the server summary.
func printStatus(w io.Writer, status *types.ServerStatus, l *i18n.Labels) {
	host := l.None
	if status.Host != "" {
		host = status.Host
		if status.Port != 0 {
			host += ":" + strconv.Itoa(status.Port)
		}
	}

	players := l.None
	if len(status.SamplePlayers) > 0 {
		players = strings.Join(status.SamplePlayers, ", ")
	}

	fmt.Fprintln(w, l.StatusTitle)
	fmt.Fprintf(w, "%s: %s\n", l.Host, host)
	fmt.Fprintf(w, "%s: %d/%d\n", l.Online, status.OnlinePlayers, status.MaxPlayers)
	fmt.Fprintf(w, "%s: %s\n", l.RecentPlayers, players)
	fmt.Fprintf(w, "%s: %d\n", l.TotalSeen, status.TotalSeen)
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robalyx/modlog/internal/engine"
	"github.com/robalyx/modlog/internal/filter"
	"github.com/robalyx/modlog/internal/i18n"
	"github.com/robalyx/modlog/internal/tui/components"
	"github.com/robalyx/modlog/internal/tui/styles"
	"github.com/robalyx/modlog/internal/tui/views"
	"github.com/robalyx/modlog/internal/types"
	"go.uber.org/zap"
)

// Tab identifies a dashboard page.
type Tab int

const (
	TabBans Tab = iota
	TabMutes
	TabKicks
	TabSearch
	TabStatus
)

// Tabs returns every tab in display order.
func Tabs() []Tab {
	return []Tab{TabBans, TabMutes, TabKicks, TabSearch, TabStatus}
}

// Kind returns the record kind a tab lists, if any.
func (t Tab) Kind() (types.Kind, bool) {
	switch t {
	case TabBans:
		return types.KindBan, true
	case TabMutes:
		return types.KindMute, true
	case TabKicks:
		return types.KindKick, true
	default:
		return "", false
	}
}

// TabForKind returns the tab listing a record kind.
func TabForKind(kind types.Kind) Tab {
	switch kind {
	case types.KindMute:
		return TabMutes
	case types.KindKick:
		return TabKicks
	default:
		return TabBans
	}
}

// TickMsg carries a new clock sample.
type TickMsg struct {
	Now time.Time
}

// tickerStoppedMsg is sent once the sample channel is closed.
type tickerStoppedMsg struct{}

// loadedMsg carries the result of a load started for a tab.
type loadedMsg struct {
	tab        Tab
	gen        uint64
	collection *engine.Collection
	search     *engine.Search
	status     *types.ServerStatus
	err        error
}

// Options configure the initial state of the dashboard.
type Options struct {
	Tab   Tab
	Query string
}

// Model represents the main TUI model. All state is mutated on the
// bubbletea update loop; loads run as commands and report back as messages.
type Model struct {
	ctx     context.Context
	engine  *engine.Engine
	labels  *i18n.Labels
	samples <-chan time.Time
	logger  *zap.Logger
	keys    KeyMap

	now      time.Time
	tab      Tab
	showHelp bool
	width    int
	height   int
	quitting bool

	// Load state of the current tab. Results carrying an older
	// generation belong to a tab that was left and are dropped.
	gen         uint64
	cancelLoad  context.CancelFunc
	loading     bool
	err         string
	collections map[types.Kind]*engine.Collection
	search      *engine.Search
	status      *types.ServerStatus

	query      textinput.Model
	tabs       *components.Tabs
	list       *views.List
	searchView *views.Search
	statusView *views.Status
	help       *views.Help
}

// NewModel creates a new TUI model reading clock samples from samples.
func NewModel(
	ctx context.Context, eng *engine.Engine, labels *i18n.Labels,
	samples <-chan time.Time, now time.Time, opts Options, logger *zap.Logger,
) *Model {
	names := make([]string, 0, len(Tabs()))
	for _, kind := range types.Kinds() {
		names = append(names, labels.Title(kind))
	}
	names = append(names, labels.SearchTitle, labels.StatusTitle)

	keys := DefaultKeyMap()

	m := &Model{
		ctx:         ctx,
		engine:      eng,
		labels:      labels,
		samples:     samples,
		logger:      logger.Named("tui"),
		keys:        keys,
		now:         now,
		tab:         opts.Tab,
		width:       80,
		height:      24,
		collections: make(map[types.Kind]*engine.Collection),
		query:       textinput.New(),
		tabs:        components.NewTabs(names),
		list:        views.NewList(labels),
		searchView:  views.NewSearch(labels),
		statusView:  views.NewStatus(labels),
		help: views.NewHelp([]views.HelpSection{
			{Title: "Navigation", Bindings: []key.Binding{keys.NextTab, keys.PrevTab, keys.JumpTab, keys.Help, keys.Quit}},
			{Title: "Records", Bindings: []key.Binding{keys.Refresh, keys.Focus, keys.Blur}},
			{Title: "Scrolling", Bindings: []key.Binding{keys.ScrollUp, keys.ScrollDown, keys.PageUp, keys.PageDown}},
		}),
	}

	m.query.Prompt = "> "
	m.query.SetValue(opts.Query)
	m.tabs.SetActive(int(opts.Tab))
	m.setPlaceholder()
	m.resize()

	return m
}

// Init starts loading the first tab and listening for clock samples.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), waitForSample(m.samples))
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.now = msg.Now
		return m, waitForSample(m.samples)

	case tickerStoppedMsg:
		return m, nil

	case loadedMsg:
		m.applyLoad(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	return m, m.updateView(msg)
}

// handleKey processes navigation keys. Unhandled keys scroll the current view.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit(), true
	}

	if m.query.Focused() {
		if key.Matches(msg, m.keys.Blur) {
			m.query.Blur()
			return nil, true
		}

		before := filter.Normalize(m.query.Value())

		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)

		if filter.Normalize(m.query.Value()) != before {
			m.list.GotoTop()
			m.searchView.GotoTop()
		}

		return cmd, true
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc {
			m.showHelp = false
			return nil, true
		}
		if key.Matches(msg, m.keys.Quit) {
			return m.quit(), true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit(), true

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil, true

	case key.Matches(msg, m.keys.Refresh):
		return m.load(), true

	case key.Matches(msg, m.keys.Focus):
		if m.tab == TabStatus {
			return nil, true
		}
		return m.query.Focus(), true

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(Tab(m.tabs.Next())), true

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(Tab(m.tabs.Prev())), true

	case key.Matches(msg, m.keys.JumpTab) && len(msg.Runes) == 1:
		return m.switchTab(Tab(msg.Runes[0] - '1')), true
	}

	return nil, false
}

// switchTab leaves the current tab and loads the new one.
func (m *Model) switchTab(tab Tab) tea.Cmd {
	if tab < TabBans || tab > TabStatus {
		return nil
	}

	m.tabs.SetActive(int(tab))
	if tab == m.tab {
		return nil
	}

	m.tab = tab
	m.query.Reset()
	m.query.Blur()
	m.setPlaceholder()
	m.resize()
	m.list.GotoTop()
	m.searchView.GotoTop()

	return m.load()
}

// load starts fetching the data of the current tab. Any load still in
// flight is cancelled and its result will be dropped.
func (m *Model) load() tea.Cmd {
	if m.cancelLoad != nil {
		m.cancelLoad()
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelLoad = cancel
	m.gen++
	m.loading = true
	m.err = ""

	gen, tab, eng := m.gen, m.tab, m.engine

	return func() tea.Msg {
		msg := loadedMsg{tab: tab, gen: gen}

		if kind, ok := tab.Kind(); ok {
			msg.collection, msg.err = eng.Load(ctx, kind)
			return msg
		}

		switch tab {
		case TabSearch:
			msg.search, msg.err = eng.LoadAll(ctx)
		case TabStatus:
			status, err := eng.Status(ctx)
			if err == nil {
				msg.status = &status
			}
			msg.err = err
		}

		return msg
	}
}

// applyLoad stores a load result if it belongs to the current load.
func (m *Model) applyLoad(msg loadedMsg) {
	if msg.gen != m.gen || msg.tab != m.tab {
		m.logger.Debug("Dropped stale load result",
			zap.Int("tab", int(msg.tab)),
			zap.Uint64("gen", msg.gen),
			zap.Uint64("current_gen", m.gen))
		return
	}

	m.loading = false

	if msg.err != nil {
		m.err = m.labels.Error(msg.err)
		m.logger.Warn("Failed to load tab",
			zap.Int("tab", int(msg.tab)),
			zap.Error(msg.err))
		return
	}

	switch {
	case msg.collection != nil:
		m.collections[msg.collection.Kind] = msg.collection
		m.tabs.SetCount(int(msg.tab), len(msg.collection.Records))
	case msg.search != nil:
		m.search = msg.search
		m.tabs.SetCount(int(TabSearch), msg.search.Len())
	case msg.status != nil:
		m.status = msg.status
	}
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	if m.cancelLoad != nil {
		m.cancelLoad()
	}
	return tea.Quit
}

func (m *Model) setPlaceholder() {
	if m.tab == TabSearch {
		m.query.Placeholder = m.labels.SearchPlaceholder
	} else {
		m.query.Placeholder = m.labels.KindPlaceholder
	}
}

func (m *Model) resize() {
	headerHeight := calculateHeaderHeight(m.tab != TabStatus)
	contentHeight := calculateContentHeight(m.height, headerHeight)

	m.tabs.SetWidth(m.width)
	m.query.Width = max(m.width-6, 10)
	m.list.SetSize(m.width, contentHeight)
	m.searchView.SetSize(m.width, contentHeight)
	m.statusView.SetSize(m.width, contentHeight)
	m.help.SetSize(m.width, contentHeight)
}

// updateView forwards a message to the visible view.
func (m *Model) updateView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch {
	case m.showHelp:
		_, cmd = m.help.Update(msg)
	case m.tab == TabSearch:
		_, cmd = m.searchView.Update(msg)
	case m.tab == TabStatus:
	default:
		_, cmd = m.list.Update(msg)
	}

	return cmd
}

// View renders the current view.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if isTerminalTooSmall(m.width) {
		return fmt.Sprintf("Terminal too small!\nMinimum width required: %d columns\nCurrent size: %dx%d",
			MinTerminalWidth, m.width, m.height)
	}

	sections := []string{m.renderHeader(), m.tabs.View()}

	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, append(sections, m.help.View())...)
	}

	if m.tab != TabStatus {
		sections = append(sections, m.renderQuery())
	}

	return lipgloss.JoinVertical(lipgloss.Left, append(sections, m.renderContent())...)
}

// renderHeader renders the title and shortcut line.
func (m *Model) renderHeader() string {
	titleText := "modlog - " + m.engine.Base()
	shortcutsText := "tab: next • /: search • r: " + m.labels.RefreshHint + " • ?: help • q: quit"
	if !shouldShowDetails(m.width) {
		shortcutsText = "tab / r ? q"
	}

	maxLineWidth := m.width - 8
	titleText = truncateText(titleText, maxLineWidth/2)
	shortcutsText = truncateText(shortcutsText, maxLineWidth/2)

	spacePadding := max(maxLineWidth-lipgloss.Width(titleText)-lipgloss.Width(shortcutsText), 1)

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Render(titleText)
	shortcuts := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(shortcutsText)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 2)

	return headerStyle.Width(m.width - 4).Render(
		lipgloss.JoinHorizontal(lipgloss.Left, title, strings.Repeat(" ", spacePadding), shortcuts),
	)
}

// renderQuery renders the query input and its hint.
func (m *Model) renderQuery() string {
	hint := ""
	if m.tab == TabSearch {
		hint = styles.MutedStyle.Render(m.labels.SearchHint)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.query.View(), hint)
}

// renderContent renders the current tab for the latest clock sample.
func (m *Model) renderContent() string {
	frame := views.Frame{Loading: m.loading, Error: m.err}
	query := m.query.Value()

	if kind, ok := m.tab.Kind(); ok {
		var entries []engine.Entry
		if col := m.collections[kind]; col != nil {
			entries = col.Entries(query, m.now)
		}
		return m.list.View(frame, entries)
	}

	if m.tab == TabSearch {
		sections := make(map[types.Kind][]engine.Entry, len(types.Kinds()))
		if m.search != nil {
			for _, kind := range types.Kinds() {
				sections[kind] = m.search.Entries(kind, query, m.now)
			}
		}
		return m.searchView.View(frame, sections)
	}

	return m.statusView.View(frame, m.status)
}

// CurrentTab returns the visible tab.
func (m *Model) CurrentTab() Tab {
	return m.tab
}

// Now returns the clock sample views are rendered against.
func (m *Model) Now() time.Time {
	return m.now
}

// Query returns the current query text.
func (m *Model) Query() string {
	return m.query.Value()
}

// Loading reports whether the current tab is waiting for data.
func (m *Model) Loading() bool {
	return m.loading
}

// Err returns the display string of the last load failure of the current tab.
func (m *Model) Err() string {
	return m.err
}

// waitForSample waits for the next clock sample.
func waitForSample(samples <-chan time.Time) tea.Cmd {
	return func() tea.Msg {
		now, ok := <-samples
		if !ok {
			return tickerStoppedMsg{}
		}
		return TickMsg{Now: now}
	}
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robalyx/modlog/internal/clock"
	"github.com/robalyx/modlog/internal/engine"
	"github.com/robalyx/modlog/internal/i18n"
	"go.uber.org/zap"
)

var ErrTUIManagerAlreadyRunning = errors.New("TUI manager is already running")

// Manager runs the dashboard program and owns its clock ticker.
type Manager struct {
	engine   *engine.Engine
	labels   *i18n.Labels
	clock    clock.Clock
	interval time.Duration
	logger   *zap.Logger
	program  *tea.Program
	mu       sync.Mutex
	running  bool
}

// NewManager creates a new TUI manager.
func NewManager(
	eng *engine.Engine, labels *i18n.Labels, c clock.Clock, interval time.Duration, logger *zap.Logger,
) *Manager {
	return &Manager{
		engine:   eng,
		labels:   labels,
		clock:    c,
		interval: interval,
		logger:   logger,
	}
}

// Run shows the dashboard until the user quits or ctx is cancelled.
// The clock ticker is stopped on every exit path.
func (m *Manager) Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrTUIManagerAlreadyRunning
	}
	m.running = true
	m.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := clock.NewTicker(m.clock, m.interval)
	samples := ticker.Start(ctx)
	defer ticker.Stop()

	model := NewModel(ctx, m.engine, m.labels, samples, ticker.Sample(), opts, m.logger)

	options := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)
	program := tea.NewProgram(model, options...)

	m.mu.Lock()
	m.program = program
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.running = false
		m.program = nil
		m.mu.Unlock()
	}()

	m.logger.Info("Dashboard started",
		zap.String("base", m.engine.Base()),
		zap.Duration("tick_interval", ticker.Interval()))

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		m.logger.Error("TUI program error", zap.Error(err))
		return fmt.Errorf("dashboard: %w", err)
	}

	m.logger.Info("Dashboard stopped")

	return nil
}

// Stop asks a running dashboard to quit. It does nothing when no dashboard is running.
func (m *Manager) Stop() {
	m.mu.Lock()
	program := m.program
	m.mu.Unlock()

	if program != nil {
		program.Quit()
	}
}

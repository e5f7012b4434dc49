package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/decaylife/model"
	"github.com/sheikhrachel/decaylife/rules"
	"github.com/sheikhrachel/decaylife/utils"
)

const (
	minInterval = 16 * time.Millisecond
	maxInterval = 4 * time.Second
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	statStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	pauseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238"))
)

type tickMsg time.Time

// Model is the bubbletea state of an interactive run
type Model struct {
	cfg     utils.Config
	pattern model.Pattern
	pool    *model.GridPool
	rng     *rand.Rand

	grid          *model.Grid
	generation    int
	stagnantCount int
	paused        bool
	interval      time.Duration
	stats         *utils.Stats
	lastStep      time.Time
	restarts      int
	lastRestart   string
	err           error
}

// New seeds a grid from the config and pattern, with the same random fill as the terminal driver
func New(cfg utils.Config, pattern model.Pattern) (*Model, error) {
	rng := model.NewGameRNG(cfg)
	grid, err := model.NewGameGrid(cfg, pattern, rng)
	if err != nil {
		return nil, errors.Wrap(err, "[tui.New] failed to seed grid")
	}

	var pool *model.GridPool
	if cfg.UseMemoryPool {
		pool = model.NewGridPool()
	}

	interval := cfg.FrameRate
	if interval < minInterval {
		interval = minInterval
	}

	return &Model{
		cfg:      cfg,
		pattern:  pattern,
		pool:     pool,
		rng:      rng,
		grid:     grid,
		interval: interval,
		stats:    utils.NewStats(0),
		lastStep: time.Now(),
	}, nil
}

// Grid returns the current generation
func (m *Model) Grid() *model.Grid { return m.grid }

// Generation returns the number of steps taken since the last reseed
func (m *Model) Generation() int { return m.generation }

// Paused reports whether ticks are ignored
func (m *Model) Paused() bool { return m.paused }

// Interval returns the delay between automatic steps
func (m *Model) Interval() time.Duration { return m.interval }

// Restarts returns how many times the grid was reseeded automatically
func (m *Model) Restarts() int { return m.restarts }

// Err returns the last reseed failure, if any
func (m *Model) Err() error { return m.err }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		if !m.paused && !m.finished() {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case "n":
		if !m.finished() {
			m.step()
		}
	case "+", "=":
		m.interval = max(m.interval/2, minInterval)
	case "-", "_":
		m.interval = min(m.interval*2, maxInterval)
	case "r":
		m.reseed()
	}
	return m, nil
}

func (m *Model) finished() bool {
	return m.cfg.MaxGenerations > 0 && m.generation >= m.cfg.MaxGenerations
}

func (m *Model) step() {
	isStagnant := m.grid.IsStagnant()
	m.grid.UpdateHistory()
	if isStagnant {
		m.stagnantCount++
	} else {
		m.stagnantCount = 0
	}

	if m.cfg.AutoRestart {
		if restart, reason := utils.CheckRestartConditions(m.grid.CountLivingCells(), m.stagnantCount, m.cfg); restart {
			if m.reseed() {
				m.restarts++
				m.lastRestart = reason
			}
			return
		}
	}

	now := time.Now()
	next := m.grid.NextGeneration(m.cfg.Mode, m.pool)
	model.GridToPool(m.grid, m.pool)
	m.grid = next
	m.generation++
	m.stats.Update(m.generation, m.grid.CountLivingCells(), now.Sub(m.lastStep))
	m.lastStep = now
}

// reseed replaces the grid with a fresh copy of the pattern, keeping the old one on failure
func (m *Model) reseed() bool {
	grid, err := model.NewGameGrid(m.cfg, m.pattern, m.rng)
	if err != nil {
		m.err = errors.Wrap(err, "[reseed] failed to seed grid")
		return false
	}
	model.GridToPool(m.grid, m.pool)
	m.grid = grid
	m.generation = 0
	m.stagnantCount = 0
	m.err = nil
	return true
}

func (m *Model) View() string {
	var b strings.Builder

	counts := m.grid.CountByState()
	b.WriteString(titleStyle.Render("decaylife"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %dx%d  decay %d  %s",
		m.grid.Rows(), m.grid.Cols(), m.cfg.DecayDuration, m.cfg.Mode)))
	if m.paused {
		b.WriteString("  " + pauseStyle.Render("PAUSED"))
	}
	b.WriteString("\n")
	b.WriteString(statStyle.Render(fmt.Sprintf("gen %d  alive %d  dying %d  every %s",
		m.generation, counts[rules.Alive], counts[rules.Dying], m.interval)))
	b.WriteString("\n")

	b.WriteString(boardStyle.Render(strings.TrimSuffix(model.FormatColor(m.grid), "\n")))
	b.WriteString("\n")
	if m.lastRestart != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("restarted %d times, last due to %s", m.restarts, m.lastRestart)))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("space pause  n step  +/- speed  r reseed  q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run blocks until the user quits the interactive view
func Run(cfg utils.Config, pattern model.Pattern) error {
	m, err := New(cfg, pattern)
	if err != nil {
		return err
	}
	if _, err = tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return errors.Wrap(err, "[tui.Run] program failed")
	}
	return nil
}

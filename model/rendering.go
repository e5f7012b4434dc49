package model

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sheikhrachel/decaylife/rules"
)

const (
	symbolAlive = "O"
	symbolDying = "X"
	symbolDead  = "."
	separator   = " "

	// clear the whole screen and move the cursor home
	clearScreen = "\033[2J\033[H"
)

var (
	aliveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	dyingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	deadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Symbol maps a state to its display character
func Symbol(s rules.State) string {
	switch s {
	case rules.Alive:
		return symbolAlive
	case rules.Dying:
		return symbolDying
	default:
		return symbolDead
	}
}

func styledSymbol(s rules.State) string {
	switch s {
	case rules.Alive:
		return aliveStyle.Render(symbolAlive)
	case rules.Dying:
		return dyingStyle.Render(symbolDying)
	default:
		return deadStyle.Render(symbolDead)
	}
}

// Format renders the grid as rows of symbols, each followed by a space
func Format(g *Grid) string {
	return format(g, Symbol)
}

// FormatColor is Format with lipgloss styling around each symbol
func FormatColor(g *Grid) string {
	return format(g, styledSymbol)
}

func format(g *Grid, symbol func(rules.State) string) string {
	var b strings.Builder
	b.Grow(g.cfg.Rows * (g.cfg.Cols*2 + 1))
	for row := range g.cfg.Rows {
		for col := range g.cfg.Cols {
			b.WriteString(symbol(g.cells[g.index(row, col)].State))
			b.WriteString(separator)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// TerminalRenderer writes frames to a terminal
type TerminalRenderer struct {
	Out   io.Writer
	Color bool
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(g *Grid) error {
	frame := Format(g)
	if r.Color {
		frame = FormatColor(g)
	}
	_, err := io.WriteString(r.Out, frame)
	return err
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	_, err := io.WriteString(r.Out, clearScreen)
	return err
}

package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sheikhrachel/decaylife/rules"
	"github.com/sheikhrachel/decaylife/utils"
)

const historySize = 5

// Grid is a fixed-size board of cells stored row-major
type Grid struct {
	cfg     utils.SimulationConfig
	cells   []Cell
	history []string // Store recent grid states for cycle detection

	// Bounding box of every non-dead cell, used by the bounded stepper
	activeBounds struct {
		minRow, maxRow, minCol, maxCol int
		valid                          bool
	}
}

// NewGrid creates an all-dead grid with the configured dimensions
func NewGrid(cfg utils.SimulationConfig) (*Grid, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("grid dimensions must be positive, got %dx%d", cfg.Rows, cfg.Cols),
		}
	}
	if cfg.Rows > math.MaxInt/cfg.Cols {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("grid of %dx%d cells does not fit in memory", cfg.Rows, cfg.Cols),
		}
	}
	if cfg.DecayDuration < 0 {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("decay duration must not be negative, got %d", cfg.DecayDuration),
		}
	}
	return allocGrid(cfg), nil
}

// allocGrid skips validation; cfg must come from an existing grid
func allocGrid(cfg utils.SimulationConfig) *Grid {
	return &Grid{
		cfg:   cfg,
		cells: make([]Cell, cfg.Rows*cfg.Cols),
	}
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.cfg.Rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cfg.Cols
}

// Config returns the simulation config the grid was built with
func (g *Grid) Config() utils.SimulationConfig {
	return g.cfg
}

// Reset resets the grid to new dimensions, every cell dead
func (g *Grid) Reset(cfg utils.SimulationConfig) {
	g.cfg = cfg
	size := cfg.Rows * cfg.Cols
	if cap(g.cells) < size {
		g.cells = make([]Cell, size)
	} else {
		g.cells = g.cells[:size]
	}
	g.Clear()
}

// Clear kills every cell
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = DeadCell
	}
	g.history = nil
	g.activeBounds.valid = false
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.cfg.Rows && col >= 0 && col < g.cfg.Cols
}

func (g *Grid) boundsError(row, col int) error {
	return &OutOfBoundsError{Row: row, Col: col, Rows: g.cfg.Rows, Cols: g.cfg.Cols}
}

func (g *Grid) index(row, col int) int {
	return row*g.cfg.Cols + col
}

// Get returns the cell at (row, col)
func (g *Grid) Get(row, col int) (Cell, error) {
	if !g.inBounds(row, col) {
		return Cell{}, g.boundsError(row, col)
	}
	return g.cells[g.index(row, col)], nil
}

// Set replaces the cell at (row, col)
func (g *Grid) Set(row, col int, cell Cell) error {
	if !g.inBounds(row, col) {
		return g.boundsError(row, col)
	}
	if err := cell.validate(); err != nil {
		return err
	}
	g.cells[g.index(row, col)] = cell
	g.activeBounds.valid = false
	return nil
}

// NeighborCount counts alive or dying cells in the Moore neighborhood of (row, col).
// Positions past the edge are skipped, there is no wraparound.
func (g *Grid) NeighborCount(row, col int) int {
	count := 0

	minRow := max(0, row-1)
	maxRow := min(g.cfg.Rows-1, row+1)
	minCol := max(0, col-1)
	maxCol := min(g.cfg.Cols-1, col+1)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if r == row && c == col {
				continue
			}
			if g.cells[g.index(r, c)].State.IsPresent() {
				count++
			}
		}
	}

	return count
}

// calculateActiveBounds calculates the bounding box of non-dead cells
func (g *Grid) calculateActiveBounds() {
	g.activeBounds.valid = false

	for row := range g.cfg.Rows {
		for col := range g.cfg.Cols {
			if g.cells[g.index(row, col)].State == rules.Dead {
				continue
			}
			if !g.activeBounds.valid {
				g.activeBounds.minRow, g.activeBounds.maxRow = row, row
				g.activeBounds.minCol, g.activeBounds.maxCol = col, col
				g.activeBounds.valid = true
				continue
			}
			g.activeBounds.minRow = min(g.activeBounds.minRow, row)
			g.activeBounds.maxRow = max(g.activeBounds.maxRow, row)
			g.activeBounds.minCol = min(g.activeBounds.minCol, col)
			g.activeBounds.maxCol = max(g.activeBounds.maxCol, col)
		}
	}
}

// GetBoundingBoxSize returns the size of the active region
func (g *Grid) GetBoundingBoxSize() int {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}
	if !g.activeBounds.valid {
		return 0
	}
	return (g.activeBounds.maxRow - g.activeBounds.minRow + 1) *
		(g.activeBounds.maxCol - g.activeBounds.minCol + 1)
}

// CountLivingCells returns the number of alive or dying cells
func (g *Grid) CountLivingCells() (count int) {
	for _, cell := range g.cells {
		if cell.State.IsPresent() {
			count++
		}
	}
	return
}

// CountByState returns the population of every state
func (g *Grid) CountByState() map[rules.State]int {
	counts := map[rules.State]int{rules.Alive: 0, rules.Dying: 0, rules.Dead: 0}
	for _, cell := range g.cells {
		counts[cell.State]++
	}
	return counts
}

// Clone returns a deep copy of the cells, without history
func (g *Grid) Clone() *Grid {
	c := allocGrid(g.cfg)
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.cfg.Rows != other.cfg.Rows || g.cfg.Cols != other.cfg.Cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// GetGridHash returns an MD5 hash of every cell state and timer
func (g *Grid) GetGridHash() string {
	h := md5.New()
	buf := make([]byte, 0, 2*len(g.cells))
	for _, cell := range g.cells {
		buf = append(buf, byte(cell.State))
		buf = binary.AppendUvarint(buf, uint64(cell.DecayTimer))
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())

	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the current state repeats one of the last three recorded.
// The current state must not have been recorded yet.
func (g *Grid) IsStagnant() bool {
	if len(g.history) < 3 {
		return false
	}

	currentHash := g.GetGridHash()
	for _, h := range g.history[len(g.history)-3:] {
		if h == currentHash {
			return true
		}
	}
	return false
}

// Randomize brings dead cells to life with the given probability
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for i := range g.cells {
		if g.cells[i].State == rules.Dead && rng.Float64() < density {
			g.cells[i] = AliveCell
		}
	}
	g.activeBounds.valid = false
}

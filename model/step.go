package model

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/decaylife/rules"
	"github.com/sheikhrachel/decaylife/utils"
)

// Step returns the next generation of current as a new grid.
// Every cell is computed from the pre-step snapshot so current is never modified.
func Step(current *Grid) *Grid {
	return current.NextGenerationSequential(nil)
}

// newNext hands out an all-dead grid shaped like g
func (g *Grid) newNext(pool *GridPool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.cfg)
	} else {
		next = allocGrid(g.cfg)
	}
	next.history = append(next.history[:0], g.history...)
	return next
}

// stepRegion writes next for every cell in the given inclusive-exclusive window
func (g *Grid) stepRegion(next *Grid, startRow, endRow, startCol, endCol int) {
	decay := g.cfg.DecayDuration
	for row := startRow; row < endRow; row++ {
		for col := startCol; col < endCol; col++ {
			idx := g.index(row, col)
			cell := g.cells[idx]
			state, timer := rules.ApplyDecayRules(cell.State, cell.DecayTimer, g.NeighborCount(row, col), decay)
			next.cells[idx] = Cell{State: state, DecayTimer: timer}
		}
	}
}

// NextGenerationSequential calculates the next generation one cell at a time
func (g *Grid) NextGenerationSequential(pool *GridPool) *Grid {
	next := g.newNext(pool)
	g.stepRegion(next, 0, g.cfg.Rows, 0, g.cfg.Cols)
	return next
}

// NextGenerationParallel calculates the next generation using parallel processing.
// Each worker owns a band of rows in next and only reads from g.
func (g *Grid) NextGenerationParallel(pool *GridPool) *Grid {
	next := g.newNext(pool)

	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (g.cfg.Rows + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.cfg.Rows)
		)
		if startRow >= g.cfg.Rows {
			break
		}

		eg.Go(func() error {
			g.stepRegion(next, startRow, endRow, 0, g.cfg.Cols)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in parallel processing: %v\n", err)
	}

	return next
}

// NextGenerationBounded calculates next generation only around non-dead cells.
// Anything further than one cell from the active region has no neighbors and stays dead.
func (g *Grid) NextGenerationBounded(pool *GridPool) *Grid {
	if !g.activeBounds.valid {
		g.calculateActiveBounds()
	}

	next := g.newNext(pool)

	// If every cell is dead, so is the next generation
	if !g.activeBounds.valid {
		return next
	}

	// Process only the active region + 1 margin
	minRow := max(0, g.activeBounds.minRow-1)
	maxRow := min(g.cfg.Rows-1, g.activeBounds.maxRow+1)
	minCol := max(0, g.activeBounds.minCol-1)
	maxCol := min(g.cfg.Cols-1, g.activeBounds.maxCol+1)

	g.stepRegion(next, minRow, maxRow+1, minCol, maxCol+1)

	next.calculateActiveBounds()
	return next
}

// NextGeneration calculates the next generation with the configured mode
func (g *Grid) NextGeneration(mode utils.StepMode, pool *GridPool) *Grid {
	switch mode {
	case utils.ModeParallel:
		return g.NextGenerationParallel(pool)
	case utils.ModeBounded:
		return g.NextGenerationBounded(pool)
	default:
		return g.NextGenerationSequential(pool)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/decaylife/model"
	"github.com/sheikhrachel/decaylife/rules"
	"github.com/sheikhrachel/decaylife/utils"
)

// buildPattern picks the configured seed pattern, or the default one
func buildPattern(config utils.Config) (model.Pattern, error) {
	if len(config.Pattern) == 0 {
		return model.DefaultPattern(), nil
	}
	return model.PatternFromSeeds(config.Pattern)
}

// newGame seeds a grid and sprinkles random life on top when a density is set
func newGame(config utils.Config, pattern model.Pattern, rng *rand.Rand) (*model.Grid, error) {
	grid, err := model.NewGameGrid(config, pattern, rng)
	if err != nil {
		return nil, errors.Wrap(err, "[newGame] failed to seed grid")
	}
	return grid, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(w io.Writer, config utils.Config, grid *model.Grid) {
	fmt.Fprintf(w, "Mode: %s | Memory Pool: %v | Decay: %d\n",
		config.Mode, config.UseMemoryPool, config.DecayDuration)
	fmt.Fprintf(w, "Grid: %dx%d | Initial living cells: %d\n",
		grid.Rows(), grid.Cols(), grid.CountLivingCells())
	fmt.Fprintln(w, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(w)
}

// gameStatus summarizes the current generation for the status line
func gameStatus(grid *model.Grid, isStagnant bool) string {
	switch {
	case grid.CountLivingCells() == 0:
		return "Extinct"
	case isStagnant:
		return "Stagnant"
	default:
		return "Active"
	}
}

// displayGameStatus shows the current game status
func displayGameStatus(w io.Writer, generation int, grid *model.Grid, status string, config utils.Config, stats *utils.Stats) {
	// Show bounding box info for bounded grids
	boundingInfo := ""
	if config.Mode == utils.ModeBounded {
		boundingInfo = fmt.Sprintf(" | Bounding box: %d cells", grid.GetBoundingBoxSize())
	}

	counts := grid.CountByState()
	fmt.Fprintf(w, "Gen: %d | Alive: %d | Dying: %d | Status: %s%s\n",
		generation, counts[rules.Alive], counts[rules.Dying], status, boundingInfo)
	fmt.Fprintf(w, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
}

// plotPopulation draws the living population history
func plotPopulation(stats *utils.Stats) string {
	if len(stats.PopulationHistory) < 2 {
		return ""
	}
	return asciigraph.Plot(stats.PopulationHistory,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("living cells (alive + dying) per generation"),
	)
}

// options are the driver settings that are not part of the config file
type options struct {
	quiet bool
}

// runGame drives the display loop until ctx is done or the generation limit is hit.
// Each iteration renders current, steps into next and swaps the two.
func runGame(ctx context.Context, w io.Writer, config utils.Config, pattern model.Pattern, opts options) (*utils.Stats, error) {
	rng := model.NewGameRNG(config)

	grid, err := newGame(config, pattern, rng)
	if err != nil {
		return nil, err
	}

	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}
	renderer := &model.TerminalRenderer{Out: w, Color: config.Color}
	stats := utils.NewStats(0)

	if !opts.quiet {
		displayGameInfo(w, config, grid)
	}

	var (
		generation    = 0
		stagnantCount = 0
		lastFrameTime = time.Now()
	)

	for {
		frameStart := time.Now()
		if err = renderer.Clear(); err != nil {
			return stats, errors.Wrap(err, "[runGame] failed to clear terminal")
		}

		isStagnant := grid.IsStagnant()
		grid.UpdateHistory()
		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		stats.Update(generation, grid.CountLivingCells(), frameStart.Sub(lastFrameTime))
		lastFrameTime = frameStart

		if !opts.quiet {
			displayGameStatus(w, generation, grid, gameStatus(grid, isStagnant), config, stats)
		}
		if err = renderer.Display(grid); err != nil {
			return stats, errors.Wrap(err, "[runGame] failed to render grid")
		}

		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			return stats, nil
		}

		if shouldRestart, reason := utils.CheckRestartConditions(grid.CountLivingCells(), stagnantCount, config); shouldRestart && config.AutoRestart {
			if !opts.quiet {
				fmt.Fprintf(w, "Restarting due to %s...\n", reason)
			}
			model.GridToPool(grid, pool)
			if grid, err = newGame(config, pattern, rng); err != nil {
				return stats, err
			}
			stagnantCount = 0
		} else {
			next := grid.NextGeneration(config.Mode, pool)
			model.GridToPool(grid, pool)
			grid = next
		}
		generation++

		select {
		case <-ctx.Done():
			return stats, nil
		case <-time.After(config.FrameRate):
		}
	}
}

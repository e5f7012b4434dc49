package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/decaylife/rules"
	"github.com/sheikhrachel/decaylife/utils"
)

// Override forces one cell of a freshly initialized grid into a given state
type Override struct {
	Row, Col int
	Cell     Cell
}

// Pattern is an ordered list of overrides, later entries win
type Pattern []Override

// DefaultPattern is the glider-like cluster with one lingering dying cell
func DefaultPattern() Pattern {
	return Pattern{
		{Row: 11, Col: 11, Cell: AliveCell},
		{Row: 11, Col: 12, Cell: AliveCell},
		{Row: 12, Col: 11, Cell: AliveCell},
		{Row: 12, Col: 12, Cell: AliveCell},
		{Row: 12, Col: 13, Cell: AliveCell},
		{Row: 13, Col: 13, Cell: AliveCell},
		{Row: 13, Col: 12, Cell: AliveCell},
		{Row: 14, Col: 14, Cell: AliveCell},
		{Row: 15, Col: 14, Cell: AliveCell},
		{Row: 3, Col: 3, Cell: DyingCell(2)},
	}
}

// PatternFromSeeds converts config entries into a Pattern
func PatternFromSeeds(seeds []utils.SeedEntry) (Pattern, error) {
	pattern := make(Pattern, 0, len(seeds))
	for i, seed := range seeds {
		state, ok := rules.ParseState(seed.State)
		if !ok {
			return nil, errors.Wrapf(
				&ConfigurationError{Reason: "unknown state " + seed.State},
				"[PatternFromSeeds] entry %d", i,
			)
		}
		pattern = append(pattern, Override{
			Row:  seed.Row,
			Col:  seed.Col,
			Cell: Cell{State: state, DecayTimer: seed.Timer},
		})
	}
	return pattern, nil
}

// Seeds converts the pattern back into config entries
func (p Pattern) Seeds() []utils.SeedEntry {
	seeds := make([]utils.SeedEntry, 0, len(p))
	for _, o := range p {
		seeds = append(seeds, utils.SeedEntry{
			Row:   o.Row,
			Col:   o.Col,
			State: o.Cell.State.String(),
			Timer: o.Cell.DecayTimer,
		})
	}
	return seeds
}

// Seed applies the pattern on top of the current cells.
// Every override is checked first, so a bad pattern leaves the grid untouched.
func (g *Grid) Seed(pattern Pattern) error {
	for i, o := range pattern {
		if !g.inBounds(o.Row, o.Col) {
			return errors.Wrapf(g.boundsError(o.Row, o.Col), "[Seed] override %d", i)
		}
		if err := o.Cell.validate(); err != nil {
			return errors.Wrapf(err, "[Seed] override %d at (%d,%d)", i, o.Row, o.Col)
		}
	}

	for _, o := range pattern {
		g.cells[g.index(o.Row, o.Col)] = o.Cell
	}
	g.activeBounds.valid = false
	return nil
}

// NewSeededGrid initializes a grid and applies pattern to it
func NewSeededGrid(cfg utils.SimulationConfig, pattern Pattern) (*Grid, error) {
	g, err := NewGrid(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "[NewSeededGrid] failed to initialize grid")
	}
	if err = g.Seed(pattern); err != nil {
		return nil, err
	}
	return g, nil
}

// NewGameGrid seeds a grid and sprinkles random life on top when density is positive
func NewGameGrid(cfg utils.Config, pattern Pattern, rng *rand.Rand) (*Grid, error) {
	g, err := NewSeededGrid(cfg.SimulationConfig, pattern)
	if err != nil {
		return nil, err
	}
	if cfg.RandomDensity > 0 {
		g.Randomize(rng, cfg.RandomDensity)
	}
	return g, nil
}

// NewGameRNG returns the generator used for the random fill of a run
func NewGameRNG(cfg utils.Config) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(cfg.RandomSeed), 0))
}

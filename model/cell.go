package model

import (
	"fmt"

	"github.com/sheikhrachel/decaylife/rules"
)

// Cell is one grid position: its state plus the countdown of a dying cell
type Cell struct {
	State      rules.State
	DecayTimer int
}

var (
	AliveCell = Cell{State: rules.Alive}
	DeadCell  = Cell{State: rules.Dead}
)

// DyingCell returns a dying cell with the given countdown
func DyingCell(timer int) Cell {
	return Cell{State: rules.Dying, DecayTimer: timer}
}

// validate enforces that only dying cells carry a timer, and never a negative one
func (c Cell) validate() error {
	if !c.State.Valid() {
		return &ConfigurationError{Reason: fmt.Sprintf("unknown cell state %d", c.State)}
	}
	if c.DecayTimer < 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("negative decay timer %d", c.DecayTimer)}
	}
	if c.State != rules.Dying && c.DecayTimer != 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("%s cell with decay timer %d", c.State, c.DecayTimer)}
	}
	return nil
}

func (c Cell) String() string {
	if c.State == rules.Dying {
		return fmt.Sprintf("dying(%d)", c.DecayTimer)
	}
	return c.State.String()
}

package model

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrConfiguration matches every ConfigurationError via errors.Is
	ErrConfiguration = errors.New("invalid configuration")
	// ErrOutOfBounds matches every OutOfBoundsError via errors.Is
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// ConfigurationError reports grid dimensions or cell values the engine cannot hold
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrConfiguration, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// OutOfBoundsError reports a coordinate outside [0,rows) x [0,cols)
type OutOfBoundsError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%v: (%d,%d) not in %dx%d grid", ErrOutOfBounds, e.Row, e.Col, e.Rows, e.Cols)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

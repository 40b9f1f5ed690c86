package apcluster

import (
	"errors"
	"fmt"

	"github.com/hupe1980/apcluster/internal/engine"
)

// ErrEmptyInput is returned when the similarity relation contains no
// vertices. An empty input would otherwise poison the convergence tolerance
// with a division by zero, so the run fails fast instead.
var ErrEmptyInput = engine.ErrEmptyInput

// ErrInvalidDamping indicates a damping factor outside the open interval
// (0, 1).
type ErrInvalidDamping struct {
	Damping float64
}

func (e *ErrInvalidDamping) Error() string {
	return fmt.Sprintf("invalid damping factor: %g (must be in (0, 1))", e.Damping)
}

// ErrInvalidMaxIterations indicates a non-positive iteration budget.
type ErrInvalidMaxIterations struct {
	MaxIterations int
}

func (e *ErrInvalidMaxIterations) Error() string {
	return fmt.Sprintf("invalid max iterations: %d (must be positive)", e.MaxIterations)
}

// ErrInvalidWorkers indicates a negative worker count.
type ErrInvalidWorkers struct {
	Workers int
}

func (e *ErrInvalidWorkers) Error() string {
	return fmt.Sprintf("invalid worker count: %d (must be >= 0)", e.Workers)
}

// IsEmptyInput reports whether err stems from an empty similarity relation.
func IsEmptyInput(err error) bool {
	return errors.Is(err, ErrEmptyInput)
}

/*
errors.go - Centralized error types for the assignment engine

PURPOSE:
  All error types in one place for consistency and discoverability.

ERROR CATEGORIES:
  1. Data-integrity errors - raised during model construction, before any
     solve attempt. These abort the run; no partial model is returned.
  2. Configuration errors  - invalid size bounds or degenerate weights.
  3. Solution errors       - querying values from a solve that produced none.

  Infeasibility is NOT an error: it is an ordinary terminal status surfaced
  through Solution.Status(). The caller decides whether to relax the
  configuration and retry; the engine never relaxes constraints itself.

USAGE:
    if errors.Is(err, assign.ErrParentNotFound) {
        var pnf *assign.ParentNotFoundError
        errors.As(err, &pnf)
        log.Printf("fix the crews file: %s", pnf.Parent)
    }

SEE ALSO:
  - constraints.go: Raises the integrity errors
  - solve.go: Raises ErrNoSolution
*/
package assign

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrParentNotFound is returned when a youth names a parent that appears
	// in no crew roster. This is a fatal data-integrity failure.
	ErrParentNotFound = errors.New("parent not found in any crew roster")

	// ErrSiblingCenterConflict is returned when two siblings have parents
	// resolving to different centers. The sibling co-location and parent
	// binding rules cannot both hold, so the run aborts before solving.
	ErrSiblingCenterConflict = errors.New("siblings have parents at different centers")

	// ErrInvalidConfig is returned when size bounds or weights are unusable.
	ErrInvalidConfig = errors.New("invalid assignment configuration")

	// ErrNoSolution is returned when reading variable values from a solve
	// that ended infeasible, invalid, or unknown.
	ErrNoSolution = errors.New("no solution values available")

	// ErrUnknownVariable is returned when querying a (person, center[, crew])
	// key that was never part of the variable space.
	ErrUnknownVariable = errors.New("unknown decision variable")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ParentNotFoundError identifies which youth's parent reference is broken.
type ParentNotFoundError struct {
	Youth  string
	Parent string
}

func (e *ParentNotFoundError) Error() string {
	return fmt.Sprintf("parent %q of youth %q not found in any crew roster", e.Parent, e.Youth)
}

func (e *ParentNotFoundError) Unwrap() error { return ErrParentNotFound }

// SiblingCenterConflictError identifies the sibling pair whose parents
// resolve to different centers.
type SiblingCenterConflictError struct {
	YouthA  string
	CenterA string
	YouthB  string
	CenterB string
}

func (e *SiblingCenterConflictError) Error() string {
	return fmt.Sprintf("siblings %q (parent center %q) and %q (parent center %q) cannot share a center",
		e.YouthA, e.CenterA, e.YouthB, e.CenterB)
}

func (e *SiblingCenterConflictError) Unwrap() error { return ErrSiblingCenterConflict }

// ConfigError explains which configuration rule was violated.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

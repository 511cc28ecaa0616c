/*
errors.go - Centralized error types for the award engine

PURPOSE:
  The calculation path never returns errors (bad inputs degrade to zero
  results). Errors exist for the edges: parsing clock strings, validating an
  award document before it becomes an immutable Award, and looking up award
  versions in a Catalog.

USAGE:
  if errors.Is(err, award.ErrUnknownAward) {
      // 404 in the API layer
  }

SEE ALSO:
  - clock.go: Returns ClockError
  - validate.go: Returns ValidationError
  - catalog.go: Returns ErrUnknownAward / ErrNoVersionInForce
*/
package award

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidClock is returned for malformed "HH:MM" strings.
	ErrInvalidClock = errors.New("invalid clock time")

	// ErrInvalidAward is returned when an award fails validation.
	ErrInvalidAward = errors.New("invalid award")

	// ErrUnknownAward is returned when a catalog has no award with the code.
	ErrUnknownAward = errors.New("unknown award")

	// ErrNoVersionInForce is returned when every version starts after the
	// requested date.
	ErrNoVersionInForce = errors.New("no award version in force")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ClockError describes a rejected clock string.
type ClockError struct {
	Value  string
	Reason string
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("invalid clock time %q: %s", e.Value, e.Reason)
}

func (e *ClockError) Unwrap() error { return ErrInvalidClock }

// ValidationError collects every problem found in an award.
type ValidationError struct {
	Code     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("award %s: %s", e.Code, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidAward }

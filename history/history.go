/*
Package history keeps past weekly calculations.

PURPOSE:
  The engine itself is stateless. History is an optional outer layer that
  records each calculation the API or CLI performs so it can be listed,
  exported later and pruned after a retention period.

KEY CONCEPTS:
  - Record: Input snapshot + summary + award version that produced it
  - Store:  Persistence interface (memory here, SQLite in store/sqlite)

IMMUTABILITY:
  Records are never updated. A recalculation is a new record.

SEE ALSO:
  - store/sqlite/sqlite.go: Durable Store
  - api/scheduler.go: Retention pruner
*/
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/warp/award-engine/award"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when no record has the requested ID.
	ErrNotFound = errors.New("calculation not found")

	// ErrDuplicateID is returned when saving a record whose ID exists.
	ErrDuplicateID = errors.New("duplicate calculation id")
)

// NotFoundError carries the missing ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("calculation %s not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// =============================================================================
// RECORD
// =============================================================================

// Record is one saved calculation.
type Record struct {
	ID           string
	CreatedAt    time.Time
	Label        string
	AwardCode    string
	AwardVersion string
	Schedule     string
	Input        award.WeeklyInput
	Summary      award.WeeklySummary
}

// NewRecord stamps a calculation with a fresh ID and timestamp.
func NewRecord(label string, in award.WeeklyInput, summary award.WeeklySummary, now time.Time) Record {
	return Record{
		ID:           uuid.NewString(),
		CreatedAt:    now.UTC(),
		Label:        label,
		AwardCode:    summary.AwardCode,
		AwardVersion: summary.AwardVersion,
		Schedule:     in.Schedule,
		Input:        in,
		Summary:      summary,
	}
}

// ValidID reports whether id looks like a record ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// ListOptions pages through records, newest first.
type ListOptions struct {
	Limit  int // 0 means no limit
	Offset int
}

// Store persists calculation records.
type Store interface {
	Save(ctx context.Context, r Record) error
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, opts ListOptions) ([]Record, error)
	Delete(ctx context.Context, id string) error
	// DeleteBefore removes records created before cutoff and returns how
	// many were removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int, error)
}

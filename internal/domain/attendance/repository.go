package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. Records are
// append-only: Update does not exist, corrections go through Create with
// CorrectsRecordID set.
type Repository interface {
	// Create stores a new record (original or correction).
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID.
	GetByID(ctx context.Context, id string) (Record, error)

	// ListEffectiveForPeriod returns the effective record per work date for
	// an employee in [from, to]: the latest correction wins, superseded
	// records are excluded.
	ListEffectiveForPeriod(ctx context.Context, employeeID, workplaceID string, from, to time.Time) ([]Record, error)

	// HasCorrection reports whether a record has already been superseded.
	HasCorrection(ctx context.Context, recordID string) (bool, error)
}

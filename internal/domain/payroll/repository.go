package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// RunRepository defines data access for payroll runs and their line items.
// Status transitions and line-item replacement are compare-and-swap on the
// run version: a stale version fails with ErrConcurrentModification and
// leaves the stored run untouched.
type RunRepository interface {
	// CreateRun stores a new draft run.
	CreateRun(ctx context.Context, run Run) (Run, error)

	// GetRun retrieves a run with its line items.
	GetRun(ctx context.Context, id string) (Run, error)

	// GetRunByPeriod retrieves the run for a workplace and period, if any.
	GetRunByPeriod(ctx context.Context, workplaceID string, year, month int) (Run, error)

	// ListRuns returns all runs for a workplace, newest period first.
	ListRuns(ctx context.Context, workplaceID string) ([]Run, error)

	// ReplaceLineItems atomically swaps a draft run's line items and bumps
	// the version from fromVersion to fromVersion+1.
	ReplaceLineItems(ctx context.Context, runID string, fromVersion int, items []LineItem, incomplete bool) error

	// UpdateStatus commits a state transition, bumping the version from
	// fromVersion to fromVersion+1.
	UpdateStatus(ctx context.Context, run Run, fromVersion int) error
}

// DeductionSource supplies the externally computed deduction amounts
// (apartment rent, income tax, social insurance, resident tax) per employee
// and period. The engine only sums them.
type DeductionSource interface {
	DeductionsFor(ctx context.Context, employeeID string, year, month int) ([]DeductionInput, error)
}

// LeaveSource reports the paid-leave days an employee consumed in a period.
// Backed by the yukyu ledger.
type LeaveSource interface {
	ConsumedDays(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error)
}

package yukyu

import (
	"context"
	"time"
)

// Repository defines data access for the append-only yukyu ledger. There is
// no update or delete: reversals are compensating consumption records.
type Repository interface {
	// CreateGrant stores a new grant.
	CreateGrant(ctx context.Context, grant Grant) (Grant, error)

	// ListGrants returns all grants for an employee, oldest first.
	ListGrants(ctx context.Context, employeeID string) ([]Grant, error)

	// ListGrantsExpiringBy returns grants across all employees whose expiry
	// date falls on or before the given date but has not yet passed.
	ListGrantsExpiringBy(ctx context.Context, by time.Time) ([]Grant, error)

	// GetConsumption retrieves one consumption record.
	GetConsumption(ctx context.Context, id string) (Consumption, error)

	// CreateConsumptions stores a batch of consumption records atomically:
	// either the whole allocation lands or none of it does.
	CreateConsumptions(ctx context.Context, consumptions []Consumption) ([]Consumption, error)

	// ListConsumptions returns all consumption records for an employee,
	// oldest first.
	ListConsumptions(ctx context.Context, employeeID string) ([]Consumption, error)

	// ListConsumptionsInRange returns consumption records dated within
	// [from, to] for an employee.
	ListConsumptionsInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Consumption, error)

	// HasReversal reports whether a consumption already has a compensating
	// record referencing it.
	HasReversal(ctx context.Context, consumptionID string) (bool, error)
}

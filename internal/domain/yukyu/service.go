package yukyu

import "context"

// Service manages the paid-leave ledger. Grants and consumptions are
// append-only; balances are always derived by replay.
type Service interface {
	// Grant records a fiscal year's entitlement for an employee. The expiry
	// date is derived from the grant date and the statutory validity.
	Grant(ctx context.Context, req GrantRequest) (GrantResponse, error)

	// Consume draws days from the employee's grants, newest grant first.
	// When the available balance on the date is insufficient the ledger is
	// left untouched and ErrInsufficientBalance is returned.
	Consume(ctx context.Context, req ConsumeRequest) (ConsumptionResultResponse, error)

	// Reverse undoes a consumption with a compensating record. A
	// consumption can be reversed at most once.
	Reverse(ctx context.Context, consumptionID string) (ConsumptionResponse, error)

	// BalanceAsOf replays the ledger up to a date.
	BalanceAsOf(ctx context.Context, employeeID, asOf string) (SnapshotResponse, error)

	// ListGrants returns an employee's grants, oldest first.
	ListGrants(ctx context.Context, employeeID string) ([]GrantResponse, error)

	// ListConsumptions returns an employee's consumption records, oldest
	// first.
	ListConsumptions(ctx context.Context, employeeID string) ([]ConsumptionResponse, error)
}

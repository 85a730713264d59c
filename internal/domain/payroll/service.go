package payroll

import "context"

// RunService drives the payroll run lifecycle: create, compute, approve,
// pay, cancel. Computation is idempotent on a draft; transitions use
// optimistic concurrency on the run version.
type RunService interface {
	// CreateRun opens a draft run for a workplace and period and computes
	// its line items. At most one non-cancelled run may exist per
	// (workplace, period).
	CreateRun(ctx context.Context, req CreateRunRequest) (RunResponse, error)

	// RecomputeRun replaces a draft run's line items from current inputs.
	// Identical inputs produce identical line items.
	RecomputeRun(ctx context.Context, runID string) (RunResponse, error)

	// GetRun retrieves a run with its line items.
	GetRun(ctx context.Context, runID string) (RunResponse, error)

	// ListRuns returns all runs for a workplace, newest period first,
	// without line items.
	ListRuns(ctx context.Context, workplaceID string) ([]RunResponse, error)

	// Approve transitions a draft run to approved. Blocking warnings fail
	// the transition unless req.Override is set.
	Approve(ctx context.Context, runID string, req ApproveRunRequest) (RunResponse, error)

	// MarkPaid transitions an approved run to paid.
	MarkPaid(ctx context.Context, runID string) (RunResponse, error)

	// Cancel transitions a draft or approved run to cancelled.
	Cancel(ctx context.Context, runID string) (RunResponse, error)
}

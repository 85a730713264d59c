package attendance

import "context"

// Service handles attendance record intake for the payroll engine. Records
// arrive from the attendance collaborator; the engine stores them immutably
// and serves the effective view per period.
type Service interface {
	// Submit stores a new record. When CorrectsRecordID is set the new
	// record supersedes the referenced one; a record can only be corrected
	// once, later corrections must chain off the latest record.
	Submit(ctx context.Context, req SubmitRecordRequest) (RecordResponse, error)

	// Get retrieves a single record.
	Get(ctx context.Context, id string) (RecordResponse, error)

	// ListForPeriod returns the effective records for an employee at a
	// workplace in a pay period, corrections applied.
	ListForPeriod(ctx context.Context, employeeID, workplaceID string, year, month int) ([]RecordResponse, error)
}

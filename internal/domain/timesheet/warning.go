package timesheet

import "time"

// WarningKind tags a non-fatal finding accumulated during aggregation or
// calculation. Warnings travel with the result instead of aborting it, so a
// batch payroll run can proceed while flagging individual employees for
// review.
type WarningKind string

const (
	// WarningIncompleteDay marks a date in the period with no attendance
	// record.
	WarningIncompleteDay WarningKind = "incomplete_day"

	// WarningNegativeNet marks a line item whose deductions exceeded gross;
	// net is clamped to zero.
	WarningNegativeNet WarningKind = "negative_net"
)

type Warning struct {
	Kind       WarningKind `json:"kind"`
	EmployeeID string      `json:"employee_id"`
	Date       *time.Time  `json:"date,omitempty"`
	Message    string      `json:"message"`
}

// HasKind reports whether any warning in the slice carries the given kind.
func HasKind(warnings []Warning, kind WarningKind) bool {
	for _, w := range warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

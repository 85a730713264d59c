package attendance

import (
	"time"
)

// Record is one day's raw attendance for an employee. Records are immutable
// once submitted; a correction is a new record pointing at the one it
// supersedes, so the audit trail is never rewritten.
type Record struct {
	ID           string
	EmployeeID   string
	WorkplaceID  string
	WorkDate     time.Time // calendar day, time part zero
	ClockIn      time.Time
	ClockOut     time.Time
	BreakMinutes int

	// CorrectsRecordID points at the superseded record when this record is a
	// correction.
	CorrectsRecordID *string

	SubmittedAt time.Time
}

// WorkedMinutes returns the net worked span: (clock-out - clock-in) - breaks.
func (r Record) WorkedMinutes() int {
	span := int(r.ClockOut.Sub(r.ClockIn).Minutes())
	return span - r.BreakMinutes
}

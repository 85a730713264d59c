package attendance

import "errors"

// Attendance domain errors
var (
	// ErrInvalidRecord marks malformed attendance: clock-out not after
	// clock-in, or break minutes exceeding the worked span.
	ErrInvalidRecord = errors.New("attendance record is malformed")

	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrRecordSuperseded = errors.New("attendance record has already been corrected")
	ErrDuplicateRecord  = errors.New("attendance record already exists for this date")
)

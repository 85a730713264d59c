package attendance

import (
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/validator"
)

type SubmitRecordRequest struct {
	EmployeeID       string  `json:"employee_id"`
	WorkplaceID      string  `json:"workplace_id"`
	WorkDate         string  `json:"work_date"` // "2006-01-02"
	ClockIn          string  `json:"clock_in"`  // RFC3339
	ClockOut         string  `json:"clock_out"` // RFC3339
	BreakMinutes     int     `json:"break_minutes"`
	CorrectsRecordID *string `json:"corrects_record_id,omitempty"`
}

func (r *SubmitRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.WorkplaceID) {
		errs = append(errs, validator.ValidationError{Field: "workplace_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "must be a YYYY-MM-DD date"})
	}
	clockIn, okIn := validator.IsValidDateTime(r.ClockIn)
	if !okIn {
		errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "must be an RFC3339 timestamp"})
	}
	clockOut, okOut := validator.IsValidDateTime(r.ClockOut)
	if !okOut {
		errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "must be an RFC3339 timestamp"})
	}
	if okIn && okOut && !clockOut.After(clockIn) {
		errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "must be after clock_in"})
	}
	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToRecord converts a validated request into a Record value.
func (r *SubmitRecordRequest) ToRecord() Record {
	workDate, _ := time.Parse("2006-01-02", r.WorkDate)
	clockIn, _ := validator.IsValidDateTime(r.ClockIn)
	clockOut, _ := validator.IsValidDateTime(r.ClockOut)

	return Record{
		EmployeeID:       r.EmployeeID,
		WorkplaceID:      r.WorkplaceID,
		WorkDate:         workDate,
		ClockIn:          clockIn,
		ClockOut:         clockOut,
		BreakMinutes:     r.BreakMinutes,
		CorrectsRecordID: r.CorrectsRecordID,
	}
}

type RecordResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	WorkplaceID      string  `json:"workplace_id"`
	WorkDate         string  `json:"work_date"`
	ClockIn          string  `json:"clock_in"`
	ClockOut         string  `json:"clock_out"`
	BreakMinutes     int     `json:"break_minutes"`
	WorkedMinutes    int     `json:"worked_minutes"`
	CorrectsRecordID *string `json:"corrects_record_id,omitempty"`
	SubmittedAt      string  `json:"submitted_at"`
}

// ToResponse maps a Record entity to its API representation.
func ToResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		WorkplaceID:      rec.WorkplaceID,
		WorkDate:         rec.WorkDate.Format("2006-01-02"),
		ClockIn:          rec.ClockIn.Format(time.RFC3339),
		ClockOut:         rec.ClockOut.Format(time.RFC3339),
		BreakMinutes:     rec.BreakMinutes,
		WorkedMinutes:    rec.WorkedMinutes(),
		CorrectsRecordID: rec.CorrectsRecordID,
		SubmittedAt:      rec.SubmittedAt.Format(time.RFC3339),
	}
}

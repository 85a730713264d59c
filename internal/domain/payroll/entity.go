package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// RatedAmounts is the monetary result of rating one hour bucket. Amounts are
// integer yen. Regular and overtime carry the partitioned hours at their
// stacked rates; night and holiday are the overlay premiums added on top.
type RatedAmounts struct {
	RegularAmount  int64
	OvertimeAmount int64
	NightPremium   int64
	HolidayPremium int64
}

// Total sums the rated components.
func (r RatedAmounts) Total() int64 {
	return r.RegularAmount + r.OvertimeAmount + r.NightPremium + r.HolidayPremium
}

// DeductionKind is the closed, tagged set of deduction categories. KindOther
// is the extensible escape hatch and requires a label.
type DeductionKind string

const (
	KindIncomeTax       DeductionKind = "income_tax"
	KindSocialInsurance DeductionKind = "social_insurance"
	KindResidentTax     DeductionKind = "resident_tax"
	KindApartmentRent   DeductionKind = "apartment_rent"
	KindPenalty         DeductionKind = "attendance_penalty"
	KindOther           DeductionKind = "other"
)

// ValidKinds lists the accepted deduction kinds for validation.
var ValidKinds = []DeductionKind{
	KindIncomeTax, KindSocialInsurance, KindResidentTax,
	KindApartmentRent, KindPenalty, KindOther,
}

// DeductionLine is one itemized deduction on a line item.
type DeductionLine struct {
	Kind   DeductionKind `json:"kind"`
	Label  string        `json:"label,omitempty"`
	Amount int64         `json:"amount"`
}

type DeductionLines []DeductionLine

// Total sums the deduction lines.
func (d DeductionLines) Total() int64 {
	var total int64
	for _, line := range d {
		total += line.Amount
	}
	return total
}

// DeductionInput is an externally supplied deduction amount for one employee
// and period. The engine sums inputs; it never computes tax or insurance
// itself.
type DeductionInput struct {
	EmployeeID string
	Kind       DeductionKind
	Label      string
	Amount     int64
}

// LineItem is one employee's computed pay for a period. Immutable once the
// owning run is approved. Line item IDs are deterministic for a given
// (run, employee), so recomputing a draft is idempotent.
type LineItem struct {
	ID          string
	RunID       string
	EmployeeID  string
	PeriodYear  int
	PeriodMonth int

	HourlyRate int64

	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	NightHours    decimal.Decimal
	HolidayHours  decimal.Decimal

	RegularAmount  int64
	OvertimeAmount int64
	NightPremium   int64
	HolidayPremium int64

	LeaveHours decimal.Decimal
	LeaveAmount int64

	AllowanceTotal  int64
	AttendanceBonus int64

	Gross          int64
	Deductions     DeductionLines
	DeductionTotal int64
	Net            int64

	Warnings WarningList
}

// WarningList is the JSONB-persisted warning slice on a line item.
type WarningList []timesheet.Warning

// RunStatus is the payroll run lifecycle state.
type RunStatus string

const (
	StatusDraft     RunStatus = "draft"
	StatusApproved  RunStatus = "approved"
	StatusPaid      RunStatus = "paid"
	StatusCancelled RunStatus = "cancelled"
)

// Run is the batch unit for one workplace and pay period. Draft runs are
// recomputable; approval freezes the line items. All transitions go through
// optimistic concurrency on Version.
type Run struct {
	ID          string
	WorkplaceID string
	PeriodYear  int
	PeriodMonth int
	Status      RunStatus
	Version     int

	// Incomplete is set when any employee in the run has an IncompleteDay
	// warning outstanding.
	Incomplete bool

	LineItems []LineItem

	ApprovedBy  *string
	ApprovedAt  *time.Time
	PaidBy      *string
	PaidAt      *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Warnings aggregates the outstanding warnings across all line items.
func (r *Run) Warnings() []timesheet.Warning {
	var all []timesheet.Warning
	for _, item := range r.LineItems {
		all = append(all, item.Warnings...)
	}
	return all
}

// HasBlockingWarnings reports whether any IncompleteDay or NegativeNet
// warning is outstanding. Approval requires an explicit override while any
// remain.
func (r *Run) HasBlockingWarnings() bool {
	warnings := r.Warnings()
	return timesheet.HasKind(warnings, timesheet.WarningIncompleteDay) ||
		timesheet.HasKind(warnings, timesheet.WarningNegativeNet)
}

// Approve transitions draft -> approved. Outstanding blocking warnings fail
// the transition unless override is set.
func (r *Run) Approve(by string, now time.Time, override bool) error {
	if r.Status != StatusDraft {
		return ErrInvalidTransition
	}
	if r.HasBlockingWarnings() && !override {
		return ErrUnresolvedWarnings
	}
	r.Status = StatusApproved
	r.ApprovedBy = &by
	r.ApprovedAt = &now
	return nil
}

// MarkPaid transitions approved -> paid.
func (r *Run) MarkPaid(by string, now time.Time) error {
	if r.Status != StatusApproved {
		return ErrInvalidTransition
	}
	r.Status = StatusPaid
	r.PaidBy = &by
	r.PaidAt = &now
	return nil
}

// Cancel transitions draft or approved -> cancelled. Data is kept; cancelled
// is a terminal marker, not a delete.
func (r *Run) Cancel(now time.Time) error {
	if r.Status != StatusDraft && r.Status != StatusApproved {
		return ErrInvalidTransition
	}
	r.Status = StatusCancelled
	r.CancelledAt = &now
	return nil
}

// Recomputable reports whether line items may still be replaced.
func (r *Run) Recomputable() bool {
	return r.Status == StatusDraft
}

// Value implements driver.Valuer for database storage
func (d DeductionLines) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for database retrieval
func (d *DeductionLines) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan DeductionLines: invalid type")
	}
	return json.Unmarshal(bytes, d)
}

// Value implements driver.Valuer for database storage
func (w WarningList) Value() (driver.Value, error) {
	return json.Marshal(w)
}

// Scan implements sql.Scanner for database retrieval
func (w *WarningList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan WarningList: invalid type")
	}
	return json.Unmarshal(bytes, w)
}

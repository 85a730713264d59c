package payroll

import (
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/timesheet"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRunRequest struct {
	WorkplaceID string `json:"workplace_id"`
	PeriodYear  int    `json:"period_year"`
	PeriodMonth int    `json:"period_month"`
}

func (r *CreateRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkplaceID) {
		errs = append(errs, validator.ValidationError{Field: "workplace_id", Message: "is required"})
	}
	if !validator.IsValidPeriod(r.PeriodYear, r.PeriodMonth) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be a valid year and month"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveRunRequest struct {
	Override bool `json:"override"`
}

type LineItemResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	PeriodYear  int    `json:"period_year"`
	PeriodMonth int    `json:"period_month"`

	HourlyRate int64 `json:"hourly_rate"`

	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	NightHours    decimal.Decimal `json:"night_hours"`
	HolidayHours  decimal.Decimal `json:"holiday_hours"`

	RegularAmount  int64 `json:"regular_amount"`
	OvertimeAmount int64 `json:"overtime_amount"`
	NightPremium   int64 `json:"night_premium"`
	HolidayPremium int64 `json:"holiday_premium"`

	LeaveHours  decimal.Decimal `json:"leave_hours"`
	LeaveAmount int64           `json:"leave_amount"`

	AllowanceTotal  int64 `json:"allowance_total"`
	AttendanceBonus int64 `json:"attendance_bonus"`

	Gross          int64           `json:"gross"`
	Deductions     []DeductionLine `json:"deductions"`
	DeductionTotal int64           `json:"deduction_total"`
	Net            int64           `json:"net"`

	Warnings []timesheet.Warning `json:"warnings,omitempty"`
}

type RunResponse struct {
	ID          string             `json:"id"`
	WorkplaceID string             `json:"workplace_id"`
	PeriodYear  int                `json:"period_year"`
	PeriodMonth int                `json:"period_month"`
	Status      string             `json:"status"`
	Version     int                `json:"version"`
	Incomplete  bool               `json:"incomplete"`
	LineItems   []LineItemResponse `json:"line_items,omitempty"`
	ApprovedBy  *string            `json:"approved_by,omitempty"`
	ApprovedAt  *string            `json:"approved_at,omitempty"`
	PaidBy      *string            `json:"paid_by,omitempty"`
	PaidAt      *string            `json:"paid_at,omitempty"`
	CancelledAt *string            `json:"cancelled_at,omitempty"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
}

// ToLineItemResponse maps a line item to its API representation.
func ToLineItemResponse(item LineItem) LineItemResponse {
	return LineItemResponse{
		ID:              item.ID,
		EmployeeID:      item.EmployeeID,
		PeriodYear:      item.PeriodYear,
		PeriodMonth:     item.PeriodMonth,
		HourlyRate:      item.HourlyRate,
		RegularHours:    item.RegularHours,
		OvertimeHours:   item.OvertimeHours,
		NightHours:      item.NightHours,
		HolidayHours:    item.HolidayHours,
		RegularAmount:   item.RegularAmount,
		OvertimeAmount:  item.OvertimeAmount,
		NightPremium:    item.NightPremium,
		HolidayPremium:  item.HolidayPremium,
		LeaveHours:      item.LeaveHours,
		LeaveAmount:     item.LeaveAmount,
		AllowanceTotal:  item.AllowanceTotal,
		AttendanceBonus: item.AttendanceBonus,
		Gross:           item.Gross,
		Deductions:      item.Deductions,
		DeductionTotal:  item.DeductionTotal,
		Net:             item.Net,
		Warnings:        item.Warnings,
	}
}

// ToRunResponse maps a run (with line items) to its API representation.
func ToRunResponse(run Run) RunResponse {
	items := make([]LineItemResponse, 0, len(run.LineItems))
	for _, item := range run.LineItems {
		items = append(items, ToLineItemResponse(item))
	}

	return RunResponse{
		ID:          run.ID,
		WorkplaceID: run.WorkplaceID,
		PeriodYear:  run.PeriodYear,
		PeriodMonth: run.PeriodMonth,
		Status:      string(run.Status),
		Version:     run.Version,
		Incomplete:  run.Incomplete,
		LineItems:   items,
		ApprovedBy:  run.ApprovedBy,
		ApprovedAt:  formatTimePtr(run.ApprovedAt),
		PaidBy:      run.PaidBy,
		PaidAt:      formatTimePtr(run.PaidAt),
		CancelledAt: formatTimePtr(run.CancelledAt),
		CreatedAt:   run.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   run.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

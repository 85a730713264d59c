package yukyu

import (
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GrantRequest struct {
	EmployeeID string          `json:"employee_id"`
	FiscalYear int             `json:"fiscal_year"`
	GrantDate  string          `json:"grant_date"` // "2006-01-02"
	Days       decimal.Decimal `json:"days"`
}

func (r *GrantRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidFiscalYear(r.FiscalYear) {
		errs = append(errs, validator.ValidationError{Field: "fiscal_year", Message: "must be a valid year"})
	}
	if _, ok := validator.IsValidDate(r.GrantDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "grant_date", Message: "must be a YYYY-MM-DD date"})
	}
	if !r.Days.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ConsumeRequest struct {
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"` // "2006-01-02"
	Days       decimal.Decimal `json:"days"`
}

func (r *ConsumeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"})
	}
	if !r.Days.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GrantResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	FiscalYear int             `json:"fiscal_year"`
	GrantDate  string          `json:"grant_date"`
	Days       decimal.Decimal `json:"days"`
	ExpiryDate string          `json:"expiry_date"`
}

type ConsumptionResponse struct {
	ID         string          `json:"id"`
	GrantID    string          `json:"grant_id"`
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	Days       decimal.Decimal `json:"days"`
	ReversesID *string         `json:"reverses_id,omitempty"`
}

type ConsumptionResultResponse struct {
	EmployeeID   string                `json:"employee_id"`
	Date         string                `json:"date"`
	Requested    decimal.Decimal       `json:"requested"`
	Consumptions []ConsumptionResponse `json:"consumptions"`
}

// ToGrantResponse maps a grant to its API representation.
func ToGrantResponse(g Grant) GrantResponse {
	return GrantResponse{
		ID:         g.ID,
		EmployeeID: g.EmployeeID,
		FiscalYear: g.FiscalYear,
		GrantDate:  g.GrantDate.Format("2006-01-02"),
		Days:       g.Days,
		ExpiryDate: g.ExpiryDate.Format("2006-01-02"),
	}
}

// ToConsumptionResponse maps a consumption to its API representation.
func ToConsumptionResponse(c Consumption) ConsumptionResponse {
	return ConsumptionResponse{
		ID:         c.ID,
		GrantID:    c.GrantID,
		EmployeeID: c.EmployeeID,
		Date:       c.Date.Format("2006-01-02"),
		Days:       c.Days,
		ReversesID: c.ReversesID,
	}
}

// ToResultResponse maps a consumption result to its API representation.
func ToResultResponse(res ConsumptionResult) ConsumptionResultResponse {
	consumptions := make([]ConsumptionResponse, 0, len(res.Consumptions))
	for _, c := range res.Consumptions {
		consumptions = append(consumptions, ToConsumptionResponse(c))
	}
	return ConsumptionResultResponse{
		EmployeeID:   res.EmployeeID,
		Date:         res.Date.Format("2006-01-02"),
		Requested:    res.Requested,
		Consumptions: consumptions,
	}
}

// SnapshotResponse is the JSON shape of a balance snapshot.
type SnapshotResponse struct {
	EmployeeID     string                 `json:"employee_id"`
	AsOf           string                 `json:"as_of"`
	Grants         []GrantBalanceResponse `json:"grants"`
	TotalGranted   decimal.Decimal        `json:"total_granted"`
	TotalUsed      decimal.Decimal        `json:"total_used"`
	TotalRemaining decimal.Decimal        `json:"total_remaining"`
	TotalExpired   decimal.Decimal        `json:"total_expired"`
}

type GrantBalanceResponse struct {
	GrantID    string          `json:"grant_id"`
	FiscalYear int             `json:"fiscal_year"`
	GrantDate  string          `json:"grant_date"`
	ExpiryDate string          `json:"expiry_date"`
	Granted    decimal.Decimal `json:"granted"`
	Used       decimal.Decimal `json:"used"`
	Remaining  decimal.Decimal `json:"remaining"`
	Expired    decimal.Decimal `json:"expired"`
}

// ToSnapshotResponse maps a balance snapshot to its API representation.
func ToSnapshotResponse(s BalanceSnapshot) SnapshotResponse {
	grants := make([]GrantBalanceResponse, 0, len(s.Grants))
	for _, g := range s.Grants {
		grants = append(grants, GrantBalanceResponse{
			GrantID:    g.GrantID,
			FiscalYear: g.FiscalYear,
			GrantDate:  g.GrantDate.Format("2006-01-02"),
			ExpiryDate: g.ExpiryDate.Format("2006-01-02"),
			Granted:    g.Granted,
			Used:       g.Used,
			Remaining:  g.Remaining,
			Expired:    g.Expired,
		})
	}
	return SnapshotResponse{
		EmployeeID:     s.EmployeeID,
		AsOf:           s.AsOf.Format("2006-01-02"),
		Grants:         grants,
		TotalGranted:   s.TotalGranted,
		TotalUsed:      s.TotalUsed,
		TotalRemaining: s.TotalRemaining,
		TotalExpired:   s.TotalExpired,
	}
}

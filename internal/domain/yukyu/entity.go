package yukyu

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidityYears is the legally mandated validity of a paid-leave grant.
const ValidityYears = 2

// Grant is one fiscal year's paid-leave entitlement for an employee. The
// entitlement schedule itself (days per seniority tier) comes from the HR
// policy collaborator; this engine only records and consumes grants.
type Grant struct {
	ID         string
	EmployeeID string
	FiscalYear int
	GrantDate  time.Time
	Days       decimal.Decimal
	ExpiryDate time.Time
	CreatedAt  time.Time
}

// ExpiredAt reports whether the grant is past its validity on the given
// date. Expired remainder is reported in snapshots but never consumable.
func (g Grant) ExpiredAt(asOf time.Time) bool {
	return asOf.After(g.ExpiryDate)
}

// Consumption draws days from a specific grant. Immutable once created;
// a reversal is a new compensating record with negative days, never an edit.
type Consumption struct {
	ID         string
	GrantID    string
	EmployeeID string
	Date       time.Time
	Days       decimal.Decimal

	// ReversesID links a compensating record to the consumption it undoes.
	ReversesID *string

	CreatedAt time.Time
}

// GrantBalance is one grant's position inside a balance snapshot.
type GrantBalance struct {
	GrantID    string          `json:"grant_id"`
	FiscalYear int             `json:"fiscal_year"`
	GrantDate  time.Time       `json:"grant_date"`
	ExpiryDate time.Time       `json:"expiry_date"`
	Granted    decimal.Decimal `json:"granted"`
	Used       decimal.Decimal `json:"used"`
	Remaining  decimal.Decimal `json:"remaining"`
	Expired    decimal.Decimal `json:"expired"`
}

// BalanceSnapshot is the derived balance view as of a date. It is always
// recomputed by replaying grants and consumptions; no stored running counter
// is ever the source of truth.
type BalanceSnapshot struct {
	EmployeeID     string          `json:"employee_id"`
	AsOf           time.Time       `json:"as_of"`
	Grants         []GrantBalance  `json:"grants"`
	TotalGranted   decimal.Decimal `json:"total_granted"`
	TotalUsed      decimal.Decimal `json:"total_used"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	TotalExpired   decimal.Decimal `json:"total_expired"`
}

// ConsumptionResult reports how a consumption request was allocated across
// grants.
type ConsumptionResult struct {
	EmployeeID   string
	Date         time.Time
	Requested    decimal.Decimal
	Consumptions []Consumption
}

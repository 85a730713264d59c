package employee

import (
	"time"
)

// Wage is the read model the wage/contract collaborator supplies: the base
// hourly rate (jikyu) and fixed allowance entitlements for an employee at a
// workplace, effective-dated like workplace config.
type Wage struct {
	ID          string
	EmployeeID  string
	WorkplaceID string

	// HourlyRate is the base hourly wage in yen.
	HourlyRate int64

	// Fixed monthly allowances in yen.
	TransportAllowance int64
	HousingAllowance   int64
	MealAllowance      int64

	EffectiveFrom time.Time
	CreatedAt     time.Time
}

// AllowanceTotal sums the fixed allowance entitlements.
func (w Wage) AllowanceTotal() int64 {
	return w.TransportAllowance + w.HousingAllowance + w.MealAllowance
}

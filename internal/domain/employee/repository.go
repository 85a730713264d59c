package employee

import (
	"context"
	"time"
)

// WageRepository reads the wage records the wage/contract collaborator
// maintains. This engine never writes them.
type WageRepository interface {
	// GetEffective returns the wage record effective on the given date.
	GetEffective(ctx context.Context, employeeID string, date time.Time) (Wage, error)

	// ListEmployeeIDs returns the employees with a wage record at a
	// workplace effective during the period.
	ListEmployeeIDs(ctx context.Context, workplaceID string, from, to time.Time) ([]string, error)
}

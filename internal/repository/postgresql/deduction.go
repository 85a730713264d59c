package postgresql

import (
	"context"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/payroll"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/database"
)

type deductionSourceImpl struct {
	db *database.DB
}

// NewDeductionSource reads the externally maintained deduction amounts
// (taxes, social insurance, apartment rent). The tax and billing
// collaborators write this table; the engine only reads it.
func NewDeductionSource(db *database.DB) payroll.DeductionSource {
	return &deductionSourceImpl{db: db}
}

// DeductionsFor implements payroll.DeductionSource.
func (r *deductionSourceImpl) DeductionsFor(ctx context.Context, employeeID string, year, month int) ([]payroll.DeductionInput, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, kind, label, amount
		FROM deduction_inputs
		WHERE employee_id = $1 AND period_year = $2 AND period_month = $3
		ORDER BY kind, label
	`

	rows, err := q.Query(ctx, query, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inputs := make([]payroll.DeductionInput, 0)
	for rows.Next() {
		var input payroll.DeductionInput
		if err := rows.Scan(&input.EmployeeID, &input.Kind, &input.Label, &input.Amount); err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}

	return inputs, rows.Err()
}

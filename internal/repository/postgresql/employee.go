package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/employee"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type wageRepositoryImpl struct {
	db *database.DB
}

func NewWageRepository(db *database.DB) employee.WageRepository {
	return &wageRepositoryImpl{db: db}
}

// GetEffective implements employee.WageRepository.
func (r *wageRepositoryImpl) GetEffective(ctx context.Context, employeeID string, date time.Time) (employee.Wage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, workplace_id, hourly_rate,
			   transport_allowance, housing_allowance, meal_allowance,
			   effective_from, created_at
		FROM employee_wages
		WHERE employee_id = $1 AND effective_from <= $2
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var wage employee.Wage
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&wage.ID, &wage.EmployeeID, &wage.WorkplaceID, &wage.HourlyRate,
		&wage.TransportAllowance, &wage.HousingAllowance, &wage.MealAllowance,
		&wage.EffectiveFrom, &wage.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Wage{}, employee.ErrWageNotFound
		}
		return employee.Wage{}, err
	}

	return wage, nil
}

// ListEmployeeIDs implements employee.WageRepository.
func (r *wageRepositoryImpl) ListEmployeeIDs(ctx context.Context, workplaceID string, from, to time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id
		FROM employee_wages
		WHERE workplace_id = $1 AND effective_from <= $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, workplaceID, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

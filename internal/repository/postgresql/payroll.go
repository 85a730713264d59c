package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/payroll"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type payrollRunRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.RunRepository {
	return &payrollRunRepositoryImpl{db: db}
}

// CreateRun implements payroll.RunRepository. A partial unique index on
// (workplace_id, period_year, period_month) over non-cancelled runs keeps
// one live run per period.
func (r *payrollRunRepositoryImpl) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (
			id, workplace_id, period_year, period_month, status, version,
			incomplete, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		run.ID, run.WorkplaceID, run.PeriodYear, run.PeriodMonth,
		run.Status, run.Version, run.Incomplete, run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Run{}, payroll.ErrRunAlreadyExists
		}
		return payroll.Run{}, err
	}

	return run, nil
}

// GetRun implements payroll.RunRepository.
func (r *payrollRunRepositoryImpl) GetRun(ctx context.Context, id string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, workplace_id, period_year, period_month, status, version,
			   incomplete, approved_by, approved_at, paid_by, paid_at,
			   cancelled_at, created_at, updated_at
		FROM payroll_runs
		WHERE id = $1
	`

	run, err := scanRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, err
	}

	items, err := r.listLineItems(ctx, run.ID)
	if err != nil {
		return payroll.Run{}, err
	}
	run.LineItems = items

	return run, nil
}

// GetRunByPeriod implements payroll.RunRepository: the non-cancelled run for
// the period, if one exists.
func (r *payrollRunRepositoryImpl) GetRunByPeriod(ctx context.Context, workplaceID string, year, month int) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, workplace_id, period_year, period_month, status, version,
			   incomplete, approved_by, approved_at, paid_by, paid_at,
			   cancelled_at, created_at, updated_at
		FROM payroll_runs
		WHERE workplace_id = $1 AND period_year = $2 AND period_month = $3
		  AND status <> 'cancelled'
		LIMIT 1
	`

	run, err := scanRun(q.QueryRow(ctx, query, workplaceID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, err
	}

	return run, nil
}

// ListRuns implements payroll.RunRepository, without line items.
func (r *payrollRunRepositoryImpl) ListRuns(ctx context.Context, workplaceID string) ([]payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, workplace_id, period_year, period_month, status, version,
			   incomplete, approved_by, approved_at, paid_by, paid_at,
			   cancelled_at, created_at, updated_at
		FROM payroll_runs
		WHERE workplace_id = $1
		ORDER BY period_year DESC, period_month DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]payroll.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// ReplaceLineItems implements payroll.RunRepository. The version bump and
// the item swap commit together or not at all.
func (r *payrollRunRepositoryImpl) ReplaceLineItems(ctx context.Context, runID string, fromVersion int, items []payroll.LineItem, incomplete bool) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE payroll_runs
			SET version = $1, incomplete = $2, updated_at = $3
			WHERE id = $4 AND version = $5 AND status = 'draft'
		`, fromVersion+1, incomplete, time.Now().UTC(), runID, fromVersion)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return payroll.ErrConcurrentModification
		}

		if _, err := tx.Exec(ctx, `DELETE FROM payroll_line_items WHERE run_id = $1`, runID); err != nil {
			return err
		}

		for _, item := range items {
			if _, err := tx.Exec(ctx, `
				INSERT INTO payroll_line_items (
					id, run_id, employee_id, period_year, period_month, hourly_rate,
					regular_hours, overtime_hours, night_hours, holiday_hours,
					regular_amount, overtime_amount, night_premium, holiday_premium,
					leave_hours, leave_amount, allowance_total, attendance_bonus,
					gross, deductions, deduction_total, net, warnings
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
						$14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
			`,
				item.ID, item.RunID, item.EmployeeID, item.PeriodYear, item.PeriodMonth,
				item.HourlyRate,
				item.RegularHours, item.OvertimeHours, item.NightHours, item.HolidayHours,
				item.RegularAmount, item.OvertimeAmount, item.NightPremium, item.HolidayPremium,
				item.LeaveHours, item.LeaveAmount, item.AllowanceTotal, item.AttendanceBonus,
				item.Gross, item.Deductions, item.DeductionTotal, item.Net, item.Warnings,
			); err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateStatus implements payroll.RunRepository.
func (r *payrollRunRepositoryImpl) UpdateStatus(ctx context.Context, run payroll.Run, fromVersion int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_runs
		SET status = $1, version = $2, approved_by = $3, approved_at = $4,
			paid_by = $5, paid_at = $6, cancelled_at = $7, updated_at = $8
		WHERE id = $9 AND version = $10
	`,
		run.Status, run.Version, run.ApprovedBy, run.ApprovedAt,
		run.PaidBy, run.PaidAt, run.CancelledAt, run.UpdatedAt,
		run.ID, fromVersion,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrConcurrentModification
	}

	return nil
}

func (r *payrollRunRepositoryImpl) listLineItems(ctx context.Context, runID string) ([]payroll.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, run_id, employee_id, period_year, period_month, hourly_rate,
			   regular_hours, overtime_hours, night_hours, holiday_hours,
			   regular_amount, overtime_amount, night_premium, holiday_premium,
			   leave_hours, leave_amount, allowance_total, attendance_bonus,
			   gross, deductions, deduction_total, net, warnings
		FROM payroll_line_items
		WHERE run_id = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]payroll.LineItem, 0)
	for rows.Next() {
		var item payroll.LineItem
		if err := rows.Scan(
			&item.ID, &item.RunID, &item.EmployeeID, &item.PeriodYear, &item.PeriodMonth,
			&item.HourlyRate,
			&item.RegularHours, &item.OvertimeHours, &item.NightHours, &item.HolidayHours,
			&item.RegularAmount, &item.OvertimeAmount, &item.NightPremium, &item.HolidayPremium,
			&item.LeaveHours, &item.LeaveAmount, &item.AllowanceTotal, &item.AttendanceBonus,
			&item.Gross, &item.Deductions, &item.DeductionTotal, &item.Net, &item.Warnings,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	err := row.Scan(
		&run.ID, &run.WorkplaceID, &run.PeriodYear, &run.PeriodMonth,
		&run.Status, &run.Version, &run.Incomplete,
		&run.ApprovedBy, &run.ApprovedAt, &run.PaidBy, &run.PaidAt,
		&run.CancelledAt, &run.CreatedAt, &run.UpdatedAt,
	)
	return run, err
}

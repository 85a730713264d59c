package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/yukyu"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type yukyuRepositoryImpl struct {
	db *database.DB
}

func NewYukyuRepository(db *database.DB) yukyu.Repository {
	return &yukyuRepositoryImpl{db: db}
}

// CreateGrant implements yukyu.Repository.
func (r *yukyuRepositoryImpl) CreateGrant(ctx context.Context, grant yukyu.Grant) (yukyu.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO yukyu_grants (
			id, employee_id, fiscal_year, grant_date, days, expiry_date, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		grant.ID, grant.EmployeeID, grant.FiscalYear, grant.GrantDate,
		grant.Days, grant.ExpiryDate, grant.CreatedAt,
	)
	if err != nil {
		return yukyu.Grant{}, err
	}

	return grant, nil
}

// ListGrants implements yukyu.Repository.
func (r *yukyuRepositoryImpl) ListGrants(ctx context.Context, employeeID string) ([]yukyu.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, fiscal_year, grant_date, days, expiry_date, created_at
		FROM yukyu_grants
		WHERE employee_id = $1
		ORDER BY grant_date, fiscal_year
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grants := make([]yukyu.Grant, 0)
	for rows.Next() {
		var grant yukyu.Grant
		if err := rows.Scan(
			&grant.ID, &grant.EmployeeID, &grant.FiscalYear, &grant.GrantDate,
			&grant.Days, &grant.ExpiryDate, &grant.CreatedAt,
		); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}

	return grants, rows.Err()
}

// ListGrantsExpiringBy implements yukyu.Repository.
func (r *yukyuRepositoryImpl) ListGrantsExpiringBy(ctx context.Context, by time.Time) ([]yukyu.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, fiscal_year, grant_date, days, expiry_date, created_at
		FROM yukyu_grants
		WHERE expiry_date > NOW() AND expiry_date <= $1
		ORDER BY expiry_date, employee_id
	`

	rows, err := q.Query(ctx, query, by)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grants := make([]yukyu.Grant, 0)
	for rows.Next() {
		var grant yukyu.Grant
		if err := rows.Scan(
			&grant.ID, &grant.EmployeeID, &grant.FiscalYear, &grant.GrantDate,
			&grant.Days, &grant.ExpiryDate, &grant.CreatedAt,
		); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}

	return grants, rows.Err()
}

// GetConsumption implements yukyu.Repository.
func (r *yukyuRepositoryImpl) GetConsumption(ctx context.Context, id string) (yukyu.Consumption, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, grant_id, employee_id, consumed_on, days, reverses_id, created_at
		FROM yukyu_consumptions
		WHERE id = $1
	`

	var consumption yukyu.Consumption
	err := q.QueryRow(ctx, query, id).Scan(
		&consumption.ID, &consumption.GrantID, &consumption.EmployeeID,
		&consumption.Date, &consumption.Days, &consumption.ReversesID,
		&consumption.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return yukyu.Consumption{}, yukyu.ErrConsumptionNotFound
		}
		return yukyu.Consumption{}, err
	}

	return consumption, nil
}

// CreateConsumptions implements yukyu.Repository: the batch lands atomically.
func (r *yukyuRepositoryImpl) CreateConsumptions(ctx context.Context, consumptions []yukyu.Consumption) ([]yukyu.Consumption, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		for _, c := range consumptions {
			if _, err := tx.Exec(ctx, `
				INSERT INTO yukyu_consumptions (
					id, grant_id, employee_id, consumed_on, days, reverses_id, created_at
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, c.ID, c.GrantID, c.EmployeeID, c.Date, c.Days, c.ReversesID, c.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return consumptions, nil
}

// ListConsumptions implements yukyu.Repository.
func (r *yukyuRepositoryImpl) ListConsumptions(ctx context.Context, employeeID string) ([]yukyu.Consumption, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, grant_id, employee_id, consumed_on, days, reverses_id, created_at
		FROM yukyu_consumptions
		WHERE employee_id = $1
		ORDER BY consumed_on, created_at
	`

	return r.queryConsumptions(ctx, q, query, employeeID)
}

// ListConsumptionsInRange implements yukyu.Repository.
func (r *yukyuRepositoryImpl) ListConsumptionsInRange(ctx context.Context, employeeID string, from, to time.Time) ([]yukyu.Consumption, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, grant_id, employee_id, consumed_on, days, reverses_id, created_at
		FROM yukyu_consumptions
		WHERE employee_id = $1 AND consumed_on BETWEEN $2 AND $3
		ORDER BY consumed_on, created_at
	`

	return r.queryConsumptions(ctx, q, query, employeeID, from, to)
}

// HasReversal implements yukyu.Repository.
func (r *yukyuRepositoryImpl) HasReversal(ctx context.Context, consumptionID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM yukyu_consumptions WHERE reverses_id = $1)`,
		consumptionID,
	).Scan(&exists)
	return exists, err
}

func (r *yukyuRepositoryImpl) queryConsumptions(ctx context.Context, q database.Querier, query string, args ...any) ([]yukyu.Consumption, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	consumptions := make([]yukyu.Consumption, 0)
	for rows.Next() {
		var c yukyu.Consumption
		if err := rows.Scan(
			&c.ID, &c.GrantID, &c.EmployeeID, &c.Date, &c.Days, &c.ReversesID, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		consumptions = append(consumptions, c)
	}

	return consumptions, rows.Err()
}

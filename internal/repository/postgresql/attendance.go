package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/attendance"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.Repository. A partial unique index on
// corrects_record_id enforces at most one correction per record.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, workplace_id, work_date,
			clock_in, clock_out, break_minutes, corrects_record_id, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		record.ID, record.EmployeeID, record.WorkplaceID, record.WorkDate,
		record.ClockIn, record.ClockOut, record.BreakMinutes,
		record.CorrectsRecordID, record.SubmittedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "attendance_records_corrects_record_id_key" {
				return attendance.Record{}, attendance.ErrRecordSuperseded
			}
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
		return attendance.Record{}, err
	}

	return record, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, workplace_id, work_date,
			   clock_in, clock_out, break_minutes, corrects_record_id, submitted_at
		FROM attendance_records
		WHERE id = $1
	`

	var record attendance.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&record.ID, &record.EmployeeID, &record.WorkplaceID, &record.WorkDate,
		&record.ClockIn, &record.ClockOut, &record.BreakMinutes,
		&record.CorrectsRecordID, &record.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}

	return record, nil
}

// ListEffectiveForPeriod implements attendance.Repository: records that have
// been superseded by a correction are excluded.
func (r *attendanceRepositoryImpl) ListEffectiveForPeriod(ctx context.Context, employeeID, workplaceID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ar.id, ar.employee_id, ar.workplace_id, ar.work_date,
			   ar.clock_in, ar.clock_out, ar.break_minutes, ar.corrects_record_id, ar.submitted_at
		FROM attendance_records ar
		WHERE ar.employee_id = $1
		  AND ar.workplace_id = $2
		  AND ar.work_date BETWEEN $3 AND $4
		  AND NOT EXISTS (
			SELECT 1 FROM attendance_records c WHERE c.corrects_record_id = ar.id
		  )
		ORDER BY ar.work_date
	`

	rows, err := q.Query(ctx, query, employeeID, workplaceID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var record attendance.Record
		if err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.WorkplaceID, &record.WorkDate,
			&record.ClockIn, &record.ClockOut, &record.BreakMinutes,
			&record.CorrectsRecordID, &record.SubmittedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// HasCorrection implements attendance.Repository.
func (r *attendanceRepositoryImpl) HasCorrection(ctx context.Context, recordID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendance_records WHERE corrects_record_id = $1)`,
		recordID,
	).Scan(&exists)
	return exists, err
}

package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type workplaceConfigRepositoryImpl struct {
	db *database.DB
}

func NewWorkplaceConfigRepository(db *database.DB) workplace.ConfigRepository {
	return &workplaceConfigRepositoryImpl{db: db}
}

// Create implements workplace.ConfigRepository. The version number is
// assigned here, one past the workplace's current maximum.
func (r *workplaceConfigRepositoryImpl) Create(ctx context.Context, config workplace.Config) (workplace.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workplace_configs (
			id, workplace_id, version, effective_from, standard_daily_minutes,
			overtime_multiplier, night_multiplier, holiday_multiplier,
			night_window_start, night_window_end,
			shifts, holidays, bonuses, penalties, created_at
		)
		VALUES (
			$1, $2,
			(SELECT COALESCE(MAX(version), 0) + 1 FROM workplace_configs WHERE workplace_id = $2),
			$3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		RETURNING version
	`

	err := q.QueryRow(ctx, query,
		config.ID, config.WorkplaceID, config.EffectiveFrom, config.StandardDailyMinutes,
		config.OvertimeMultiplier, config.NightMultiplier, config.HolidayMultiplier,
		config.NightWindowStart, config.NightWindowEnd,
		config.Shifts, config.Holidays, config.Bonuses, config.Penalty, config.CreatedAt,
	).Scan(&config.Version)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return workplace.Config{}, workplace.ErrVersionExists
		}
		return workplace.Config{}, err
	}

	return config, nil
}

// GetEffective implements workplace.ConfigRepository.
func (r *workplaceConfigRepositoryImpl) GetEffective(ctx context.Context, workplaceID string, date time.Time) (workplace.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, workplace_id, version, effective_from, standard_daily_minutes,
			   overtime_multiplier, night_multiplier, holiday_multiplier,
			   night_window_start, night_window_end,
			   shifts, holidays, bonuses, penalties, created_at
		FROM workplace_configs
		WHERE workplace_id = $1 AND effective_from <= $2
		ORDER BY effective_from DESC, version DESC
		LIMIT 1
	`

	config, err := scanConfig(q.QueryRow(ctx, query, workplaceID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workplace.Config{}, workplace.ErrNoEffectiveConfig
		}
		return workplace.Config{}, err
	}
	return config, nil
}

// ListVersions implements workplace.ConfigRepository.
func (r *workplaceConfigRepositoryImpl) ListVersions(ctx context.Context, workplaceID string) ([]workplace.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, workplace_id, version, effective_from, standard_daily_minutes,
			   overtime_multiplier, night_multiplier, holiday_multiplier,
			   night_window_start, night_window_end,
			   shifts, holidays, bonuses, penalties, created_at
		FROM workplace_configs
		WHERE workplace_id = $1
		ORDER BY version DESC
	`

	rows, err := q.Query(ctx, query, workplaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configs := make([]workplace.Config, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, config)
	}

	return configs, rows.Err()
}

func scanConfig(row pgx.Row) (workplace.Config, error) {
	var config workplace.Config
	err := row.Scan(
		&config.ID, &config.WorkplaceID, &config.Version, &config.EffectiveFrom,
		&config.StandardDailyMinutes,
		&config.OvertimeMultiplier, &config.NightMultiplier, &config.HolidayMultiplier,
		&config.NightWindowStart, &config.NightWindowEnd,
		&config.Shifts, &config.Holidays, &config.Bonuses, &config.Penalty,
		&config.CreatedAt,
	)
	return config, err
}

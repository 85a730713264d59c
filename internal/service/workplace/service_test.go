package workplace

import (
	"context"
	"testing"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfigRepo struct {
	configs []workplace.Config
}

func (f *fakeConfigRepo) Create(ctx context.Context, config workplace.Config) (workplace.Config, error) {
	config.Version = len(f.configs) + 1
	f.configs = append(f.configs, config)
	return config, nil
}

func (f *fakeConfigRepo) GetEffective(ctx context.Context, workplaceID string, date time.Time) (workplace.Config, error) {
	var found *workplace.Config
	for i := range f.configs {
		c := &f.configs[i]
		if c.WorkplaceID == workplaceID && !c.EffectiveFrom.After(date) {
			found = c
		}
	}
	if found == nil {
		return workplace.Config{}, workplace.ErrNoEffectiveConfig
	}
	return *found, nil
}

func (f *fakeConfigRepo) ListVersions(ctx context.Context, workplaceID string) ([]workplace.Config, error) {
	var out []workplace.Config
	for _, c := range f.configs {
		if c.WorkplaceID == workplaceID {
			out = append(out, c)
		}
	}
	return out, nil
}

func validRequest() workplace.CreateConfigRequest {
	return workplace.CreateConfigRequest{
		WorkplaceID:          "wp-1",
		EffectiveFrom:        "2025-04-01",
		StandardDailyMinutes: 480,
		OvertimeMultiplier:   decimal.RequireFromString("1.25"),
		NightMultiplier:      decimal.RequireFromString("1.25"),
		HolidayMultiplier:    decimal.RequireFromString("1.35"),
		NightWindowStart:     "22:00",
		NightWindowEnd:       "05:00",
	}
}

func TestCreateVersionAssignsIDAndVersion(t *testing.T) {
	service := NewConfigService(&fakeConfigRepo{})

	created, err := service.CreateVersion(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, "2025-04-01", created.EffectiveFrom)
}

func TestCreateVersionRejectsInvalidRequest(t *testing.T) {
	service := NewConfigService(&fakeConfigRepo{})

	req := validRequest()
	req.OvertimeMultiplier = decimal.RequireFromString("0.9")

	_, err := service.CreateVersion(context.Background(), req)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestCreateDefaultsSeedsStatutoryBaseline(t *testing.T) {
	service := NewConfigService(&fakeConfigRepo{})

	created, err := service.CreateDefaults(context.Background(), "wp-1", "2025-04-01")
	require.NoError(t, err)

	assert.Equal(t, 480, created.StandardDailyMinutes)
	assert.True(t, created.OvertimeMultiplier.Equal(decimal.RequireFromString("1.25")))
	assert.True(t, created.HolidayMultiplier.Equal(decimal.RequireFromString("1.35")))
	assert.Equal(t, "22:00", created.NightWindowStart)
	assert.Equal(t, "05:00", created.NightWindowEnd)
	assert.Equal(t, []int{0}, created.HolidayWeekdays)
	assert.Contains(t, created.HolidayDates, "2025-05-05")
	assert.Contains(t, created.HolidayDates, "2026-01-01")
}

func TestCreateDefaultsRejectsBadDate(t *testing.T) {
	service := NewConfigService(&fakeConfigRepo{})

	_, err := service.CreateDefaults(context.Background(), "wp-1", "april first")
	require.Error(t, err)
}

func TestGetEffectivePicksLatestVersionNotAfterDate(t *testing.T) {
	repo := &fakeConfigRepo{}
	service := NewConfigService(repo)

	first := validRequest()
	_, err := service.CreateVersion(context.Background(), first)
	require.NoError(t, err)

	second := validRequest()
	second.EffectiveFrom = "2025-07-01"
	second.StandardDailyMinutes = 450
	_, err = service.CreateVersion(context.Background(), second)
	require.NoError(t, err)

	effective, err := service.GetEffective(context.Background(), "wp-1", "2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, 480, effective.StandardDailyMinutes)

	effective, err = service.GetEffective(context.Background(), "wp-1", "2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, 450, effective.StandardDailyMinutes)
}

func TestGetEffectiveRejectsMalformedDate(t *testing.T) {
	service := NewConfigService(&fakeConfigRepo{})

	_, err := service.GetEffective(context.Background(), "wp-1", "2025/06/30")
	assert.ErrorIs(t, err, workplace.ErrInvalidConfig)
}

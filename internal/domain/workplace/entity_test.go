package workplace

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(version int, effectiveFrom string) Config {
	ef, _ := time.Parse("2006-01-02", effectiveFrom)
	return Config{
		ID:                   "cfg",
		WorkplaceID:          "wp-1",
		Version:              version,
		EffectiveFrom:        ef,
		StandardDailyMinutes: 480,
		OvertimeMultiplier:   decimal.NewFromFloat(1.25),
		NightMultiplier:      decimal.NewFromFloat(1.25),
		HolidayMultiplier:    decimal.NewFromFloat(1.35),
		NightWindowStart:     "22:00",
		NightWindowEnd:       "05:00",
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig(1, "2025-01-01").Validate())

	t.Run("multiplier below one", func(t *testing.T) {
		config := validConfig(1, "2025-01-01")
		config.OvertimeMultiplier = decimal.NewFromFloat(0.8)
		assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
	})

	t.Run("bad night window", func(t *testing.T) {
		config := validConfig(1, "2025-01-01")
		config.NightWindowEnd = "24:30"
		assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
	})

	t.Run("zero standard day", func(t *testing.T) {
		config := validConfig(1, "2025-01-01")
		config.StandardDailyMinutes = 0
		assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
	})
}

func TestResolverPinsVersionByDate(t *testing.T) {
	resolver := NewResolver([]Config{
		validConfig(2, "2025-06-01"),
		validConfig(1, "2025-01-01"),
	})

	before, err := resolver.Effective(time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, before.Version)

	onBoundary, err := resolver.Effective(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, onBoundary.Version)

	after, err := resolver.Effective(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, after.Version)
}

func TestResolverNoEffectiveConfig(t *testing.T) {
	resolver := NewResolver([]Config{validConfig(1, "2025-01-01")})

	_, err := resolver.Effective(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoEffectiveConfig)
}

func TestHolidayCalendar(t *testing.T) {
	calendar := HolidayCalendar{
		Dates:    []string{"2025-01-01"},
		Weekdays: []time.Weekday{time.Sunday},
	}

	assert.True(t, calendar.IsHoliday(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, calendar.IsHoliday(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC))) // a Sunday
	assert.False(t, calendar.IsHoliday(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
}

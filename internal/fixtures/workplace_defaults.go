package fixtures

import (
	"strconv"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
	"github.com/shopspring/decimal"
)

// Statutory baseline under the Labor Standards Act: 8-hour standard day,
// 25% overtime and late-night premiums, 35% statutory-holiday premium,
// late-night window 22:00 to 05:00.
var (
	DefaultStandardDailyMinutes = 480
	DefaultOvertimeMultiplier   = decimal.RequireFromString("1.25")
	DefaultNightMultiplier      = decimal.RequireFromString("1.25")
	DefaultHolidayMultiplier    = decimal.RequireFromString("1.35")
	DefaultNightWindowStart     = "22:00"
	DefaultNightWindowEnd       = "05:00"
)

// nationalHolidays lists Japanese public holidays (observed dates) by year,
// as MM-DD. Equinox days move year to year, so each year is spelled out.
var nationalHolidays = map[int][]string{
	2025: {
		"01-01", "01-13", "02-11", "02-23", "02-24", "03-20", "04-29",
		"05-03", "05-04", "05-05", "05-06", "07-21", "08-11", "09-15",
		"09-23", "10-13", "11-03", "11-23", "11-24",
	},
	2026: {
		"01-01", "01-12", "02-11", "02-23", "03-20", "04-29",
		"05-03", "05-04", "05-05", "05-06", "07-20", "08-11", "09-21",
		"09-22", "09-23", "10-12", "11-03", "11-23",
	},
}

// NationalHolidays returns the Japanese public holidays for a year as
// YYYY-MM-DD dates, or nil for years outside the seeded range.
func NationalHolidays(year int) []string {
	days, ok := nationalHolidays[year]
	if !ok {
		return nil
	}
	dates := make([]string, 0, len(days))
	for _, d := range days {
		dates = append(dates, strconv.Itoa(year)+"-"+d)
	}
	return dates
}

// DefaultConfigRequest builds a config version request carrying the
// statutory baseline for a workplace: legal minimum premiums, Sundays as
// the weekly rest day, and national holidays seeded for the effective
// year and the one after. Bonuses and penalties start at zero.
func DefaultConfigRequest(workplaceID, effectiveFrom string) workplace.CreateConfigRequest {
	var holidays []string
	if effective, err := time.Parse("2006-01-02", effectiveFrom); err == nil {
		holidays = append(holidays, NationalHolidays(effective.Year())...)
		holidays = append(holidays, NationalHolidays(effective.Year()+1)...)
	}

	return workplace.CreateConfigRequest{
		WorkplaceID:          workplaceID,
		EffectiveFrom:        effectiveFrom,
		StandardDailyMinutes: DefaultStandardDailyMinutes,
		OvertimeMultiplier:   DefaultOvertimeMultiplier,
		NightMultiplier:      DefaultNightMultiplier,
		HolidayMultiplier:    DefaultHolidayMultiplier,
		NightWindowStart:     DefaultNightWindowStart,
		NightWindowEnd:       DefaultNightWindowEnd,
		HolidayDates:         holidays,
		HolidayWeekdays:      []int{int(time.Sunday)},
	}
}

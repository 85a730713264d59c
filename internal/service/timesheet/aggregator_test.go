package timesheet

import (
	"testing"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/attendance"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/timesheet"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver struct {
	config workplace.Config
	err    error
}

func (r staticResolver) Effective(date time.Time) (workplace.Config, error) {
	if r.err != nil {
		return workplace.Config{}, r.err
	}
	return r.config, nil
}

func testConfig() workplace.Config {
	return workplace.Config{
		ID:                   "cfg-1",
		WorkplaceID:          "wp-1",
		Version:              1,
		EffectiveFrom:        date(2025, 1, 1),
		StandardDailyMinutes: 480,
		OvertimeMultiplier:   decimal.NewFromFloat(1.25),
		NightMultiplier:      decimal.NewFromFloat(1.25),
		HolidayMultiplier:    decimal.NewFromFloat(1.35),
		NightWindowStart:     "22:00",
		NightWindowEnd:       "05:00",
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(day time.Time, inHour, inMin, spanMinutes, breakMinutes int) attendance.Record {
	clockIn := time.Date(day.Year(), day.Month(), day.Day(), inHour, inMin, 0, 0, time.UTC)
	return attendance.Record{
		ID:           "rec-" + day.Format("20060102"),
		EmployeeID:   "emp-1",
		WorkplaceID:  "wp-1",
		WorkDate:     day,
		ClockIn:      clockIn,
		ClockOut:     clockIn.Add(time.Duration(spanMinutes) * time.Minute),
		BreakMinutes: breakMinutes,
	}
}

func TestAggregateDayShift(t *testing.T) {
	agg := NewAggregator()
	day := date(2025, 6, 2)
	period := timesheet.Period{From: day, To: day}

	// 09:00-18:00 with a one hour break: 8h worked, no overtime, no night.
	records := []attendance.Record{record(day, 9, 0, 540, 60)}

	buckets, warnings, err := agg.Aggregate(records, staticResolver{config: testConfig()}, period)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Empty(t, warnings)

	b := buckets[0]
	assert.True(t, b.Regular.Equal(decimal.NewFromInt(8)), "regular = %s", b.Regular)
	assert.True(t, b.Overtime.IsZero(), "overtime = %s", b.Overtime)
	assert.True(t, b.Night.IsZero(), "night = %s", b.Night)
	assert.True(t, b.Holiday.IsZero(), "holiday = %s", b.Holiday)
}

func TestAggregateOvertimePartition(t *testing.T) {
	agg := NewAggregator()
	day := date(2025, 6, 2)
	period := timesheet.Period{From: day, To: day}

	// 09:00-20:30 with 45 minutes break: 10h45m worked, 2h45m over the
	// 8 hour standard. Regular + overtime must equal worked exactly.
	records := []attendance.Record{record(day, 9, 0, 690, 45)}

	buckets, _, err := agg.Aggregate(records, staticResolver{config: testConfig()}, period)
	require.NoError(t, err)
	require.Len(t, buckets, 1)

	b := buckets[0]
	worked := decimal.NewFromInt(645).Div(decimal.NewFromInt(60))
	assert.True(t, b.Worked().Equal(worked), "worked = %s", b.Worked())
	assert.True(t, b.Overtime.Equal(decimal.NewFromInt(165).Div(decimal.NewFromInt(60))), "overtime = %s", b.Overtime)
	assert.True(t, b.Regular.Add(b.Overtime).Equal(worked))
}

func TestAggregateNightWrapsMidnight(t *testing.T) {
	agg := NewAggregator()
	day := date(2025, 6, 2)
	period := timesheet.Period{From: day, To: day}

	// 21:00-06:00 next day, no break, window 22:00-05:00: the overlap is the
	// full wrapped window, 7 hours.
	records := []attendance.Record{record(day, 21, 0, 540, 0)}

	buckets, _, err := agg.Aggregate(records, staticResolver{config: testConfig()}, period)
	require.NoError(t, err)
	require.Len(t, buckets, 1)

	b := buckets[0]
	assert.True(t, b.Night.Equal(decimal.NewFromInt(7)), "night = %s", b.Night)
	assert.True(t, b.Worked().Equal(decimal.NewFromInt(9)), "worked = %s", b.Worked())
}

func TestAggregateEarlyMorningNight(t *testing.T) {
	agg := NewAggregator()
	day := date(2025, 6, 2)
	period := timesheet.Period{From: day, To: day}

	// 04:00-09:00 catches the tail of the previous night's window: one hour
	// before 05:00.
	records := []attendance.Record{record(day, 4, 0, 300, 0)}

	buckets, _, err := agg.Aggregate(records, staticResolver{config: testConfig()}, period)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].Night.Equal(decimal.NewFromInt(1)), "night = %s", buckets[0].Night)
}

func TestAggregateBreakComesOutOfNonNightFirst(t *testing.T) {
	agg := NewAggregator()
	day := date(2025, 6, 2)
	period := timesheet.Period{From: day, To: day}

	// 20:00-24:00 with a one hour break: 2 hours fall in the window, the
	// break fits entirely in the 2 non-night hours, so night stays at 2.
	records := []attendance.Record{record(day, 20, 0, 240, 60)}

	buckets, _, err := agg.Aggregate(records, staticResolver{config: testConfig()}, period)
	require.NoError(t, err)
	require.Len(t, buckets, 1)

	b := buckets[0]
	assert.True(t, b.Night.Equal(decimal.NewFromInt(2)), "night = %s", b.Night)
	assert.True(t, b.Worked().Equal(decimal.NewFromInt(3)), "worked = %s", b.Worked())
}

func TestAggregateBreakOverflowReducesNight(t *testing.T) {
	agg := NewAggregator()
	day := date(2025, 6, 2)
	period := timesheet.Period{From: day, To: day}

	// 22:00-06:00 next day with a one hour break: 7 of 8 hours fall in the
	// window. The break fits exactly in the single non-night hour, so night
	// stays at 7.
	records := []attendance.Record{record(day, 22, 0, 480, 60)}

	buckets, _, err := agg.Aggregate(records, staticResolver{config: testConfig()}, period)
	require.NoError(t, err)
	b := buckets[0]
	assert.True(t, b.Night.Equal(decimal.NewFromInt(7)), "night = %s", b.Night)

	// With a 90 minute break the overflow eats 30 minutes of night.
	records = []attendance.Record{record(day, 22, 0, 480, 90)}
	buckets, _, err = agg.Aggregate(records, staticResolver{config: testConfig()}, period)
	require.NoError(t, err)
	b = buckets[0]
	assert.True(t, b.Night.Equal(decimal.NewFromFloat(6.5)), "night = %s", b.Night)
}

func TestAggregateHolidayOverlay(t *testing.T) {
	agg := NewAggregator()
	day := date(2025, 6, 8) // a Sunday
	period := timesheet.Period{From: day, To: day}

	config := testConfig()
	config.Holidays = workplace.HolidayCalendar{Weekdays: []time.Weekday{time.Sunday}}

	records := []attendance.Record{record(day, 9, 0, 360, 0)}

	buckets, warnings, err := agg.Aggregate(records, staticResolver{config: config}, period)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Empty(t, warnings)
	assert.True(t, buckets[0].Holiday.Equal(decimal.NewFromInt(6)), "holiday = %s", buckets[0].Holiday)
}

func TestAggregateInvalidRecords(t *testing.T) {
	agg := NewAggregator()
	day := date(2025, 6, 2)
	period := timesheet.Period{From: day, To: day}

	t.Run("clock-out before clock-in", func(t *testing.T) {
		rec := record(day, 9, 0, 540, 0)
		rec.ClockOut = rec.ClockIn.Add(-time.Hour)
		_, _, err := agg.Aggregate([]attendance.Record{rec}, staticResolver{config: testConfig()}, period)
		assert.ErrorIs(t, err, attendance.ErrInvalidRecord)
	})

	t.Run("break exceeds span", func(t *testing.T) {
		rec := record(day, 9, 0, 60, 120)
		_, _, err := agg.Aggregate([]attendance.Record{rec}, staticResolver{config: testConfig()}, period)
		assert.ErrorIs(t, err, attendance.ErrInvalidRecord)
	})
}

func TestAggregateIncompleteDayWarnings(t *testing.T) {
	agg := NewAggregator()
	period := timesheet.Period{From: date(2025, 6, 2), To: date(2025, 6, 4)}

	// Records for the 2nd and 4th only; the 3rd is flagged.
	records := []attendance.Record{
		record(date(2025, 6, 2), 9, 0, 480, 0),
		record(date(2025, 6, 4), 9, 0, 480, 0),
	}

	buckets, warnings, err := agg.Aggregate(records, staticResolver{config: testConfig()}, period)
	require.NoError(t, err)
	assert.Len(t, buckets, 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, timesheet.WarningIncompleteDay, warnings[0].Kind)
	assert.Equal(t, "emp-1", warnings[0].EmployeeID)
	require.NotNil(t, warnings[0].Date)
	assert.Equal(t, "2025-06-03", warnings[0].Date.Format("2006-01-02"))
}

func TestAggregateHolidayNotIncomplete(t *testing.T) {
	agg := NewAggregator()
	period := timesheet.Period{From: date(2025, 6, 7), To: date(2025, 6, 8)}

	config := testConfig()
	config.Holidays = workplace.HolidayCalendar{Weekdays: []time.Weekday{time.Sunday}}

	// Saturday worked, Sunday is a configured holiday: no warning.
	records := []attendance.Record{record(date(2025, 6, 7), 9, 0, 480, 0)}

	_, warnings, err := agg.Aggregate(records, staticResolver{config: config}, period)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestPenaltyCounts(t *testing.T) {
	agg := NewAggregator()
	period := timesheet.Period{From: date(2025, 6, 2), To: date(2025, 6, 4)}

	config := testConfig()
	config.Shifts = workplace.ShiftList{
		{Name: "day", Start: "09:00", End: "18:00", GraceMinutes: 5},
	}

	records := []attendance.Record{
		// 20 minutes late, leaves on time.
		record(date(2025, 6, 2), 9, 20, 520, 0),
		// On time, leaves an hour early.
		record(date(2025, 6, 3), 9, 0, 480, 0),
		// No record on the 4th: absence.
	}

	counts, err := agg.PenaltyCounts(records, staticResolver{config: config}, period)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Late)
	assert.Equal(t, 1, counts.EarlyLeave)
	assert.Equal(t, 1, counts.Absence)
	assert.False(t, counts.Clean())
}

func TestPenaltyCountsWithinGrace(t *testing.T) {
	agg := NewAggregator()
	day := date(2025, 6, 2)
	period := timesheet.Period{From: day, To: day}

	config := testConfig()
	config.Shifts = workplace.ShiftList{
		{Name: "day", Start: "09:00", End: "18:00", GraceMinutes: 10},
	}

	// 09:08 in, 18:08 out: inside grace, full shift length.
	records := []attendance.Record{record(day, 9, 8, 540, 0)}

	counts, err := agg.PenaltyCounts(records, staticResolver{config: config}, period)
	require.NoError(t, err)
	assert.True(t, counts.Clean())
}

package timesheet

import (
	"fmt"
	"sort"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/attendance"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/timesheet"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const minutesPerDay = 24 * 60

var sixty = decimal.NewFromInt(60)

type AggregatorImpl struct{}

func NewAggregator() timesheet.Aggregator {
	return &AggregatorImpl{}
}

// Aggregate implements timesheet.Aggregator.
func (a *AggregatorImpl) Aggregate(records []attendance.Record, resolve timesheet.ConfigResolver, period timesheet.Period) ([]timesheet.HourBucket, []timesheet.Warning, error) {
	sorted := make([]attendance.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].WorkDate.Before(sorted[j].WorkDate)
	})

	employeeID := ""
	recorded := make(map[string]bool, len(sorted))
	buckets := make([]timesheet.HourBucket, 0, len(sorted))

	for _, rec := range sorted {
		employeeID = rec.EmployeeID

		config, err := resolve.Effective(rec.WorkDate)
		if err != nil {
			return nil, nil, err
		}
		if err := config.Validate(); err != nil {
			return nil, nil, err
		}

		bucket, err := bucketRecord(rec, config)
		if err != nil {
			return nil, nil, err
		}

		recorded[rec.WorkDate.Format("2006-01-02")] = true
		buckets = append(buckets, bucket)
	}

	// Days in the period with no record are flagged, not fatal: the period
	// as a whole is marked incomplete and the run carries the warnings into
	// its review surface. Holidays are not expected workdays.
	var warnings []timesheet.Warning
	for _, day := range period.Days() {
		if recorded[day.Format("2006-01-02")] {
			continue
		}
		config, err := resolve.Effective(day)
		if err != nil {
			// No config effective on that date: nothing to judge the day
			// against, skip it.
			continue
		}
		if config.Holidays.IsHoliday(day) {
			continue
		}
		d := day
		warnings = append(warnings, timesheet.Warning{
			Kind:       timesheet.WarningIncompleteDay,
			EmployeeID: employeeID,
			Date:       &d,
			Message:    fmt.Sprintf("no attendance record for %s", day.Format("2006-01-02")),
		})
	}

	return buckets, warnings, nil
}

// bucketRecord categorizes one record's worked minutes.
//
// Regular vs overtime is a partition of the worked time. Night and holiday
// are overlays computed against the same minutes; the rate engine resolves
// the premium stacking, so double counting here is intentional.
func bucketRecord(rec attendance.Record, config workplace.Config) (timesheet.HourBucket, error) {
	span := int(rec.ClockOut.Sub(rec.ClockIn).Minutes())
	if span <= 0 {
		return timesheet.HourBucket{}, fmt.Errorf("%w: clock-out not after clock-in on %s",
			attendance.ErrInvalidRecord, rec.WorkDate.Format("2006-01-02"))
	}
	if rec.BreakMinutes > span {
		return timesheet.HourBucket{}, fmt.Errorf("%w: break exceeds worked span on %s",
			attendance.ErrInvalidRecord, rec.WorkDate.Format("2006-01-02"))
	}
	worked := span - rec.BreakMinutes

	nightStart, nightEnd, err := config.NightWindow()
	if err != nil {
		return timesheet.HourBucket{}, err
	}

	// Offsets in minutes relative to midnight of the work date; a shift may
	// run past midnight, so the out offset can exceed one day.
	midnight := time.Date(rec.WorkDate.Year(), rec.WorkDate.Month(), rec.WorkDate.Day(),
		0, 0, 0, 0, rec.ClockIn.Location())
	inOff := int(rec.ClockIn.Sub(midnight).Minutes())
	outOff := inOff + span

	nightOverlap := nightOverlapMinutes(inOff, outOff, nightStart, nightEnd)

	// Breaks come out of the non-night portion first; only when the break
	// exceeds it does the remainder eat into night minutes.
	nonNight := span - nightOverlap
	breakOutsideNight := rec.BreakMinutes
	if breakOutsideNight > nonNight {
		breakOutsideNight = nonNight
	}
	nightMinutes := nightOverlap - (rec.BreakMinutes - breakOutsideNight)

	overtimeMinutes := worked - config.StandardDailyMinutes
	if overtimeMinutes < 0 {
		overtimeMinutes = 0
	}

	holidayMinutes := 0
	if config.Holidays.IsHoliday(rec.WorkDate) {
		holidayMinutes = worked
	}

	// Regular is derived from the total so regular + overtime always equals
	// worked hours exactly.
	total := minutesToHours(worked)
	overtime := minutesToHours(overtimeMinutes)

	return timesheet.HourBucket{
		EmployeeID:  rec.EmployeeID,
		WorkplaceID: rec.WorkplaceID,
		WorkDate:    rec.WorkDate,
		Regular:     total.Sub(overtime),
		Overtime:    overtime,
		Night:       minutesToHours(nightMinutes),
		Holiday:     minutesToHours(holidayMinutes),
	}, nil
}

// nightOverlapMinutes intersects the worked span [inOff, outOff) with every
// instance of the night window around it. The window may wrap midnight
// (e.g. 22:00-05:00), so it is normalized to a span that can exceed one day
// and repeated at daily offsets.
func nightOverlapMinutes(inOff, outOff, nightStart, nightEnd int) int {
	if nightStart == nightEnd {
		return 0
	}

	windowEnd := nightEnd
	if windowEnd <= nightStart {
		windowEnd += minutesPerDay
	}

	overlap := 0
	// A worked span never exceeds a couple of days; three instances around
	// the work date cover every reachable window.
	for day := -1; day <= 1; day++ {
		ws := nightStart + day*minutesPerDay
		we := windowEnd + day*minutesPerDay
		overlap += intersect(inOff, outOff, ws, we)
	}
	return overlap
}

func intersect(aStart, aEnd, bStart, bEnd int) int {
	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}

// PenaltyCounts implements timesheet.Aggregator.
func (a *AggregatorImpl) PenaltyCounts(records []attendance.Record, resolve timesheet.ConfigResolver, period timesheet.Period) (timesheet.PenaltyCounts, error) {
	var counts timesheet.PenaltyCounts

	recorded := make(map[string]bool, len(records))
	for _, rec := range records {
		recorded[rec.WorkDate.Format("2006-01-02")] = true

		config, err := resolve.Effective(rec.WorkDate)
		if err != nil {
			return timesheet.PenaltyCounts{}, err
		}
		if len(config.Shifts) == 0 {
			continue
		}

		midnight := time.Date(rec.WorkDate.Year(), rec.WorkDate.Month(), rec.WorkDate.Day(),
			0, 0, 0, 0, rec.ClockIn.Location())
		inOff := int(rec.ClockIn.Sub(midnight).Minutes())
		outOff := int(rec.ClockOut.Sub(midnight).Minutes())

		shift, ok := matchShift(config.Shifts, inOff)
		if !ok {
			continue
		}

		shiftStart, _ := parseShiftTimes(shift)
		shiftEnd := shiftEndOffset(shift)

		if inOff > shiftStart+shift.GraceMinutes {
			counts.Late++
		}
		if outOff < shiftEnd {
			counts.EarlyLeave++
		}
	}

	for _, day := range period.Days() {
		if recorded[day.Format("2006-01-02")] {
			continue
		}
		config, err := resolve.Effective(day)
		if err != nil {
			continue
		}
		if config.Holidays.IsHoliday(day) {
			continue
		}
		counts.Absence++
	}

	return counts, nil
}

// matchShift picks the shift whose scheduled start is closest to the actual
// clock-in offset.
func matchShift(shifts workplace.ShiftList, inOff int) (workplace.Shift, bool) {
	best := -1
	bestDist := 0
	for i, s := range shifts {
		start, ok := parseShiftTimes(s)
		if !ok {
			continue
		}
		dist := inOff - start
		if dist < 0 {
			dist = -dist
		}
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	if best == -1 {
		return workplace.Shift{}, false
	}
	return shifts[best], true
}

func parseShiftTimes(s workplace.Shift) (int, bool) {
	return validator.ParseTimeOfDay(s.Start)
}

func shiftEndOffset(s workplace.Shift) int {
	start, _ := validator.ParseTimeOfDay(s.Start)
	end, ok := validator.ParseTimeOfDay(s.End)
	if !ok {
		return start
	}
	if end <= start {
		end += minutesPerDay
	}
	return end
}

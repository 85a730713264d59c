package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// HourBucket is one day's categorized hours for an employee.
//
// Regular and Overtime partition the worked time: a worked minute is in
// exactly one of the two. Night and Holiday are overlays with their own hour
// totals that may double-count against the partition; the rate engine, not
// the bucket, resolves the final premium stacking.
type HourBucket struct {
	EmployeeID  string
	WorkplaceID string
	WorkDate    time.Time

	Regular  decimal.Decimal
	Overtime decimal.Decimal
	Night    decimal.Decimal
	Holiday  decimal.Decimal
}

// Worked returns the partition total (regular + overtime).
func (b HourBucket) Worked() decimal.Decimal {
	return b.Regular.Add(b.Overtime)
}

// PenaltyCounts are the attendance-penalty occurrences in a period, priced
// per occurrence by the workplace's penalty rules.
type PenaltyCounts struct {
	Late       int
	EarlyLeave int
	Absence    int
}

// Clean reports whether the period had no penalty occurrences, which is what
// the attendance bonus keys off.
func (p PenaltyCounts) Clean() bool {
	return p.Late == 0 && p.EarlyLeave == 0 && p.Absence == 0
}

// Period is an inclusive calendar date range.
type Period struct {
	From time.Time
	To   time.Time
}

// PeriodForMonth returns the calendar period for a payroll month.
func PeriodForMonth(year, month int) Period {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{From: from, To: from.AddDate(0, 1, -1)}
}

// Days iterates the calendar dates of the period in order.
func (p Period) Days() []time.Time {
	var days []time.Time
	for d := p.From; !d.After(p.To); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

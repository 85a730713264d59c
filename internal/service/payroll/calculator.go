package payroll

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/employee"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/payroll"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// CalcInput carries everything one employee's line item is computed from.
// All inputs are resolved before calculation; the calculator itself touches
// no store and no clock, so recomputing with identical inputs yields an
// identical line item.
type CalcInput struct {
	RunID       string
	EmployeeID  string
	PeriodYear  int
	PeriodMonth int

	Wage      employee.Wage
	Buckets   []timesheet.HourBucket
	Warnings  []timesheet.Warning
	Penalties timesheet.PenaltyCounts

	// LeaveDays is the paid-leave consumption in the period, from the
	// yukyu ledger.
	LeaveDays decimal.Decimal

	// Deductions are the externally supplied amounts (taxes, insurance,
	// rent). The attendance penalty line is added by the calculator.
	Deductions []payroll.DeductionInput

	Resolve timesheet.ConfigResolver
}

// Calculator assembles one employee's line item from pre-aggregated hours.
type Calculator struct {
	rates *RateEngine
}

func NewCalculator(rates *RateEngine) *Calculator {
	return &Calculator{rates: rates}
}

// Calculate builds the line item. Per-day buckets are priced with the
// config pinned to their work date; period-level amounts (leave pay,
// allowances, bonus, penalties) use the config effective at period end.
func (c *Calculator) Calculate(in CalcInput) (payroll.LineItem, error) {
	item := payroll.LineItem{
		ID:          lineItemID(in.RunID, in.EmployeeID),
		RunID:       in.RunID,
		EmployeeID:  in.EmployeeID,
		PeriodYear:  in.PeriodYear,
		PeriodMonth: in.PeriodMonth,
		HourlyRate:  in.Wage.HourlyRate,
	}

	for _, bucket := range in.Buckets {
		config, err := in.Resolve.Effective(bucket.WorkDate)
		if err != nil {
			return payroll.LineItem{}, err
		}
		rated, err := c.rates.Rate(bucket, in.Wage.HourlyRate, config)
		if err != nil {
			return payroll.LineItem{}, err
		}

		item.RegularHours = item.RegularHours.Add(bucket.Regular.Round(2))
		item.OvertimeHours = item.OvertimeHours.Add(bucket.Overtime.Round(2))
		item.NightHours = item.NightHours.Add(bucket.Night.Round(2))
		item.HolidayHours = item.HolidayHours.Add(bucket.Holiday.Round(2))

		item.RegularAmount += rated.RegularAmount
		item.OvertimeAmount += rated.OvertimeAmount
		item.NightPremium += rated.NightPremium
		item.HolidayPremium += rated.HolidayPremium
	}

	periodEnd := timesheet.PeriodForMonth(in.PeriodYear, in.PeriodMonth).To
	config, err := in.Resolve.Effective(periodEnd)
	if err != nil {
		return payroll.LineItem{}, err
	}

	if in.LeaveDays.IsPositive() {
		standardDay := decimal.NewFromInt(int64(config.StandardDailyMinutes)).Div(decimal.NewFromInt(60))
		item.LeaveHours = in.LeaveDays.Mul(standardDay).Round(2)
		item.LeaveAmount = c.rates.LeavePay(item.LeaveHours, in.Wage.HourlyRate)
	}

	item.AllowanceTotal = in.Wage.AllowanceTotal()
	for _, a := range config.Bonuses.Allowances {
		item.AllowanceTotal += a.Amount
	}

	if in.Penalties.Clean() && !timesheet.HasKind(in.Warnings, timesheet.WarningIncompleteDay) {
		item.AttendanceBonus = config.Bonuses.AttendanceBonus
	}

	item.Gross = item.RegularAmount + item.OvertimeAmount + item.NightPremium +
		item.HolidayPremium + item.LeaveAmount + item.AllowanceTotal + item.AttendanceBonus

	item.Deductions = deductionLines(in.Deductions)
	if penalty := penaltyAmount(in.Penalties, config.Penalty.LatePenalty,
		config.Penalty.EarlyLeavePenalty, config.Penalty.AbsencePenalty); penalty > 0 {
		item.Deductions = append(item.Deductions, payroll.DeductionLine{
			Kind:   payroll.KindPenalty,
			Label:  "attendance penalty",
			Amount: penalty,
		})
	}
	item.DeductionTotal = item.Deductions.Total()

	item.Warnings = append(item.Warnings, in.Warnings...)

	item.Net = item.Gross - item.DeductionTotal
	if item.Net < 0 {
		item.Net = 0
		item.Warnings = append(item.Warnings, timesheet.Warning{
			Kind:       timesheet.WarningNegativeNet,
			EmployeeID: in.EmployeeID,
			Message: fmt.Sprintf("deductions %d exceed gross %d, net clamped to zero",
				item.DeductionTotal, item.Gross),
		})
	}

	return item, nil
}

// deductionLines orders the external inputs deterministically: by kind in
// the canonical order, then by label.
func deductionLines(inputs []payroll.DeductionInput) payroll.DeductionLines {
	lines := make(payroll.DeductionLines, 0, len(inputs))
	for _, in := range inputs {
		lines = append(lines, payroll.DeductionLine{Kind: in.Kind, Label: in.Label, Amount: in.Amount})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		ki, kj := kindOrder(lines[i].Kind), kindOrder(lines[j].Kind)
		if ki != kj {
			return ki < kj
		}
		return lines[i].Label < lines[j].Label
	})
	return lines
}

func kindOrder(kind payroll.DeductionKind) int {
	for i, k := range payroll.ValidKinds {
		if k == kind {
			return i
		}
	}
	return len(payroll.ValidKinds)
}

func penaltyAmount(counts timesheet.PenaltyCounts, late, earlyLeave, absence int64) int64 {
	return int64(counts.Late)*late + int64(counts.EarlyLeave)*earlyLeave + int64(counts.Absence)*absence
}

// lineItemID derives a stable UUID from the run and employee, so a
// recompute overwrites in place instead of minting new identifiers.
func lineItemID(runID, employeeID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(runID+"/"+employeeID)).String()
}

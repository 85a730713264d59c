package payroll

import (
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/payroll"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/timesheet"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// RateEngine prices hour buckets. Premiums stack additively on the base
// rate: an overtime hour inside the night window pays
// base * (1 + (overtime-1) + (night-1)), not base * overtime * night.
// Overtime and regular carry the full stacked rate for their hours; night
// and holiday contribute only their premium portion on top, so overlays
// never double-pay the base.
type RateEngine struct{}

func NewRateEngine() *RateEngine {
	return &RateEngine{}
}

// Rate prices one day's bucket at the given base hourly rate using the
// config pinned to that work date. Hours are rounded to two decimal places
// once, here, before any multiplication; each monetary component is rounded
// to integer yen independently.
func (e *RateEngine) Rate(bucket timesheet.HourBucket, hourlyRate int64, config workplace.Config) (payroll.RatedAmounts, error) {
	if err := config.Validate(); err != nil {
		return payroll.RatedAmounts{}, err
	}

	base := decimal.NewFromInt(hourlyRate)

	regular := bucket.Regular.Round(2)
	overtime := bucket.Overtime.Round(2)
	night := bucket.Night.Round(2)
	holiday := bucket.Holiday.Round(2)

	return payroll.RatedAmounts{
		RegularAmount:  toYen(regular.Mul(base)),
		OvertimeAmount: toYen(overtime.Mul(base).Mul(config.OvertimeMultiplier)),
		NightPremium:   toYen(night.Mul(base).Mul(config.NightMultiplier.Sub(one))),
		HolidayPremium: toYen(holiday.Mul(base).Mul(config.HolidayMultiplier.Sub(one))),
	}, nil
}

// LeavePay prices consumed paid-leave hours at the plain base rate. Leave
// never attracts premiums.
func (e *RateEngine) LeavePay(leaveHours decimal.Decimal, hourlyRate int64) int64 {
	return toYen(leaveHours.Round(2).Mul(decimal.NewFromInt(hourlyRate)))
}

// toYen rounds to integer yen, half away from zero.
func toYen(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}

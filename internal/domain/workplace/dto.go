package workplace

import (
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateConfigRequest struct {
	WorkplaceID          string           `json:"-"`
	EffectiveFrom        string           `json:"effective_from"` // "2006-01-02"
	StandardDailyMinutes int              `json:"standard_daily_minutes"`
	OvertimeMultiplier   decimal.Decimal  `json:"overtime_multiplier"`
	NightMultiplier      decimal.Decimal  `json:"night_multiplier"`
	HolidayMultiplier    decimal.Decimal  `json:"holiday_multiplier"`
	NightWindowStart     string           `json:"night_window_start"`
	NightWindowEnd       string           `json:"night_window_end"`
	Shifts               []Shift          `json:"shifts,omitempty"`
	HolidayDates         []string         `json:"holiday_dates,omitempty"`
	HolidayWeekdays      []int            `json:"holiday_weekdays,omitempty"`
	AttendanceBonus      int64            `json:"attendance_bonus"`
	Allowances           []AllowanceEntry `json:"allowances,omitempty"`
	LatePenalty          int64            `json:"late_penalty"`
	EarlyLeavePenalty    int64            `json:"early_leave_penalty"`
	AbsencePenalty       int64            `json:"absence_penalty"`
}

func (r *CreateConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be a YYYY-MM-DD date"})
	}
	if r.StandardDailyMinutes <= 0 || r.StandardDailyMinutes > 24*60 {
		errs = append(errs, validator.ValidationError{Field: "standard_daily_minutes", Message: "must be between 1 and 1440"})
	}
	if r.OvertimeMultiplier.LessThan(one) {
		errs = append(errs, validator.ValidationError{Field: "overtime_multiplier", Message: "must be at least 1.0"})
	}
	if r.NightMultiplier.LessThan(one) {
		errs = append(errs, validator.ValidationError{Field: "night_multiplier", Message: "must be at least 1.0"})
	}
	if r.HolidayMultiplier.LessThan(one) {
		errs = append(errs, validator.ValidationError{Field: "holiday_multiplier", Message: "must be at least 1.0"})
	}
	if !validator.IsValidTimeOfDay(r.NightWindowStart) {
		errs = append(errs, validator.ValidationError{Field: "night_window_start", Message: "must be an HH:MM time of day"})
	}
	if !validator.IsValidTimeOfDay(r.NightWindowEnd) {
		errs = append(errs, validator.ValidationError{Field: "night_window_end", Message: "must be an HH:MM time of day"})
	}
	for _, d := range r.HolidayDates {
		if _, ok := validator.IsValidDate(d); !ok {
			errs = append(errs, validator.ValidationError{Field: "holiday_dates", Message: "entries must be YYYY-MM-DD dates"})
			break
		}
	}
	for _, wd := range r.HolidayWeekdays {
		if wd < 0 || wd > 6 {
			errs = append(errs, validator.ValidationError{Field: "holiday_weekdays", Message: "entries must be 0 (Sunday) through 6 (Saturday)"})
			break
		}
	}
	if r.LatePenalty < 0 || r.EarlyLeavePenalty < 0 || r.AbsencePenalty < 0 {
		errs = append(errs, validator.ValidationError{Field: "penalties", Message: "must be non-negative"})
	}
	if r.AttendanceBonus < 0 {
		errs = append(errs, validator.ValidationError{Field: "attendance_bonus", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToConfig converts a validated request into a Config value (version is
// assigned by the repository).
func (r *CreateConfigRequest) ToConfig() Config {
	effective, _ := time.Parse("2006-01-02", r.EffectiveFrom)
	weekdays := make([]time.Weekday, 0, len(r.HolidayWeekdays))
	for _, wd := range r.HolidayWeekdays {
		weekdays = append(weekdays, time.Weekday(wd))
	}

	return Config{
		WorkplaceID:          r.WorkplaceID,
		EffectiveFrom:        effective,
		StandardDailyMinutes: r.StandardDailyMinutes,
		OvertimeMultiplier:   r.OvertimeMultiplier,
		NightMultiplier:      r.NightMultiplier,
		HolidayMultiplier:    r.HolidayMultiplier,
		NightWindowStart:     r.NightWindowStart,
		NightWindowEnd:       r.NightWindowEnd,
		Shifts:               r.Shifts,
		Holidays:             HolidayCalendar{Dates: r.HolidayDates, Weekdays: weekdays},
		Bonuses:              BonusTable{AttendanceBonus: r.AttendanceBonus, Allowances: r.Allowances},
		Penalty: PenaltyRules{
			LatePenalty:       r.LatePenalty,
			EarlyLeavePenalty: r.EarlyLeavePenalty,
			AbsencePenalty:    r.AbsencePenalty,
		},
	}
}

type ConfigResponse struct {
	ID                   string           `json:"id"`
	WorkplaceID          string           `json:"workplace_id"`
	Version              int              `json:"version"`
	EffectiveFrom        string           `json:"effective_from"`
	StandardDailyMinutes int              `json:"standard_daily_minutes"`
	OvertimeMultiplier   decimal.Decimal  `json:"overtime_multiplier"`
	NightMultiplier      decimal.Decimal  `json:"night_multiplier"`
	HolidayMultiplier    decimal.Decimal  `json:"holiday_multiplier"`
	NightWindowStart     string           `json:"night_window_start"`
	NightWindowEnd       string           `json:"night_window_end"`
	Shifts               []Shift          `json:"shifts,omitempty"`
	HolidayDates         []string         `json:"holiday_dates,omitempty"`
	HolidayWeekdays      []int            `json:"holiday_weekdays,omitempty"`
	AttendanceBonus      int64            `json:"attendance_bonus"`
	Allowances           []AllowanceEntry `json:"allowances,omitempty"`
	LatePenalty          int64            `json:"late_penalty"`
	EarlyLeavePenalty    int64            `json:"early_leave_penalty"`
	AbsencePenalty       int64            `json:"absence_penalty"`
}

// ToResponse maps a Config entity to its API representation.
func ToResponse(c Config) ConfigResponse {
	weekdays := make([]int, 0, len(c.Holidays.Weekdays))
	for _, wd := range c.Holidays.Weekdays {
		weekdays = append(weekdays, int(wd))
	}

	return ConfigResponse{
		ID:                   c.ID,
		WorkplaceID:          c.WorkplaceID,
		Version:              c.Version,
		EffectiveFrom:        c.EffectiveFrom.Format("2006-01-02"),
		StandardDailyMinutes: c.StandardDailyMinutes,
		OvertimeMultiplier:   c.OvertimeMultiplier,
		NightMultiplier:      c.NightMultiplier,
		HolidayMultiplier:    c.HolidayMultiplier,
		NightWindowStart:     c.NightWindowStart,
		NightWindowEnd:       c.NightWindowEnd,
		Shifts:               c.Shifts,
		HolidayDates:         c.Holidays.Dates,
		HolidayWeekdays:      weekdays,
		AttendanceBonus:      c.Bonuses.AttendanceBonus,
		Allowances:           c.Bonuses.Allowances,
		LatePenalty:          c.Penalty.LatePenalty,
		EarlyLeavePenalty:    c.Penalty.EarlyLeavePenalty,
		AbsencePenalty:       c.Penalty.AbsencePenalty,
	}
}

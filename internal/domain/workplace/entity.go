package workplace

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Config is one immutable version of a workplace's payroll configuration.
// A payroll computation pins the version effective on the work date, never
// the version current at calculation time, so historical runs stay
// reproducible after later edits.
type Config struct {
	ID            string
	WorkplaceID   string
	Version       int
	EffectiveFrom time.Time

	// StandardDailyMinutes is the daily threshold beyond which worked time
	// counts as overtime. Typically 480 (8 hours).
	StandardDailyMinutes int

	OvertimeMultiplier decimal.Decimal
	NightMultiplier    decimal.Decimal
	HolidayMultiplier  decimal.Decimal

	// Night window boundaries as "HH:MM" wall-clock strings. The window may
	// wrap midnight (e.g. 22:00-05:00).
	NightWindowStart string
	NightWindowEnd   string

	Shifts   ShiftList
	Holidays HolidayCalendar
	Bonuses  BonusTable
	Penalty  PenaltyRules

	CreatedAt time.Time
}

// Shift is a named scheduled span at a workplace.
type Shift struct {
	Name         string `json:"name"`
	Start        string `json:"start"` // "HH:MM"
	End          string `json:"end"`   // "HH:MM"; may be past midnight relative to Start
	GraceMinutes int    `json:"grace_minutes"`
}

type ShiftList []Shift

// HolidayCalendar marks calendar dates as holidays, either by explicit date
// or by weekday rule.
type HolidayCalendar struct {
	Dates    []string       `json:"dates,omitempty"` // "2006-01-02"
	Weekdays []time.Weekday `json:"weekdays,omitempty"`
}

// IsHoliday reports whether the given calendar date is a holiday.
func (h HolidayCalendar) IsHoliday(date time.Time) bool {
	key := date.Format("2006-01-02")
	for _, d := range h.Dates {
		if d == key {
			return true
		}
	}
	for _, wd := range h.Weekdays {
		if date.Weekday() == wd {
			return true
		}
	}
	return false
}

// BonusTable holds workplace-level bonus and allowance amounts in yen.
type BonusTable struct {
	// AttendanceBonus is paid when the employee has no late, early-leave or
	// absence occurrences in the period.
	AttendanceBonus int64            `json:"attendance_bonus"`
	Allowances      []AllowanceEntry `json:"allowances,omitempty"`
}

// AllowanceEntry is a fixed workplace allowance applied to every employee
// on that site (e.g. a hazard or site allowance).
type AllowanceEntry struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// PenaltyRules holds the per-occurrence attendance penalty amounts in yen.
type PenaltyRules struct {
	LatePenalty       int64 `json:"late_penalty"`
	EarlyLeavePenalty int64 `json:"early_leave_penalty"`
	AbsencePenalty    int64 `json:"absence_penalty"`
}

// NightWindow parses the window boundaries into minutes after midnight.
// start == end means an empty window.
func (c Config) NightWindow() (startMin, endMin int, err error) {
	start, ok := validator.ParseTimeOfDay(c.NightWindowStart)
	if !ok {
		return 0, 0, ErrInvalidConfig
	}
	end, ok := validator.ParseTimeOfDay(c.NightWindowEnd)
	if !ok {
		return 0, 0, ErrInvalidConfig
	}
	return start, end, nil
}

var one = decimal.NewFromInt(1)

// Validate checks the invariants a calculation relies on. Multiplier premiums
// are additive on top of 1.0, so any multiplier below 1.0 is malformed.
func (c Config) Validate() error {
	if c.StandardDailyMinutes <= 0 || c.StandardDailyMinutes > 24*60 {
		return ErrInvalidConfig
	}
	for _, m := range []decimal.Decimal{c.OvertimeMultiplier, c.NightMultiplier, c.HolidayMultiplier} {
		if m.LessThan(one) {
			return ErrInvalidConfig
		}
	}
	if _, _, err := c.NightWindow(); err != nil {
		return err
	}
	for _, s := range c.Shifts {
		if !validator.IsValidTimeOfDay(s.Start) || !validator.IsValidTimeOfDay(s.End) {
			return ErrInvalidConfig
		}
	}
	for _, d := range c.Holidays.Dates {
		if _, ok := validator.IsValidDate(d); !ok {
			return ErrInvalidConfig
		}
	}
	if c.Penalty.LatePenalty < 0 || c.Penalty.EarlyLeavePenalty < 0 || c.Penalty.AbsencePenalty < 0 {
		return ErrInvalidConfig
	}
	if c.Bonuses.AttendanceBonus < 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Value implements driver.Valuer for database storage
func (h HolidayCalendar) Value() (driver.Value, error) {
	return json.Marshal(h)
}

// Scan implements sql.Scanner for database retrieval
func (h *HolidayCalendar) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan HolidayCalendar: invalid type")
	}
	return json.Unmarshal(bytes, h)
}

// Value implements driver.Valuer for database storage
func (s ShiftList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *ShiftList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan ShiftList: invalid type")
	}
	return json.Unmarshal(bytes, s)
}

// Value implements driver.Valuer for database storage
func (b BonusTable) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for database retrieval
func (b *BonusTable) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan BonusTable: invalid type")
	}
	return json.Unmarshal(bytes, b)
}

// Value implements driver.Valuer for database storage
func (p PenaltyRules) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for database retrieval
func (p *PenaltyRules) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan PenaltyRules: invalid type")
	}
	return json.Unmarshal(bytes, p)
}

package timesheet

import (
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/attendance"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
)

// Aggregator converts raw daily attendance into categorized hour buckets for
// a pay period. It is pure: all inputs are resolved before the call and no
// state is shared between calls.
type Aggregator interface {
	// Aggregate buckets the records' worked time using the config effective
	// on each work date. A malformed record aborts the aggregation with
	// attendance.ErrInvalidRecord; missing days produce IncompleteDay
	// warnings alongside a still-valid result.
	Aggregate(records []attendance.Record, resolve ConfigResolver, period Period) ([]HourBucket, []Warning, error)

	// PenaltyCounts derives the attendance-penalty occurrences for the
	// period from the records and the workplace's shift definitions.
	PenaltyCounts(records []attendance.Record, resolve ConfigResolver, period Period) (PenaltyCounts, error)
}

// ConfigResolver pins the workplace config version effective on a work date.
type ConfigResolver interface {
	Effective(date time.Time) (workplace.Config, error)
}

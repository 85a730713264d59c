package payroll

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/attendance"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/employee"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/payroll"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
	svctimesheet "github.com/haken-hr/kyuyo-backend-go/internal/service/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunRepo struct {
	mu   sync.Mutex
	runs map[string]payroll.Run

	// afterGet runs once after a GetRun, to interleave a concurrent
	// modification between read and commit.
	afterGet func()
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: make(map[string]payroll.Run)}
}

func (f *fakeRunRepo) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs[run.ID] = run
	return run, nil
}

func (f *fakeRunRepo) GetRun(ctx context.Context, id string) (payroll.Run, error) {
	f.mu.Lock()
	run, ok := f.runs[id]
	f.mu.Unlock()
	if !ok {
		return payroll.Run{}, payroll.ErrRunNotFound
	}
	if f.afterGet != nil {
		hook := f.afterGet
		f.afterGet = nil
		hook()
	}
	return run, nil
}

func (f *fakeRunRepo) GetRunByPeriod(ctx context.Context, workplaceID string, year, month int) (payroll.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, run := range f.runs {
		if run.WorkplaceID == workplaceID && run.PeriodYear == year && run.PeriodMonth == month &&
			run.Status != payroll.StatusCancelled {
			return run, nil
		}
	}
	return payroll.Run{}, payroll.ErrRunNotFound
}

func (f *fakeRunRepo) ListRuns(ctx context.Context, workplaceID string) ([]payroll.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var runs []payroll.Run
	for _, run := range f.runs {
		if run.WorkplaceID == workplaceID {
			runs = append(runs, run)
		}
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })
	return runs, nil
}

func (f *fakeRunRepo) ReplaceLineItems(ctx context.Context, runID string, fromVersion int, items []payroll.LineItem, incomplete bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	if !ok {
		return payroll.ErrRunNotFound
	}
	if run.Version != fromVersion {
		return payroll.ErrConcurrentModification
	}
	run.LineItems = items
	run.Incomplete = incomplete
	run.Version = fromVersion + 1
	f.runs[runID] = run
	return nil
}

func (f *fakeRunRepo) UpdateStatus(ctx context.Context, run payroll.Run, fromVersion int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.runs[run.ID]
	if !ok {
		return payroll.ErrRunNotFound
	}
	if stored.Version != fromVersion {
		return payroll.ErrConcurrentModification
	}
	f.runs[run.ID] = run
	return nil
}

type fakeConfigRepo struct {
	versions []workplace.Config
}

func (f *fakeConfigRepo) Create(ctx context.Context, config workplace.Config) (workplace.Config, error) {
	f.versions = append(f.versions, config)
	return config, nil
}

func (f *fakeConfigRepo) GetEffective(ctx context.Context, workplaceID string, date time.Time) (workplace.Config, error) {
	return workplace.NewResolver(f.versions).Effective(date)
}

func (f *fakeConfigRepo) ListVersions(ctx context.Context, workplaceID string) ([]workplace.Config, error) {
	return f.versions, nil
}

type fakeWageRepo struct {
	wages map[string]employee.Wage
}

func (f *fakeWageRepo) GetEffective(ctx context.Context, employeeID string, date time.Time) (employee.Wage, error) {
	wage, ok := f.wages[employeeID]
	if !ok {
		return employee.Wage{}, employee.ErrWageNotFound
	}
	return wage, nil
}

func (f *fakeWageRepo) ListEmployeeIDs(ctx context.Context, workplaceID string, from, to time.Time) ([]string, error) {
	ids := make([]string, 0, len(f.wages))
	for id := range f.wages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeAttendanceRepo struct {
	records map[string][]attendance.Record
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	f.records[record.EmployeeID] = append(f.records[record.EmployeeID], record)
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) ListEffectiveForPeriod(ctx context.Context, employeeID, workplaceID string, from, to time.Time) ([]attendance.Record, error) {
	return f.records[employeeID], nil
}

func (f *fakeAttendanceRepo) HasCorrection(ctx context.Context, recordID string) (bool, error) {
	return false, nil
}

type fakeDeductions struct {
	inputs map[string][]payroll.DeductionInput
}

func (f *fakeDeductions) DeductionsFor(ctx context.Context, employeeID string, year, month int) ([]payroll.DeductionInput, error) {
	return f.inputs[employeeID], nil
}

type fakeLeave struct {
	days map[string]decimal.Decimal
}

func (f *fakeLeave) ConsumedDays(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	return f.days[employeeID], nil
}

type fixture struct {
	runRepo    *fakeRunRepo
	configRepo *fakeConfigRepo
	wageRepo   *fakeWageRepo
	attRepo    *fakeAttendanceRepo
	deductions *fakeDeductions
	leave      *fakeLeave
	service    payroll.RunService
}

func newFixture() *fixture {
	config := workplace.Config{
		ID:                   "cfg-1",
		WorkplaceID:          "wp-1",
		Version:              1,
		EffectiveFrom:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		StandardDailyMinutes: 480,
		OvertimeMultiplier:   decimal.NewFromFloat(1.25),
		NightMultiplier:      decimal.NewFromFloat(1.25),
		HolidayMultiplier:    decimal.NewFromFloat(1.35),
		NightWindowStart:     "22:00",
		NightWindowEnd:       "05:00",
	}

	f := &fixture{
		runRepo:    newFakeRunRepo(),
		configRepo: &fakeConfigRepo{versions: []workplace.Config{config}},
		wageRepo:   &fakeWageRepo{wages: make(map[string]employee.Wage)},
		attRepo:    &fakeAttendanceRepo{records: make(map[string][]attendance.Record)},
		deductions: &fakeDeductions{inputs: make(map[string][]payroll.DeductionInput)},
		leave:      &fakeLeave{days: make(map[string]decimal.Decimal)},
	}
	f.service = NewRunService(
		f.runRepo, f.configRepo, f.wageRepo, f.attRepo,
		f.deductions, f.leave,
		svctimesheet.NewAggregator(), NewCalculator(NewRateEngine()), 4,
	)
	return f
}

// addWorkedDay records a full 09:00-18:00 day with a one hour break.
func (f *fixture) addWorkedDay(employeeID string, day time.Time) {
	clockIn := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.UTC)
	f.attRepo.records[employeeID] = append(f.attRepo.records[employeeID], attendance.Record{
		ID:           "rec-" + employeeID + day.Format("20060102"),
		EmployeeID:   employeeID,
		WorkplaceID:  "wp-1",
		WorkDate:     day,
		ClockIn:      clockIn,
		ClockOut:     clockIn.Add(9 * time.Hour),
		BreakMinutes: 60,
	})
}

// fillMonth records the full month so no IncompleteDay warnings arise.
func (f *fixture) fillMonth(employeeID string, year, month int) {
	day := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for day.Month() == time.Month(month) {
		f.addWorkedDay(employeeID, day)
		day = day.AddDate(0, 0, 1)
	}
}

func TestCreateRunComputesLineItems(t *testing.T) {
	f := newFixture()
	f.wageRepo.wages["emp-1"] = employee.Wage{EmployeeID: "emp-1", HourlyRate: 1000}
	f.fillMonth("emp-1", 2025, 6)

	resp, err := f.service.CreateRun(context.Background(), payroll.CreateRunRequest{
		WorkplaceID: "wp-1", PeriodYear: 2025, PeriodMonth: 6,
	})
	require.NoError(t, err)

	assert.Equal(t, "draft", resp.Status)
	assert.False(t, resp.Incomplete)
	require.Len(t, resp.LineItems, 1)

	item := resp.LineItems[0]
	// 30 days at 8 regular hours, base 1000.
	assert.True(t, item.RegularHours.Equal(decimal.NewFromInt(240)), "regular hours = %s", item.RegularHours)
	assert.Equal(t, int64(240000), item.RegularAmount)
	assert.Equal(t, int64(240000), item.Gross)
	assert.Equal(t, item.Gross, item.Net)
	assert.Empty(t, item.Warnings)
}

func TestCreateRunDuplicatePeriod(t *testing.T) {
	f := newFixture()
	f.wageRepo.wages["emp-1"] = employee.Wage{EmployeeID: "emp-1", HourlyRate: 1000}
	f.fillMonth("emp-1", 2025, 6)

	_, err := f.service.CreateRun(context.Background(), payroll.CreateRunRequest{
		WorkplaceID: "wp-1", PeriodYear: 2025, PeriodMonth: 6,
	})
	require.NoError(t, err)

	_, err = f.service.CreateRun(context.Background(), payroll.CreateRunRequest{
		WorkplaceID: "wp-1", PeriodYear: 2025, PeriodMonth: 6,
	})
	assert.ErrorIs(t, err, payroll.ErrRunAlreadyExists)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	f := newFixture()
	f.wageRepo.wages["emp-1"] = employee.Wage{EmployeeID: "emp-1", HourlyRate: 1000}
	f.wageRepo.wages["emp-2"] = employee.Wage{EmployeeID: "emp-2", HourlyRate: 1300}
	f.fillMonth("emp-1", 2025, 6)
	f.fillMonth("emp-2", 2025, 6)

	first, err := f.service.CreateRun(context.Background(), payroll.CreateRunRequest{
		WorkplaceID: "wp-1", PeriodYear: 2025, PeriodMonth: 6,
	})
	require.NoError(t, err)

	second, err := f.service.RecomputeRun(context.Background(), first.ID)
	require.NoError(t, err)

	// Unchanged inputs: identical line items, identical IDs.
	require.Equal(t, len(first.LineItems), len(second.LineItems))
	for i := range first.LineItems {
		assert.Equal(t, first.LineItems[i], second.LineItems[i])
	}
}

func TestIncompleteDaysFlagRunAndBlockApproval(t *testing.T) {
	f := newFixture()
	f.wageRepo.wages["emp-1"] = employee.Wage{EmployeeID: "emp-1", HourlyRate: 1000}
	// Only one day recorded in the month.
	f.addWorkedDay("emp-1", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))

	resp, err := f.service.CreateRun(context.Background(), payroll.CreateRunRequest{
		WorkplaceID: "wp-1", PeriodYear: 2025, PeriodMonth: 6,
	})
	require.NoError(t, err)
	assert.True(t, resp.Incomplete)

	_, err = f.service.Approve(context.Background(), resp.ID, payroll.ApproveRunRequest{})
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

	approved, err := f.service.Approve(context.Background(), resp.ID, payroll.ApproveRunRequest{Override: true})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
}

func TestRunLifecycle(t *testing.T) {
	f := newFixture()
	f.wageRepo.wages["emp-1"] = employee.Wage{EmployeeID: "emp-1", HourlyRate: 1000}
	f.fillMonth("emp-1", 2025, 6)

	resp, err := f.service.CreateRun(context.Background(), payroll.CreateRunRequest{
		WorkplaceID: "wp-1", PeriodYear: 2025, PeriodMonth: 6,
	})
	require.NoError(t, err)

	// Paying a draft is invalid.
	_, err = f.service.MarkPaid(context.Background(), resp.ID)
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)

	approved, err := f.service.Approve(context.Background(), resp.ID, payroll.ApproveRunRequest{})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	// Approved runs are no longer recomputable.
	_, err = f.service.RecomputeRun(context.Background(), resp.ID)
	assert.ErrorIs(t, err, payroll.ErrRunImmutable)

	paid, err := f.service.MarkPaid(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)

	// Paid is terminal.
	_, err = f.service.Cancel(context.Background(), resp.ID)
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestCancelReopensPeriod(t *testing.T) {
	f := newFixture()
	f.wageRepo.wages["emp-1"] = employee.Wage{EmployeeID: "emp-1", HourlyRate: 1000}
	f.fillMonth("emp-1", 2025, 6)

	resp, err := f.service.CreateRun(context.Background(), payroll.CreateRunRequest{
		WorkplaceID: "wp-1", PeriodYear: 2025, PeriodMonth: 6,
	})
	require.NoError(t, err)

	cancelled, err := f.service.Cancel(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	// A cancelled run no longer blocks the period.
	_, err = f.service.CreateRun(context.Background(), payroll.CreateRunRequest{
		WorkplaceID: "wp-1", PeriodYear: 2025, PeriodMonth: 6,
	})
	require.NoError(t, err)
}

func TestConcurrentTransitionConflict(t *testing.T) {
	f := newFixture()
	f.wageRepo.wages["emp-1"] = employee.Wage{EmployeeID: "emp-1", HourlyRate: 1000}
	f.fillMonth("emp-1", 2025, 6)

	resp, err := f.service.CreateRun(context.Background(), payroll.CreateRunRequest{
		WorkplaceID: "wp-1", PeriodYear: 2025, PeriodMonth: 6,
	})
	require.NoError(t, err)

	// Another actor bumps the version between our read and commit.
	f.runRepo.afterGet = func() {
		f.runRepo.mu.Lock()
		run := f.runRepo.runs[resp.ID]
		run.Version++
		f.runRepo.runs[resp.ID] = run
		f.runRepo.mu.Unlock()
	}

	_, err = f.service.Approve(context.Background(), resp.ID, payroll.ApproveRunRequest{})
	assert.ErrorIs(t, err, payroll.ErrConcurrentModification)

	// The stored run is untouched by the failed transition.
	stored, err := f.runRepo.GetRun(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusDraft, stored.Status)
}

func TestMissingConfigFailsRun(t *testing.T) {
	f := newFixture()
	f.configRepo.versions = nil
	f.wageRepo.wages["emp-1"] = employee.Wage{EmployeeID: "emp-1", HourlyRate: 1000}

	_, err := f.service.CreateRun(context.Background(), payroll.CreateRunRequest{
		WorkplaceID: "wp-1", PeriodYear: 2025, PeriodMonth: 6,
	})
	assert.ErrorIs(t, err, workplace.ErrNoEffectiveConfig)
}

package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/attendance"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/employee"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/payroll"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/timesheet"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
	"golang.org/x/sync/errgroup"
)

type RunServiceImpl struct {
	runRepo        payroll.RunRepository
	configRepo     workplace.ConfigRepository
	wageRepo       employee.WageRepository
	attendanceRepo attendance.Repository
	deductions     payroll.DeductionSource
	leave          payroll.LeaveSource
	aggregator     timesheet.Aggregator
	calculator     *Calculator

	// workers caps the per-employee computation fan-out.
	workers int
}

func NewRunService(
	runRepo payroll.RunRepository,
	configRepo workplace.ConfigRepository,
	wageRepo employee.WageRepository,
	attendanceRepo attendance.Repository,
	deductions payroll.DeductionSource,
	leave payroll.LeaveSource,
	aggregator timesheet.Aggregator,
	calculator *Calculator,
	workers int,
) payroll.RunService {
	if workers < 1 {
		workers = 1
	}
	return &RunServiceImpl{
		runRepo:        runRepo,
		configRepo:     configRepo,
		wageRepo:       wageRepo,
		attendanceRepo: attendanceRepo,
		deductions:     deductions,
		leave:          leave,
		aggregator:     aggregator,
		calculator:     calculator,
		workers:        workers,
	}
}

// actorFromContext returns the authenticated user for audit fields.
func actorFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "system"
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID
	}
	return "system"
}

// CreateRun implements payroll.RunService.
func (s *RunServiceImpl) CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	existing, err := s.runRepo.GetRunByPeriod(ctx, req.WorkplaceID, req.PeriodYear, req.PeriodMonth)
	if err != nil && !errors.Is(err, payroll.ErrRunNotFound) {
		return payroll.RunResponse{}, fmt.Errorf("failed to check existing run: %w", err)
	}
	if err == nil && existing.Status != payroll.StatusCancelled {
		return payroll.RunResponse{}, payroll.ErrRunAlreadyExists
	}

	now := time.Now().UTC()
	run, err := s.runRepo.CreateRun(ctx, payroll.Run{
		ID:          uuid.NewString(),
		WorkplaceID: req.WorkplaceID,
		PeriodYear:  req.PeriodYear,
		PeriodMonth: req.PeriodMonth,
		Status:      payroll.StatusDraft,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to create run: %w", err)
	}

	return s.compute(ctx, run)
}

// RecomputeRun implements payroll.RunService.
func (s *RunServiceImpl) RecomputeRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	run, err := s.runRepo.GetRun(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return s.compute(ctx, run)
}

// compute replaces the run's line items from current inputs. The config
// versions are loaded once and pinned per work date, so the calculation
// path is pure and the result deterministic for unchanged inputs.
func (s *RunServiceImpl) compute(ctx context.Context, run payroll.Run) (payroll.RunResponse, error) {
	if !run.Recomputable() {
		return payroll.RunResponse{}, payroll.ErrRunImmutable
	}

	versions, err := s.configRepo.ListVersions(ctx, run.WorkplaceID)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to load config versions: %w", err)
	}
	if len(versions) == 0 {
		return payroll.RunResponse{}, workplace.ErrNoEffectiveConfig
	}
	resolver := workplace.NewResolver(versions)

	period := timesheet.PeriodForMonth(run.PeriodYear, run.PeriodMonth)

	employeeIDs, err := s.wageRepo.ListEmployeeIDs(ctx, run.WorkplaceID, period.From, period.To)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	sort.Strings(employeeIDs)

	items := make([]payroll.LineItem, len(employeeIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, employeeID := range employeeIDs {
		g.Go(func() error {
			item, err := s.computeLineItem(gctx, run, employeeID, resolver, period)
			if err != nil {
				return fmt.Errorf("employee %s: %w", employeeID, err)
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.RunResponse{}, err
	}

	incomplete := false
	for _, item := range items {
		if timesheet.HasKind(item.Warnings, timesheet.WarningIncompleteDay) {
			incomplete = true
			break
		}
	}

	if err := s.runRepo.ReplaceLineItems(ctx, run.ID, run.Version, items, incomplete); err != nil {
		return payroll.RunResponse{}, err
	}

	run, err = s.runRepo.GetRun(ctx, run.ID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(run), nil
}

func (s *RunServiceImpl) computeLineItem(
	ctx context.Context,
	run payroll.Run,
	employeeID string,
	resolver *workplace.Resolver,
	period timesheet.Period,
) (payroll.LineItem, error) {
	wage, err := s.wageRepo.GetEffective(ctx, employeeID, period.To)
	if err != nil {
		return payroll.LineItem{}, fmt.Errorf("failed to get wage: %w", err)
	}

	records, err := s.attendanceRepo.ListEffectiveForPeriod(ctx, employeeID, run.WorkplaceID, period.From, period.To)
	if err != nil {
		return payroll.LineItem{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	buckets, warnings, err := s.aggregator.Aggregate(records, resolver, period)
	if err != nil {
		return payroll.LineItem{}, err
	}
	for i := range warnings {
		if warnings[i].EmployeeID == "" {
			warnings[i].EmployeeID = employeeID
		}
	}

	penalties, err := s.aggregator.PenaltyCounts(records, resolver, period)
	if err != nil {
		return payroll.LineItem{}, err
	}

	leaveDays, err := s.leave.ConsumedDays(ctx, employeeID, run.PeriodYear, run.PeriodMonth)
	if err != nil {
		return payroll.LineItem{}, fmt.Errorf("failed to get consumed leave: %w", err)
	}

	deductions, err := s.deductions.DeductionsFor(ctx, employeeID, run.PeriodYear, run.PeriodMonth)
	if err != nil {
		return payroll.LineItem{}, fmt.Errorf("failed to get deductions: %w", err)
	}

	return s.calculator.Calculate(CalcInput{
		RunID:       run.ID,
		EmployeeID:  employeeID,
		PeriodYear:  run.PeriodYear,
		PeriodMonth: run.PeriodMonth,
		Wage:        wage,
		Buckets:     buckets,
		Warnings:    warnings,
		Penalties:   penalties,
		LeaveDays:   leaveDays,
		Deductions:  deductions,
		Resolve:     resolver,
	})
}

// GetRun implements payroll.RunService.
func (s *RunServiceImpl) GetRun(ctx context.Context, runID string) (payroll.RunResponse, error) {
	run, err := s.runRepo.GetRun(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(run), nil
}

// ListRuns implements payroll.RunService.
func (s *RunServiceImpl) ListRuns(ctx context.Context, workplaceID string) ([]payroll.RunResponse, error) {
	runs, err := s.runRepo.ListRuns(ctx, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	responses := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		run.LineItems = nil
		responses = append(responses, payroll.ToRunResponse(run))
	}
	return responses, nil
}

// Approve implements payroll.RunService.
func (s *RunServiceImpl) Approve(ctx context.Context, runID string, req payroll.ApproveRunRequest) (payroll.RunResponse, error) {
	return s.transition(ctx, runID, func(run *payroll.Run) error {
		return run.Approve(actorFromContext(ctx), time.Now().UTC(), req.Override)
	})
}

// MarkPaid implements payroll.RunService.
func (s *RunServiceImpl) MarkPaid(ctx context.Context, runID string) (payroll.RunResponse, error) {
	return s.transition(ctx, runID, func(run *payroll.Run) error {
		return run.MarkPaid(actorFromContext(ctx), time.Now().UTC())
	})
}

// Cancel implements payroll.RunService.
func (s *RunServiceImpl) Cancel(ctx context.Context, runID string) (payroll.RunResponse, error) {
	return s.transition(ctx, runID, func(run *payroll.Run) error {
		return run.Cancel(time.Now().UTC())
	})
}

// transition loads, mutates and commits a run under optimistic concurrency.
// A version conflict surfaces as ErrConcurrentModification; the caller
// retries by re-reading.
func (s *RunServiceImpl) transition(ctx context.Context, runID string, apply func(*payroll.Run) error) (payroll.RunResponse, error) {
	run, err := s.runRepo.GetRun(ctx, runID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	fromVersion := run.Version
	if err := apply(&run); err != nil {
		return payroll.RunResponse{}, err
	}
	run.Version = fromVersion + 1
	run.UpdatedAt = time.Now().UTC()

	if err := s.runRepo.UpdateStatus(ctx, run, fromVersion); err != nil {
		return payroll.RunResponse{}, err
	}
	return payroll.ToRunResponse(run), nil
}

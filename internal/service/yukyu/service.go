package yukyu

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/yukyu"
	"github.com/shopspring/decimal"
)

type ServiceImpl struct {
	repo yukyu.Repository

	// locks serializes ledger writes per employee, so concurrent Consume
	// calls cannot both pass the balance check before either lands.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(repo yukyu.Repository) *ServiceImpl {
	return &ServiceImpl{
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *ServiceImpl) employeeLock(employeeID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[employeeID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[employeeID] = lock
	}
	return lock
}

// Grant implements yukyu.Service.
func (s *ServiceImpl) Grant(ctx context.Context, req yukyu.GrantRequest) (yukyu.GrantResponse, error) {
	if err := req.Validate(); err != nil {
		return yukyu.GrantResponse{}, err
	}

	grantDate, _ := time.Parse("2006-01-02", req.GrantDate)

	grant, err := s.repo.CreateGrant(ctx, yukyu.Grant{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		FiscalYear: req.FiscalYear,
		GrantDate:  grantDate,
		Days:       req.Days,
		ExpiryDate: grantDate.AddDate(yukyu.ValidityYears, 0, 0),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return yukyu.GrantResponse{}, fmt.Errorf("failed to create grant: %w", err)
	}

	return yukyu.ToGrantResponse(grant), nil
}

// Consume implements yukyu.Service.
func (s *ServiceImpl) Consume(ctx context.Context, req yukyu.ConsumeRequest) (yukyu.ConsumptionResultResponse, error) {
	if err := req.Validate(); err != nil {
		return yukyu.ConsumptionResultResponse{}, err
	}

	lock := s.employeeLock(req.EmployeeID)
	lock.Lock()
	defer lock.Unlock()

	date, _ := time.Parse("2006-01-02", req.Date)

	grants, err := s.repo.ListGrants(ctx, req.EmployeeID)
	if err != nil {
		return yukyu.ConsumptionResultResponse{}, fmt.Errorf("failed to list grants: %w", err)
	}
	consumptions, err := s.repo.ListConsumptions(ctx, req.EmployeeID)
	if err != nil {
		return yukyu.ConsumptionResultResponse{}, fmt.Errorf("failed to list consumptions: %w", err)
	}

	allocations, err := yukyu.AllocateLIFO(grants, consumptions, date, req.Days)
	if err != nil {
		return yukyu.ConsumptionResultResponse{}, err
	}

	now := time.Now().UTC()
	for i := range allocations {
		allocations[i].ID = uuid.NewString()
		allocations[i].CreatedAt = now
	}

	created, err := s.repo.CreateConsumptions(ctx, allocations)
	if err != nil {
		return yukyu.ConsumptionResultResponse{}, fmt.Errorf("failed to store consumptions: %w", err)
	}

	return yukyu.ToResultResponse(yukyu.ConsumptionResult{
		EmployeeID:   req.EmployeeID,
		Date:         date,
		Requested:    req.Days,
		Consumptions: created,
	}), nil
}

// Reverse implements yukyu.Service.
func (s *ServiceImpl) Reverse(ctx context.Context, consumptionID string) (yukyu.ConsumptionResponse, error) {
	original, err := s.repo.GetConsumption(ctx, consumptionID)
	if err != nil {
		return yukyu.ConsumptionResponse{}, err
	}
	if original.Days.IsNegative() {
		// A compensating record cannot itself be reversed.
		return yukyu.ConsumptionResponse{}, yukyu.ErrInvalidConsumption
	}

	lock := s.employeeLock(original.EmployeeID)
	lock.Lock()
	defer lock.Unlock()

	reversed, err := s.repo.HasReversal(ctx, consumptionID)
	if err != nil {
		return yukyu.ConsumptionResponse{}, fmt.Errorf("failed to check reversal: %w", err)
	}
	if reversed {
		return yukyu.ConsumptionResponse{}, yukyu.ErrAlreadyReversed
	}

	reversesID := original.ID
	created, err := s.repo.CreateConsumptions(ctx, []yukyu.Consumption{{
		ID:         uuid.NewString(),
		GrantID:    original.GrantID,
		EmployeeID: original.EmployeeID,
		Date:       original.Date,
		Days:       original.Days.Neg(),
		ReversesID: &reversesID,
		CreatedAt:  time.Now().UTC(),
	}})
	if err != nil {
		return yukyu.ConsumptionResponse{}, fmt.Errorf("failed to store reversal: %w", err)
	}

	return yukyu.ToConsumptionResponse(created[0]), nil
}

// BalanceAsOf implements yukyu.Service.
func (s *ServiceImpl) BalanceAsOf(ctx context.Context, employeeID, asOf string) (yukyu.SnapshotResponse, error) {
	date, err := time.Parse("2006-01-02", asOf)
	if err != nil {
		return yukyu.SnapshotResponse{}, yukyu.ErrInvalidConsumption
	}

	grants, err := s.repo.ListGrants(ctx, employeeID)
	if err != nil {
		return yukyu.SnapshotResponse{}, fmt.Errorf("failed to list grants: %w", err)
	}
	consumptions, err := s.repo.ListConsumptions(ctx, employeeID)
	if err != nil {
		return yukyu.SnapshotResponse{}, fmt.Errorf("failed to list consumptions: %w", err)
	}

	snapshot := yukyu.Replay(grants, consumptions, date)
	snapshot.EmployeeID = employeeID
	snapshot.AsOf = date

	return yukyu.ToSnapshotResponse(snapshot), nil
}

// ListGrants implements yukyu.Service.
func (s *ServiceImpl) ListGrants(ctx context.Context, employeeID string) ([]yukyu.GrantResponse, error) {
	grants, err := s.repo.ListGrants(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	responses := make([]yukyu.GrantResponse, 0, len(grants))
	for _, g := range grants {
		responses = append(responses, yukyu.ToGrantResponse(g))
	}
	return responses, nil
}

// ListConsumptions implements yukyu.Service.
func (s *ServiceImpl) ListConsumptions(ctx context.Context, employeeID string) ([]yukyu.ConsumptionResponse, error) {
	consumptions, err := s.repo.ListConsumptions(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consumptions: %w", err)
	}

	responses := make([]yukyu.ConsumptionResponse, 0, len(consumptions))
	for _, c := range consumptions {
		responses = append(responses, yukyu.ToConsumptionResponse(c))
	}
	return responses, nil
}

// ConsumedDays reports the net paid-leave days an employee consumed in a
// payroll month. Satisfies the payroll engine's leave source.
func (s *ServiceImpl) ConsumedDays(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	consumptions, err := s.repo.ListConsumptionsInRange(ctx, employeeID, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list consumptions: %w", err)
	}

	total := decimal.Zero
	for _, c := range consumptions {
		total = total.Add(c.Days)
	}
	if total.IsNegative() {
		total = decimal.Zero
	}
	return total, nil
}

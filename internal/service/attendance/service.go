package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/attendance"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/timesheet"
)

type ServiceImpl struct {
	repo attendance.Repository
}

func NewService(repo attendance.Repository) attendance.Service {
	return &ServiceImpl{repo: repo}
}

// Submit implements attendance.Service.
func (s *ServiceImpl) Submit(ctx context.Context, req attendance.SubmitRecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	record := req.ToRecord()
	record.ID = uuid.NewString()
	record.SubmittedAt = time.Now().UTC()

	if record.CorrectsRecordID != nil {
		original, err := s.repo.GetByID(ctx, *record.CorrectsRecordID)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		if original.EmployeeID != record.EmployeeID || !original.WorkDate.Equal(record.WorkDate) {
			return attendance.RecordResponse{}, attendance.ErrInvalidRecord
		}

		// Corrections chain: a superseded record cannot be corrected again.
		superseded, err := s.repo.HasCorrection(ctx, original.ID)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to check corrections: %w", err)
		}
		if superseded {
			return attendance.RecordResponse{}, attendance.ErrRecordSuperseded
		}
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create record: %w", err)
	}

	return attendance.ToResponse(created), nil
}

// Get implements attendance.Service.
func (s *ServiceImpl) Get(ctx context.Context, id string) (attendance.RecordResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

// ListForPeriod implements attendance.Service.
func (s *ServiceImpl) ListForPeriod(ctx context.Context, employeeID, workplaceID string, year, month int) ([]attendance.RecordResponse, error) {
	period := timesheet.PeriodForMonth(year, month)

	records, err := s.repo.ListEffectiveForPeriod(ctx, employeeID, workplaceID, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec))
	}
	return responses, nil
}

package workplace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
	"github.com/haken-hr/kyuyo-backend-go/internal/fixtures"
)

type ConfigServiceImpl struct {
	repo workplace.ConfigRepository
}

func NewConfigService(repo workplace.ConfigRepository) workplace.ConfigService {
	return &ConfigServiceImpl{repo: repo}
}

// CreateVersion implements workplace.ConfigService.
func (s *ConfigServiceImpl) CreateVersion(ctx context.Context, req workplace.CreateConfigRequest) (workplace.ConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return workplace.ConfigResponse{}, err
	}

	config := req.ToConfig()
	config.ID = uuid.NewString()
	config.CreatedAt = time.Now().UTC()

	if err := config.Validate(); err != nil {
		return workplace.ConfigResponse{}, err
	}

	created, err := s.repo.Create(ctx, config)
	if err != nil {
		return workplace.ConfigResponse{}, fmt.Errorf("failed to create config version: %w", err)
	}

	return workplace.ToResponse(created), nil
}

// CreateDefaults implements workplace.ConfigService.
func (s *ConfigServiceImpl) CreateDefaults(ctx context.Context, workplaceID, effectiveFrom string) (workplace.ConfigResponse, error) {
	return s.CreateVersion(ctx, fixtures.DefaultConfigRequest(workplaceID, effectiveFrom))
}

// GetEffective implements workplace.ConfigService.
func (s *ConfigServiceImpl) GetEffective(ctx context.Context, workplaceID, date string) (workplace.ConfigResponse, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return workplace.ConfigResponse{}, workplace.ErrInvalidConfig
	}

	config, err := s.repo.GetEffective(ctx, workplaceID, parsed)
	if err != nil {
		return workplace.ConfigResponse{}, err
	}

	return workplace.ToResponse(config), nil
}

// ListVersions implements workplace.ConfigService.
func (s *ConfigServiceImpl) ListVersions(ctx context.Context, workplaceID string) ([]workplace.ConfigResponse, error) {
	versions, err := s.repo.ListVersions(ctx, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list config versions: %w", err)
	}

	responses := make([]workplace.ConfigResponse, 0, len(versions))
	for _, v := range versions {
		responses = append(responses, workplace.ToResponse(v))
	}
	return responses, nil
}

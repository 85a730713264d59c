package workplace

import "context"

// ConfigService administers versioned workplace configuration.
type ConfigService interface {
	// CreateVersion appends a new config version for a workplace. The
	// version number is assigned by the service, not the caller.
	CreateVersion(ctx context.Context, req CreateConfigRequest) (ConfigResponse, error)

	// CreateDefaults appends a config version carrying the statutory
	// baseline so a new workplace can run payroll before anyone has
	// tuned its rules.
	CreateDefaults(ctx context.Context, workplaceID, effectiveFrom string) (ConfigResponse, error)

	// GetEffective returns the version effective on the given date.
	GetEffective(ctx context.Context, workplaceID, date string) (ConfigResponse, error)

	// ListVersions returns all versions for a workplace, newest first.
	ListVersions(ctx context.Context, workplaceID string) ([]ConfigResponse, error)
}

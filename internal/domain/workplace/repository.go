package workplace

import (
	"context"
	"time"
)

// ConfigRepository defines data access for versioned workplace configuration.
// Versions are append-only; edits create a new version with its own effective
// date.
type ConfigRepository interface {
	// Create stores a new config version.
	Create(ctx context.Context, config Config) (Config, error)

	// GetEffective returns the version with the latest EffectiveFrom that is
	// not after the given date.
	GetEffective(ctx context.Context, workplaceID string, date time.Time) (Config, error)

	// ListVersions returns all versions for a workplace, newest first.
	ListVersions(ctx context.Context, workplaceID string) ([]Config, error)
}

// Resolver pins config versions per work date. A payroll run loads all
// versions once and resolves in memory so the pure calculation path never
// touches the store.
type Resolver struct {
	versions []Config // sorted by EffectiveFrom ascending
}

// NewResolver builds a resolver from a workplace's versions in any order.
func NewResolver(versions []Config) *Resolver {
	sorted := make([]Config, len(versions))
	copy(sorted, versions)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].EffectiveFrom.Before(sorted[j-1].EffectiveFrom); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return &Resolver{versions: sorted}
}

// Effective returns the config version effective on the given work date.
func (r *Resolver) Effective(date time.Time) (Config, error) {
	var found *Config
	for i := range r.versions {
		if r.versions[i].EffectiveFrom.After(date) {
			break
		}
		found = &r.versions[i]
	}
	if found == nil {
		return Config{}, ErrNoEffectiveConfig
	}
	return *found, nil
}

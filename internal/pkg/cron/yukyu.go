package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/yukyu"
	"github.com/shopspring/decimal"
)

// ExpiryNoticeWindow is how far ahead the expiry scan looks for grants
// about to lapse.
const ExpiryNoticeWindow = 30 * 24 * time.Hour

// ExpiringGrant is a grant that still holds unused days close to its
// expiry date.
type ExpiringGrant struct {
	EmployeeID string
	GrantID    string
	FiscalYear int
	ExpiryDate time.Time
	Remaining  decimal.Decimal
}

// YukyuJobs holds the scheduled work around the paid-leave ledger.
type YukyuJobs struct {
	repo yukyu.Repository
}

func NewYukyuJobs(repo yukyu.Repository) *YukyuJobs {
	return &YukyuJobs{repo: repo}
}

// ScanExpiringGrants logs every employee holding unused days on a grant
// that expires within the notice window, so payroll staff can nudge them
// before the days lapse.
func (j *YukyuJobs) ScanExpiringGrants(ctx context.Context) error {
	expiring, err := j.FindExpiring(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	for _, e := range expiring {
		slog.Warn("yukyu grant expiring with unused days",
			"employee_id", e.EmployeeID,
			"grant_id", e.GrantID,
			"fiscal_year", e.FiscalYear,
			"expiry_date", e.ExpiryDate.Format("2006-01-02"),
			"days_remaining", e.Remaining.String(),
		)
	}

	return nil
}

// FindExpiring replays each affected employee's ledger and returns the
// grants expiring within the notice window that still hold unused days.
func (j *YukyuJobs) FindExpiring(ctx context.Context, now time.Time) ([]ExpiringGrant, error) {
	by := now.Add(ExpiryNoticeWindow)

	candidates, err := j.repo.ListGrantsExpiringBy(ctx, by)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring grants: %w", err)
	}

	var expiring []ExpiringGrant
	seen := make(map[string]bool)
	for _, g := range candidates {
		if seen[g.EmployeeID] {
			continue
		}
		seen[g.EmployeeID] = true

		grants, err := j.repo.ListGrants(ctx, g.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to list grants: %w", err)
		}
		consumptions, err := j.repo.ListConsumptions(ctx, g.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to list consumptions: %w", err)
		}

		snapshot := yukyu.Replay(grants, consumptions, now)
		for _, gb := range snapshot.Grants {
			if gb.ExpiryDate.After(by) || !gb.ExpiryDate.After(now) || !gb.Remaining.IsPositive() {
				continue
			}
			expiring = append(expiring, ExpiringGrant{
				EmployeeID: g.EmployeeID,
				GrantID:    gb.GrantID,
				FiscalYear: gb.FiscalYear,
				ExpiryDate: gb.ExpiryDate,
				Remaining:  gb.Remaining,
			})
		}
	}

	return expiring, nil
}

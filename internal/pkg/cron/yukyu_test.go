package cron

import (
	"context"
	"testing"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/yukyu"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerFake struct {
	grants       []yukyu.Grant
	consumptions []yukyu.Consumption
}

func (f *ledgerFake) CreateGrant(ctx context.Context, grant yukyu.Grant) (yukyu.Grant, error) {
	f.grants = append(f.grants, grant)
	return grant, nil
}

func (f *ledgerFake) ListGrants(ctx context.Context, employeeID string) ([]yukyu.Grant, error) {
	var out []yukyu.Grant
	for _, g := range f.grants {
		if g.EmployeeID == employeeID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *ledgerFake) ListGrantsExpiringBy(ctx context.Context, by time.Time) ([]yukyu.Grant, error) {
	var out []yukyu.Grant
	for _, g := range f.grants {
		if !g.ExpiryDate.After(by) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *ledgerFake) GetConsumption(ctx context.Context, id string) (yukyu.Consumption, error) {
	return yukyu.Consumption{}, yukyu.ErrConsumptionNotFound
}

func (f *ledgerFake) CreateConsumptions(ctx context.Context, consumptions []yukyu.Consumption) ([]yukyu.Consumption, error) {
	f.consumptions = append(f.consumptions, consumptions...)
	return consumptions, nil
}

func (f *ledgerFake) ListConsumptions(ctx context.Context, employeeID string) ([]yukyu.Consumption, error) {
	var out []yukyu.Consumption
	for _, c := range f.consumptions {
		if c.EmployeeID == employeeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *ledgerFake) ListConsumptionsInRange(ctx context.Context, employeeID string, from, to time.Time) ([]yukyu.Consumption, error) {
	return nil, nil
}

func (f *ledgerFake) HasReversal(ctx context.Context, consumptionID string) (bool, error) {
	return false, nil
}

func TestFindExpiringReportsUnusedDays(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &ledgerFake{
		grants: []yukyu.Grant{
			{
				ID: "g-old", EmployeeID: "emp-1", FiscalYear: 2023,
				GrantDate:  time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
				Days:       decimal.NewFromInt(10),
				ExpiryDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			},
			{
				ID: "g-new", EmployeeID: "emp-1", FiscalYear: 2024,
				GrantDate:  time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
				Days:       decimal.NewFromInt(11),
				ExpiryDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
			},
		},
		consumptions: []yukyu.Consumption{
			{ID: "c-1", GrantID: "g-old", EmployeeID: "emp-1",
				Date: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
				Days: decimal.NewFromInt(6)},
		},
	}

	expiring, err := NewYukyuJobs(repo).FindExpiring(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, expiring, 1)
	assert.Equal(t, "emp-1", expiring[0].EmployeeID)
	assert.Equal(t, "g-old", expiring[0].GrantID)
	assert.True(t, expiring[0].Remaining.Equal(decimal.NewFromInt(4)))
}

func TestFindExpiringSkipsDrainedAndLapsedGrants(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &ledgerFake{
		grants: []yukyu.Grant{
			// Fully used before expiry.
			{
				ID: "g-drained", EmployeeID: "emp-1", FiscalYear: 2023,
				GrantDate:  time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
				Days:       decimal.NewFromInt(5),
				ExpiryDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			},
			// Already past expiry, nothing to salvage.
			{
				ID: "g-lapsed", EmployeeID: "emp-2", FiscalYear: 2022,
				GrantDate:  time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC),
				Days:       decimal.NewFromInt(10),
				ExpiryDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			},
		},
		consumptions: []yukyu.Consumption{
			{ID: "c-1", GrantID: "g-drained", EmployeeID: "emp-1",
				Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				Days: decimal.NewFromInt(5)},
		},
	}

	expiring, err := NewYukyuJobs(repo).FindExpiring(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, expiring)
}

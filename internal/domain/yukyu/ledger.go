package yukyu

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Replay derives a balance snapshot from the raw grant and consumption
// records up to asOf. This is the only way balances are computed: replay
// cannot drift from the ledger the way a stored counter can.
func Replay(grants []Grant, consumptions []Consumption, asOf time.Time) BalanceSnapshot {
	usedByGrant := make(map[string]decimal.Decimal)
	for _, c := range consumptions {
		if c.Date.After(asOf) {
			continue
		}
		usedByGrant[c.GrantID] = usedByGrant[c.GrantID].Add(c.Days)
	}

	snapshot := BalanceSnapshot{AsOf: asOf}

	sorted := make([]Grant, 0, len(grants))
	for _, g := range grants {
		if g.GrantDate.After(asOf) {
			continue
		}
		sorted = append(sorted, g)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].GrantDate.Equal(sorted[j].GrantDate) {
			return sorted[i].GrantDate.Before(sorted[j].GrantDate)
		}
		return sorted[i].FiscalYear < sorted[j].FiscalYear
	})

	for _, g := range sorted {
		snapshot.EmployeeID = g.EmployeeID

		used := usedByGrant[g.ID]
		remaining := g.Days.Sub(used)
		expired := decimal.Zero
		if g.ExpiredAt(asOf) && remaining.IsPositive() {
			expired = remaining
			remaining = decimal.Zero
		}

		snapshot.Grants = append(snapshot.Grants, GrantBalance{
			GrantID:    g.ID,
			FiscalYear: g.FiscalYear,
			GrantDate:  g.GrantDate,
			ExpiryDate: g.ExpiryDate,
			Granted:    g.Days,
			Used:       used,
			Remaining:  remaining,
			Expired:    expired,
		})

		snapshot.TotalGranted = snapshot.TotalGranted.Add(g.Days)
		snapshot.TotalUsed = snapshot.TotalUsed.Add(used)
		snapshot.TotalRemaining = snapshot.TotalRemaining.Add(remaining)
		snapshot.TotalExpired = snapshot.TotalExpired.Add(expired)
	}

	return snapshot
}

// AllocateLIFO splits a consumption request across grants: the most recently
// granted, non-expired grant is drawn down first, then the next-most-recent.
// Returns ErrInsufficientBalance without any allocation when the non-expired
// remainder across all grants is less than requested.
//
// Availability counts every existing consumption record regardless of its
// date, so a back-dated request cannot double-spend days a later request
// already took. Expiry is judged against the consumption date.
func AllocateLIFO(grants []Grant, consumptions []Consumption, date time.Time, days decimal.Decimal) ([]Consumption, error) {
	if !days.IsPositive() {
		return nil, ErrInvalidConsumption
	}

	usedByGrant := make(map[string]decimal.Decimal)
	for _, c := range consumptions {
		usedByGrant[c.GrantID] = usedByGrant[c.GrantID].Add(c.Days)
	}

	// Candidates: granted on or before the consumption date, not expired,
	// with days left. LIFO order: newest grant first.
	candidates := make([]Grant, 0, len(grants))
	for _, g := range grants {
		if g.GrantDate.After(date) || g.ExpiredAt(date) {
			continue
		}
		if g.Days.Sub(usedByGrant[g.ID]).IsPositive() {
			candidates = append(candidates, g)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].GrantDate.Equal(candidates[j].GrantDate) {
			return candidates[i].GrantDate.After(candidates[j].GrantDate)
		}
		if candidates[i].FiscalYear != candidates[j].FiscalYear {
			return candidates[i].FiscalYear > candidates[j].FiscalYear
		}
		return candidates[i].ID > candidates[j].ID
	})

	available := decimal.Zero
	for _, g := range candidates {
		available = available.Add(g.Days.Sub(usedByGrant[g.ID]))
	}
	if available.LessThan(days) {
		return nil, ErrInsufficientBalance
	}

	var allocations []Consumption
	remaining := days
	for _, g := range candidates {
		if !remaining.IsPositive() {
			break
		}
		left := g.Days.Sub(usedByGrant[g.ID])
		take := decimal.Min(left, remaining)
		allocations = append(allocations, Consumption{
			GrantID:    g.ID,
			EmployeeID: g.EmployeeID,
			Date:       date,
			Days:       take,
		})
		remaining = remaining.Sub(take)
	}

	return allocations, nil
}

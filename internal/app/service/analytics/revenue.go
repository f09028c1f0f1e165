// Package analytics computes cross-tenant revenue analytics over platform plan
// subscriptions: MRR/ARR, churn, distributions, per-user value and forecasts.
//
// Historical series are point-in-time approximations: a subscription is placed
// in every bucket ending after its creation and is judged by its current
// status. A subscription canceled last week therefore disappears from every
// past bucket too. RevenueDailySnapshot rows are the only true history.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/fatflowers/subtrack/pkg/money"
	"github.com/fatflowers/subtrack/pkg/types"
)

const DefaultLifespanMonths = 24

// Subscription is a platform plan subscription with Amount already expressed in
// the reporting currency.
type Subscription struct {
	ID           string
	UserID       string
	PlanID       string
	Amount       float64
	BillingCycle string
	Status       types.SubscriptionStatus
	CreatedAt    time.Time
	CanceledAt   *time.Time
}

type User struct {
	ID        string
	CreatedAt time.Time
}

// countsTowardMRR reports whether the subscription's current status is billable.
func (s Subscription) countsTowardMRR() bool {
	switch types.ParseSubscriptionStatus(string(s.Status)) {
	case types.SubscriptionStatusActive, types.SubscriptionStatusTrial:
		return true
	}
	return false
}

func (s Subscription) canceled() bool {
	return types.ParseSubscriptionStatus(string(s.Status)) == types.SubscriptionStatusCanceled
}

// MonthlyAmount normalizes for MRR. Only monthly, quarterly and yearly plans
// exist on the platform, so every other cadence is taken as already monthly.
func MonthlyAmount(amount float64, cycle string) float64 {
	switch types.BillingCycle(strings.ToLower(strings.TrimSpace(cycle))) {
	case types.BillingCycleYearly, types.BillingCycleAnnual:
		return amount / 12
	case types.BillingCycleQuarterly:
		return amount / 3
	default:
		return amount
	}
}

func mrr(subs []Subscription) float64 {
	var total float64
	for _, s := range subs {
		if s.countsTowardMRR() {
			total += MonthlyAmount(s.Amount, s.BillingCycle)
		}
	}
	return total
}

// MRR sums the monthly amount of active and trial subscriptions.
func MRR(subs []Subscription) float64 {
	return money.Round2(mrr(subs))
}

func ARR(subs []Subscription) float64 {
	return money.Round2(mrr(subs) * 12)
}

// ChurnRate is the share of subscriptions active at start that were canceled
// within [start, end], as a percentage. A subscription counts as active at
// start when it was created by then and is still billable or was canceled no
// earlier than start.
func ChurnRate(subs []Subscription, start, end time.Time) float64 {
	var activeAtStart, canceledInPeriod int
	for _, s := range subs {
		if s.CreatedAt.After(start) {
			continue
		}
		canceledAt := s.canceledAt()
		switch {
		case s.countsTowardMRR():
			activeAtStart++
		case s.canceled() && canceledAt != nil && !canceledAt.Before(start):
			activeAtStart++
			if !canceledAt.After(end) {
				canceledInPeriod++
			}
		}
	}
	if activeAtStart == 0 {
		return 0
	}
	return money.Round2(float64(canceledInPeriod) / float64(activeAtStart) * 100)
}

func (s Subscription) canceledAt() *time.Time {
	if !s.canceled() {
		return nil
	}
	return s.CanceledAt
}

func RetentionRate(subs []Subscription, start, end time.Time) float64 {
	return money.Round2(100 - ChurnRate(subs, start, end))
}

type DistributionRow struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StatusDistribution counts subscriptions per status.
func StatusDistribution(subs []Subscription) []DistributionRow {
	return distribution(subs, func(s Subscription) string {
		return string(types.ParseSubscriptionStatus(string(s.Status)))
	}, nil)
}

// PlanDistribution counts subscriptions per plan; names maps plan ids to labels.
func PlanDistribution(subs []Subscription, names map[string]string) []DistributionRow {
	return distribution(subs, func(s Subscription) string { return s.PlanID }, names)
}

func distribution(subs []Subscription, key func(Subscription) string, names map[string]string) []DistributionRow {
	var order []string
	counts := make(map[string]int)
	for _, s := range subs {
		k := key(s)
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	rows := make([]DistributionRow, 0, len(order))
	for _, k := range order {
		label := k
		if n, ok := names[k]; ok && n != "" {
			label = n
		}
		rows = append(rows, DistributionRow{
			Label:      label,
			Count:      counts[k],
			Percentage: money.Percent(float64(counts[k]), float64(len(subs)), 2),
		})
	}
	return rows
}

// ARPU is average revenue per user, 0 when there are no users.
func ARPU(totalRevenue float64, totalUsers int) float64 {
	if totalUsers <= 0 {
		return 0
	}
	return money.Round2(totalRevenue / float64(totalUsers))
}

// CLV is customer lifetime value; lifespanMonths <= 0 uses 24.
func CLV(arpu, lifespanMonths float64) float64 {
	if lifespanMonths <= 0 {
		lifespanMonths = DefaultLifespanMonths
	}
	return money.Round2(arpu * lifespanMonths)
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type Comparison struct {
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Trend         Trend   `json:"trend"`
}

// ComparePeriods compares two values. A zero previous value reports a 100%
// change regardless of current.
func ComparePeriods(current, previous float64) Comparison {
	change := current - previous
	changePercent := 100.0
	if previous != 0 {
		changePercent = change / previous * 100
	}
	trend := TrendStable
	switch {
	case math.Abs(changePercent) < 1:
	case changePercent > 0:
		trend = TrendUp
	default:
		trend = TrendDown
	}
	return Comparison{
		Current:       money.Round2(current),
		Previous:      money.Round2(previous),
		Change:        money.Round2(change),
		ChangePercent: money.Round2(changePercent),
		Trend:         trend,
	}
}

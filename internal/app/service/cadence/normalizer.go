// Package cadence converts amounts billed at any cadence into monthly and
// annual equivalents.
//
// The ratios are fixed approximations: a month has 4.33 weeks and 30 days when
// normalizing monthly, a year has 52 weeks and 365 days when normalizing
// annually. Consequently ToAnnual is only exactly 12×ToMonthly for
// monthly, quarterly and yearly cadences. Unknown cadences are not errors:
// ToMonthly treats them as already monthly and ToAnnual multiplies by 12.
package cadence

import (
	"strings"

	"github.com/fatflowers/subtrack/pkg/types"
)

const (
	WeeksPerMonth = 4.33
	DaysPerMonth  = 30
	WeeksPerYear  = 52
	DaysPerYear   = 365
)

// Normalize case-folds cycle and maps the aliases onto a known BillingCycle.
// ok is false for cadences the normalizer does not recognize.
func Normalize(cycle string) (types.BillingCycle, bool) {
	switch c := types.BillingCycle(strings.ToLower(strings.TrimSpace(cycle))); c {
	case types.BillingCycleDaily, types.BillingCycleWeekly, types.BillingCycleMonthly, types.BillingCycleQuarterly:
		return c, true
	case types.BillingCycleYearly, types.BillingCycleAnnual:
		return types.BillingCycleYearly, true
	default:
		return c, false
	}
}

// IsMonthly reports whether cycle is exactly "monthly", ignoring case.
func IsMonthly(cycle string) bool {
	c, _ := Normalize(cycle)
	return c == types.BillingCycleMonthly
}

// ToMonthly returns the monthly equivalent of amount billed every cycle.
func ToMonthly(amount float64, cycle string) float64 {
	c, _ := Normalize(cycle)
	switch c {
	case types.BillingCycleYearly:
		return amount / 12
	case types.BillingCycleQuarterly:
		return amount / 3
	case types.BillingCycleWeekly:
		return amount * WeeksPerMonth
	case types.BillingCycleDaily:
		return amount * DaysPerMonth
	default:
		return amount
	}
}

// ToAnnual returns the annual equivalent of amount billed every cycle.
func ToAnnual(amount float64, cycle string) float64 {
	c, _ := Normalize(cycle)
	switch c {
	case types.BillingCycleYearly:
		return amount
	case types.BillingCycleQuarterly:
		return amount * 4
	case types.BillingCycleWeekly:
		return amount * WeeksPerYear
	case types.BillingCycleDaily:
		return amount * DaysPerYear
	default:
		return amount * 12
	}
}

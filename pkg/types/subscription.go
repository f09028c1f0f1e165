package types

import "strings"

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusTrial    SubscriptionStatus = "trial"
	SubscriptionStatusPaused   SubscriptionStatus = "paused"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// ParseSubscriptionStatus folds case and surrounding whitespace; values outside
// the known set are returned as-is so callers can still report them.
func ParseSubscriptionStatus(s string) SubscriptionStatus {
	return SubscriptionStatus(strings.ToLower(strings.TrimSpace(s)))
}

// BillingCycle is the billing cadence string as stored. It is not validated on
// write; interpretation happens in the cadence package.
type BillingCycle string

const (
	BillingCycleDaily     BillingCycle = "daily"
	BillingCycleWeekly    BillingCycle = "weekly"
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"
	BillingCycleAnnual    BillingCycle = "annual"
)

package cadence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatflowers/subtrack/pkg/types"
)

func TestToMonthly(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		cycle  string
		want   float64
	}{
		{"monthly", 10, "monthly", 10},
		{"yearly", 120, "yearly", 10},
		{"annual alias", 120, "annual", 10},
		{"quarterly", 30, "quarterly", 10},
		{"weekly uses 4.33", 10, "weekly", 43.3},
		{"daily uses 30", 2, "daily", 60},
		{"case folded", 120, "YEARLY", 10},
		{"trimmed", 30, "  Quarterly ", 10},
		{"unknown is identity", 25, "fortnightly", 25},
		{"empty is identity", 25, "", 25},
		{"zero amount", 0, "weekly", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ToMonthly(tt.amount, tt.cycle), 1e-9)
		})
	}
}

func TestToAnnual(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		cycle  string
		want   float64
	}{
		{"monthly", 10, "monthly", 120},
		{"yearly", 120, "Yearly", 120},
		{"annual alias", 120, "ANNUAL", 120},
		{"quarterly", 30, "quarterly", 120},
		{"weekly uses 52", 10, "weekly", 520},
		{"daily uses 365", 2, "daily", 730},
		{"unknown multiplies by 12", 25, "biweekly", 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ToAnnual(tt.amount, tt.cycle), 1e-9)
		})
	}
}

func TestRoundTrip_ExactCadences(t *testing.T) {
	for _, c := range []string{"monthly", "yearly", "quarterly", "Annual"} {
		for _, x := range []float64{0, 1, 9.99, 129000} {
			// the annual figure is itself a yearly amount
			assert.InDelta(t, ToMonthly(x, c), ToMonthly(ToAnnual(x, c), "yearly"), 1e-9, "cycle=%s x=%v", c, x)
			assert.InDelta(t, ToAnnual(x, c), 12*ToMonthly(x, c), 1e-9, "cycle=%s x=%v", c, x)
		}
	}
}

func TestApproximateCadences_NotTwelveFold(t *testing.T) {
	// 52 weeks vs 12*4.33 and 365 days vs 12*30 are deliberately different.
	assert.NotEqual(t, ToAnnual(10, "weekly"), 12*ToMonthly(10, "weekly"))
	assert.NotEqual(t, ToAnnual(10, "daily"), 12*ToMonthly(10, "daily"))
	// unknown cadences: identity monthly, x12 annual, which happens to agree
	assert.Equal(t, ToAnnual(10, "odd"), 12*ToMonthly(10, "odd"))
}

func TestNormalize(t *testing.T) {
	c, ok := Normalize("Annual")
	require.True(t, ok)
	require.Equal(t, types.BillingCycleYearly, c)

	c, ok = Normalize(" WEEKLY")
	require.True(t, ok)
	require.Equal(t, types.BillingCycleWeekly, c)

	_, ok = Normalize("lifetime")
	require.False(t, ok)

	require.True(t, IsMonthly("MONTHLY"))
	require.False(t, IsMonthly("quarterly"))
}

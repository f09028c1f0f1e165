// Package spending aggregates a tenant's tracked subscriptions into dashboard
// figures in a single display currency.
package spending

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/fatflowers/subtrack/internal/app/service/cadence"
	"github.com/fatflowers/subtrack/internal/app/service/currency"
	"github.com/fatflowers/subtrack/pkg/logctx"
	"github.com/fatflowers/subtrack/pkg/money"
	"github.com/fatflowers/subtrack/pkg/types"
)

const (
	UncategorizedID   = "uncategorized"
	UncategorizedName = "Uncategorized"
	UnassignedID      = "unassigned"
	UnassignedName    = "Unassigned"

	DefaultSavingsPercent = 15
	DefaultUpcomingDays   = 7
)

// Options controls which records are counted and the output currency.
type Options struct {
	// IncludeInactive counts every record instead of only active ones.
	IncludeInactive bool
	// DisplayCurrency defaults to the base currency.
	DisplayCurrency string
}

// Lookups resolves category and member ids to names.
type Lookups struct {
	Categories map[string]string
	Members    map[string]string
}

type BreakdownRow struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type UpcomingRenewal struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Amount      float64   `json:"amount"`
	Converted   bool      `json:"converted"`
	NextBilling time.Time `json:"next_billing"`
	DaysUntil   int       `json:"days_until"`
}

type Summary struct {
	Currency       string            `json:"currency"`
	MonthlyTotal   float64           `json:"monthly_total"`
	AnnualTotal    float64           `json:"annual_total"`
	AverageCost    float64           `json:"average_cost"`
	ActiveCount    int               `json:"active_count"`
	CategoryTotals []BreakdownRow    `json:"category_totals"`
	MemberTotals   []BreakdownRow    `json:"member_totals"`
	SavingsPercent float64           `json:"savings_percent"`
	AnnualSavings  float64           `json:"annual_savings"`
	Upcoming       []UpcomingRenewal `json:"upcoming"`
	// Unconverted counts records whose amount could not be converted and was
	// summed in its original currency.
	Unconverted int `json:"unconverted"`
}

// Service is the per-tenant aggregation engine. Each call works on its own
// input and holds no state between calls.
type Service struct {
	conv           *currency.Converter
	savingsPercent float64
	now            func() time.Time
	log            *zap.SugaredLogger
}

func NewService(conv *currency.Converter, savingsPercent float64, log *zap.SugaredLogger) *Service {
	if savingsPercent <= 0 {
		savingsPercent = DefaultSavingsPercent
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{conv: conv, savingsPercent: savingsPercent, now: time.Now, log: log}
}

// batch is a filtered record set with every currency pair it needs resolved.
type batch struct {
	recs    []Record
	table   *currency.RateTable
	display string
}

func (s *Service) prepare(ctx context.Context, recs []Record, opts Options, keep func(Record) bool) *batch {
	display := s.conv.Pair("", opts.DisplayCurrency).To
	counted := lo.Filter(recs, func(r Record, _ int) bool {
		if keep != nil {
			return keep(r)
		}
		return opts.IncludeInactive || r.IsActive()
	})
	pairs := lo.Map(counted, func(r Record, _ int) currency.Pair {
		return currency.Pair{From: r.Currency, To: display}
	})
	return &batch{recs: counted, table: s.conv.Prepare(ctx, pairs), display: display}
}

func (b *batch) monthly(r Record) currency.Result {
	return b.table.Convert(cadence.ToMonthly(r.Amount, r.BillingCycle), r.Currency, b.display)
}

func (b *batch) annual(r Record) currency.Result {
	return b.table.Convert(cadence.ToAnnual(r.Amount, r.BillingCycle), r.Currency, b.display)
}

func (b *batch) monthlySum() float64 {
	return lo.SumBy(b.recs, func(r Record) float64 { return b.monthly(r).Value })
}

func (b *batch) annualSum() float64 {
	return lo.SumBy(b.recs, func(r Record) float64 { return b.annual(r).Value })
}

func (b *batch) average() float64 {
	if len(b.recs) == 0 {
		return 0
	}
	return b.monthlySum() / float64(len(b.recs))
}

func (b *batch) unconverted() int {
	return lo.CountBy(b.recs, func(r Record) bool { return !b.monthly(r).Converted })
}

// MonthlyTotal sums the monthly equivalent of every counted record.
func (s *Service) MonthlyTotal(ctx context.Context, recs []Record, opts Options) float64 {
	return money.Round2(s.prepare(ctx, recs, opts, nil).monthlySum())
}

// AnnualTotal sums the annual equivalent of every counted record.
func (s *Service) AnnualTotal(ctx context.Context, recs []Record, opts Options) float64 {
	return money.Round2(s.prepare(ctx, recs, opts, nil).annualSum())
}

// AverageCost is the mean monthly cost of the counted records, 0 when none.
func (s *Service) AverageCost(ctx context.Context, recs []Record, opts Options) float64 {
	return money.Round2(s.prepare(ctx, recs, opts, nil).average())
}

func (s *Service) CategoryTotals(ctx context.Context, recs []Record, names map[string]string, opts Options) []BreakdownRow {
	return s.prepare(ctx, recs, opts, nil).breakdown(categoryKey, names, UncategorizedName)
}

func (s *Service) MemberTotals(ctx context.Context, recs []Record, names map[string]string, opts Options) []BreakdownRow {
	return s.prepare(ctx, recs, opts, nil).breakdown(memberKey, names, UnassignedName)
}

// AnnualSavingsEstimate estimates what switching monthly plans to yearly
// billing would save per year. Only active, exactly-monthly records count;
// percent <= 0 uses the configured default.
func (s *Service) AnnualSavingsEstimate(ctx context.Context, recs []Record, percent float64, opts Options) float64 {
	if percent <= 0 {
		percent = s.savingsPercent
	}
	b := s.prepare(ctx, recs, opts, monthlyActive)
	return money.Round2(b.monthlySum() * 12 * percent / 100)
}

// UpcomingRenewals lists counted records billing within days of now, soonest first.
func (s *Service) UpcomingRenewals(ctx context.Context, recs []Record, days int, opts Options) []UpcomingRenewal {
	return s.prepare(ctx, recs, opts, nil).upcoming(s.now(), days)
}

// Summary computes every dashboard figure from a single rate table.
func (s *Service) Summary(ctx context.Context, recs []Record, lookups Lookups, savingsPercent float64, opts Options) *Summary {
	if savingsPercent <= 0 {
		savingsPercent = s.savingsPercent
	}
	b := s.prepare(ctx, recs, opts, nil)
	// every monthly active record is already in b, so its rate table covers them
	savings := &batch{recs: lo.Filter(b.recs, func(r Record, _ int) bool { return monthlyActive(r) }), table: b.table, display: b.display}

	sum := &Summary{
		Currency:       b.display,
		MonthlyTotal:   money.Round2(b.monthlySum()),
		AnnualTotal:    money.Round2(b.annualSum()),
		AverageCost:    money.Round2(b.average()),
		ActiveCount:    len(b.recs),
		CategoryTotals: b.breakdown(categoryKey, lookups.Categories, UncategorizedName),
		MemberTotals:   b.breakdown(memberKey, lookups.Members, UnassignedName),
		SavingsPercent: savingsPercent,
		AnnualSavings:  money.Round2(savings.monthlySum() * 12 * savingsPercent / 100),
		Upcoming:       b.upcoming(s.now(), DefaultUpcomingDays),
		Unconverted:    b.unconverted(),
	}
	if sum.Unconverted > 0 {
		logctx.FromCtx(ctx, s.log).Warnw("summary includes unconverted amounts",
			"currency", b.display, "unconverted", sum.Unconverted)
	}
	return sum
}

func monthlyActive(r Record) bool {
	return r.IsActive() && cadence.IsMonthly(r.BillingCycle)
}

func categoryKey(r Record) string {
	if r.CategoryID == nil || *r.CategoryID == "" {
		return UncategorizedID
	}
	return *r.CategoryID
}

func memberKey(r Record) string {
	if r.MemberID == nil || *r.MemberID == "" {
		return UnassignedID
	}
	return *r.MemberID
}

type group struct {
	id    string
	total float64
	count int
}

// breakdown groups by key in first-seen order, then sorts by total
// descending; equal totals keep first-seen order.
func (b *batch) breakdown(key func(Record) string, names map[string]string, sentinel string) []BreakdownRow {
	var groups []*group
	index := make(map[string]*group)
	var grand float64
	for _, r := range b.recs {
		k := key(r)
		g, ok := index[k]
		if !ok {
			g = &group{id: k}
			index[k] = g
			groups = append(groups, g)
		}
		v := b.monthly(r).Value
		g.total += v
		g.count++
		grand += v
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].total > groups[j].total })

	rows := make([]BreakdownRow, 0, len(groups))
	for _, g := range groups {
		name, ok := names[g.id]
		if !ok || name == "" {
			name = sentinel
		}
		rows = append(rows, BreakdownRow{
			ID:         g.id,
			Name:       name,
			Total:      money.Round2(g.total),
			Count:      g.count,
			Percentage: money.Percent(g.total, grand, 1),
		})
	}
	return rows
}

func (b *batch) upcoming(now time.Time, days int) []UpcomingRenewal {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	until := now.AddDate(0, 0, days)
	due := lo.Filter(b.recs, func(r Record, _ int) bool {
		return r.NextBilling != nil && !r.NextBilling.Before(now) && !r.NextBilling.After(until)
	})
	sort.SliceStable(due, func(i, j int) bool { return due[i].NextBilling.Before(*due[j].NextBilling) })

	return lo.Map(due, func(r Record, _ int) UpcomingRenewal {
		res := b.table.Convert(r.Amount, r.Currency, b.display)
		return UpcomingRenewal{
			ID:          r.ID,
			Name:        r.Name,
			Amount:      money.Round2(res.Value),
			Converted:   res.Converted,
			NextBilling: *r.NextBilling,
			DaysUntil:   int(r.NextBilling.Sub(now).Hours() / 24),
		}
	})
}

// IsActive reports whether the record counts toward default aggregates.
func (r Record) IsActive() bool {
	return types.ParseSubscriptionStatus(string(r.Status)) == types.SubscriptionStatusActive
}

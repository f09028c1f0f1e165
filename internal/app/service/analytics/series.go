package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatflowers/subtrack/pkg/money"
	"github.com/fatflowers/subtrack/pkg/types"
)

var ErrInvalidPeriod = errors.New("invalid analytics period")

// ResolvePeriod returns the [start, end] window of period ending at now.
// An empty period means 30d; custom requires both bounds with start before end.
func ResolvePeriod(period types.AnalyticsPeriod, now time.Time, customStart, customEnd *time.Time) (time.Time, time.Time, error) {
	switch period {
	case types.AnalyticsPeriod7d:
		return now.AddDate(0, 0, -7), now, nil
	case types.AnalyticsPeriod30d, "":
		return now.AddDate(0, 0, -30), now, nil
	case types.AnalyticsPeriod90d:
		return now.AddDate(0, 0, -90), now, nil
	case types.AnalyticsPeriod1y:
		return now.AddDate(-1, 0, 0), now, nil
	case types.AnalyticsPeriodCustom:
		if customStart == nil || customEnd == nil || !customStart.Before(*customEnd) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: custom period needs start before end", ErrInvalidPeriod)
		}
		return *customStart, *customEnd, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}
}

// DefaultGranularity picks daily buckets up to a month, weekly for a quarter
// and monthly beyond.
func DefaultGranularity(period types.AnalyticsPeriod) types.Granularity {
	switch period {
	case types.AnalyticsPeriod90d:
		return types.GranularityWeek
	case types.AnalyticsPeriod1y:
		return types.GranularityMonth
	default:
		return types.GranularityDay
	}
}

// Bucket is a half-open [Start, End) interval; the last bucket ends at the
// window end.
type Bucket struct {
	Start time.Time
	End   time.Time
}

func truncate(t time.Time, gran types.Granularity) time.Time {
	t = t.UTC()
	if gran == types.GranularityMonth {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func step(t time.Time, gran types.Granularity, n int) time.Time {
	switch gran {
	case types.GranularityWeek:
		return t.AddDate(0, 0, 7*n)
	case types.GranularityMonth:
		return t.AddDate(0, n, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}

func label(t time.Time, gran types.Granularity) string {
	if gran == types.GranularityMonth {
		return t.Format("2006-01")
	}
	return t.Format(time.DateOnly)
}

// Buckets splits [start, end] into granularity-aligned buckets.
func Buckets(start, end time.Time, gran types.Granularity) []Bucket {
	var buckets []Bucket
	for b := truncate(start, gran); b.Before(end); b = step(b, gran, 1) {
		e := step(b, gran, 1)
		if e.After(end) {
			e = end
		}
		buckets = append(buckets, Bucket{Start: b, End: e})
	}
	return buckets
}

type TimePoint struct {
	Date   string    `json:"date"`
	Amount float64   `json:"amount"`
	Count  int       `json:"count"`
	Start  time.Time `json:"-"`
}

// RevenueSeries reports, per bucket, the MRR and count of currently billable
// subscriptions created by the bucket end.
func RevenueSeries(subs []Subscription, start, end time.Time, gran types.Granularity) []TimePoint {
	buckets := Buckets(start, end, gran)
	points := make([]TimePoint, 0, len(buckets))
	for _, b := range buckets {
		var amount float64
		var count int
		for _, s := range subs {
			if !s.countsTowardMRR() || s.CreatedAt.After(b.End) {
				continue
			}
			amount += MonthlyAmount(s.Amount, s.BillingCycle)
			count++
		}
		points = append(points, TimePoint{Date: label(b.Start, gran), Amount: money.Round2(amount), Count: count, Start: b.Start})
	}
	return points
}

type GrowthPoint struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
	New   int    `json:"new"`
}

// UserGrowthSeries reports cumulative users at each bucket end and how many
// joined since the previous bucket.
func UserGrowthSeries(users []User, start, end time.Time, gran types.Granularity) []GrowthPoint {
	buckets := Buckets(start, end, gran)
	points := make([]GrowthPoint, 0, len(buckets))
	if len(buckets) == 0 {
		return points
	}
	prev := 0
	for _, u := range users {
		if u.CreatedAt.Before(buckets[0].Start) {
			prev++
		}
	}
	for _, b := range buckets {
		total := 0
		for _, u := range users {
			if !u.CreatedAt.After(b.End) {
				total++
			}
		}
		points = append(points, GrowthPoint{Date: label(b.Start, gran), Total: total, New: total - prev})
		prev = total
	}
	return points
}

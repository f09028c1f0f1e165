package analytics

import (
	"math"

	"github.com/fatflowers/subtrack/pkg/money"
	"github.com/fatflowers/subtrack/pkg/types"
)

type ForecastPoint struct {
	Date      string  `json:"date"`
	Predicted float64 `json:"predicted"`
	Lower     float64 `json:"lower"`
	Upper     float64 `json:"upper"`
}

// linearRegression fits y = slope*x + intercept with x = 0..n-1.
func linearRegression(ys []float64) (slope, intercept float64) {
	n := float64(len(ys))
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// residualStdDev is the population standard deviation of in-sample residuals.
func residualStdDev(ys []float64, slope, intercept float64) float64 {
	var ss float64
	for i, y := range ys {
		r := y - (slope*float64(i) + intercept)
		ss += r * r
	}
	return math.Sqrt(ss / float64(len(ys)))
}

// Forecast extrapolates series horizon buckets ahead with a least-squares line.
// Predictions and lower bounds are clamped at zero; the band is two residual
// standard deviations wide on each side. Fewer than two points yield nothing.
func Forecast(series []TimePoint, horizon int, gran types.Granularity) []ForecastPoint {
	if len(series) < 2 || horizon <= 0 {
		return []ForecastPoint{}
	}
	ys := make([]float64, len(series))
	for i, p := range series {
		ys[i] = p.Amount
	}
	slope, intercept := linearRegression(ys)
	band := 2 * residualStdDev(ys, slope, intercept)

	n := len(series)
	last := series[n-1].Start
	points := make([]ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		predicted := math.Max(0, slope*float64(n+i-1)+intercept)
		date := ""
		if !last.IsZero() {
			date = label(step(last, gran, i), gran)
		}
		points = append(points, ForecastPoint{
			Date:      date,
			Predicted: money.Round2(predicted),
			Lower:     money.Round2(math.Max(0, predicted-band)),
			Upper:     money.Round2(predicted + band),
		})
	}
	return points
}

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatflowers/subtrack/pkg/types"
)

func monthlySeries(amounts ...float64) []TimePoint {
	points := make([]TimePoint, len(amounts))
	for i, a := range amounts {
		start := at(2026, 7, 1).AddDate(0, i, 0)
		points[i] = TimePoint{Date: label(start, types.GranularityMonth), Amount: a, Start: start}
	}
	return points
}

func TestForecast_PerfectLine(t *testing.T) {
	got := Forecast(monthlySeries(100, 110, 120, 130), 2, types.GranularityMonth)

	assert.Equal(t, []ForecastPoint{
		{Date: "2026-11", Predicted: 140, Lower: 140, Upper: 140},
		{Date: "2026-12", Predicted: 150, Lower: 150, Upper: 150},
	}, got)
}

func TestForecast_ClampsAtZero(t *testing.T) {
	got := Forecast(monthlySeries(30, 20, 10), 2, types.GranularityMonth)

	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, 0.0, p.Predicted)
		assert.Equal(t, 0.0, p.Lower)
		assert.GreaterOrEqual(t, p.Upper, 0.0)
	}
}

func TestForecast_BandIsTwoResidualStdDevs(t *testing.T) {
	got := Forecast(monthlySeries(10, 20, 10, 20), 1, types.GranularityMonth)

	require.Len(t, got, 1)
	assert.Equal(t, 20.0, got[0].Predicted)
	assert.InDelta(t, 11.06, got[0].Lower, 0.001)
	assert.InDelta(t, 28.94, got[0].Upper, 0.001)
}

func TestForecast_NotEnoughInput(t *testing.T) {
	tests := []struct {
		name    string
		series  []TimePoint
		horizon int
	}{
		{name: "no points", series: nil, horizon: 3},
		{name: "single point", series: monthlySeries(100), horizon: 3},
		{name: "zero horizon", series: monthlySeries(1, 2, 3), horizon: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Forecast(tt.series, tt.horizon, types.GranularityMonth)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestForecast_DailyDates(t *testing.T) {
	series := []TimePoint{
		{Amount: 1, Start: at(2026, 10, 13)},
		{Amount: 2, Start: at(2026, 10, 14)},
	}
	got := Forecast(series, 1, types.GranularityDay)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-10-15", got[0].Date)
	assert.Equal(t, 3.0, got[0].Predicted)
}

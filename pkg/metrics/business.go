package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const businessSubsystem = "subtrack"

var RateResolutions = &Metric{
	ID:          "rateResolutions",
	Name:        "currency_rate_resolutions_total",
	Description: "Exchange rate lookups partitioned by how they were resolved.",
	Type:        "counter_vec",
	Args:        []string{"outcome"},
}

var ConversionFallbacks = &Metric{
	ID:          "conversionFallbacks",
	Name:        "currency_conversion_fallbacks_total",
	Description: "Conversions that returned the unconverted amount because no rate was available.",
	Type:        "counter_vec",
	Args:        []string{"from", "to"},
}

var StatisticDuration = &Metric{
	ID:          "statisticDur",
	Name:        "statistic_dur_ms",
	Description: "Revenue statistic data item evaluation latency in milliseconds.",
	Type:        "histogram_vec",
	Args:        []string{"item"},
}

var businessMetrics = []*Metric{RateResolutions, ConversionFallbacks, StatisticDuration}

var registerOnce sync.Once

// RegisterBusinessMetrics creates and registers the domain collectors once per
// process. Collectors stay usable even if registration fails.
func RegisterBusinessMetrics(logger Logger) {
	registerOnce.Do(func() {
		if logger == nil {
			logger = newDefaultLogger()
		}
		for _, m := range businessMetrics {
			c := NewMetric(m, businessSubsystem)
			if err := prometheus.Register(c); err != nil {
				logger.Errorf("%s could not be registered in Prometheus, err=%v", m.Name, err)
			}
			m.MetricCollector = c
		}
	})
}

// IncCounterVec increments a counter_vec metric if it has been registered.
func IncCounterVec(m *Metric, labels ...string) {
	if cv, ok := m.MetricCollector.(*prometheus.CounterVec); ok {
		cv.WithLabelValues(labels...).Inc()
	}
}

// ObserveHistogramVec records v on a histogram_vec metric if it has been registered.
func ObserveHistogramVec(m *Metric, v float64, labels ...string) {
	if hv, ok := m.MetricCollector.(*prometheus.HistogramVec); ok {
		hv.WithLabelValues(labels...).Observe(v)
	}
}

package types

// AnalyticsPeriod selects the reporting window of revenue analytics.
type AnalyticsPeriod string

const (
	AnalyticsPeriod7d     AnalyticsPeriod = "7d"
	AnalyticsPeriod30d    AnalyticsPeriod = "30d"
	AnalyticsPeriod90d    AnalyticsPeriod = "90d"
	AnalyticsPeriod1y     AnalyticsPeriod = "1y"
	AnalyticsPeriodCustom AnalyticsPeriod = "custom"
)

// Granularity is the bucket width of a time series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

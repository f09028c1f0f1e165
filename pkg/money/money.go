package money

import "github.com/shopspring/decimal"

// Round2 rounds half away from zero to two decimal places. Amounts are summed
// as float64 and only rounded at the point they are returned.
func Round2(v float64) float64 {
	return Round(v, 2)
}

// Round rounds v to places decimals using decimal arithmetic, so values such as
// 1.005 round the way a person reading the figure expects.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Percent returns part/whole*100 rounded to places, or 0 when whole is 0.
func Percent(part, whole float64, places int32) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromFloat(part).
		Div(decimal.NewFromFloat(whole)).
		Mul(decimal.NewFromInt(100)).
		Round(places).
		InexactFloat64()
}

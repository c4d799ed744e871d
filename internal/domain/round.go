package domain

import "github.com/shopspring/decimal"

// Round2 rounds a risk amount to 2 decimal places (億円 precision used by
// snapshots and portfolio totals)
func Round2(v float64) float64 {
	return roundPlaces(v, 2)
}

// Round3 rounds to 3 decimal places (driver contributions, series values and
// scenario samples)
func Round3(v float64) float64 {
	return roundPlaces(v, 3)
}

// Round1 rounds to 1 decimal place (gauge scores)
func Round1(v float64) float64 {
	return roundPlaces(v, 1)
}

func roundPlaces(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

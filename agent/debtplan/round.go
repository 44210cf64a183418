package debtplan

import "github.com/shopspring/decimal"

// All monetary arithmetic is rounded at the point of computation, never
// deferred, so plans are bit-reproducible regardless of where they run.
// Money carries 2 decimal places, monthly rates 6, savings fractions 4.

func round2(v float64) float64 {
	return roundTo(v, 2)
}

func round4(v float64) float64 {
	return roundTo(v, 4)
}

func round6(v float64) float64 {
	return roundTo(v, 6)
}

func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

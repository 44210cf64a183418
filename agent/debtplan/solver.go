package debtplan

import "math"

// RequiredPayment computes the flat monthly payment that fully amortizes
// max(0, debt - bonus) over the given number of months. The value is
// advisory; it is never fed back into the simulation.
func RequiredPayment(debt, monthlyRate float64, months int, bonus float64) float64 {
	effective := math.Max(0, debt-bonus)

	if monthlyRate == 0 {
		return round2(effective / float64(months))
	}

	payment := (monthlyRate * effective) / (1 - math.Pow(1+monthlyRate, -float64(months)))
	return round2(payment)
}

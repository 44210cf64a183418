package debtplan

import "fmt"

// Tolerances for post-hoc invariant checks. Recomputation gets a slightly
// wider band than the negative-balance check because it compounds two
// rounded quantities.
const (
	balanceTolerance   = 0.01
	recomputeTolerance = 0.02
)

// Validate runs the fail-closed invariant checks over a computed plan and
// returns human-readable violations. It never mutates the plan, so running
// it twice yields the same list.
func Validate(plan *Plan) []string {
	var errs []string

	savings := round2(plan.Salary * plan.SavingsRate)
	available := round2(plan.Salary - plan.FixedExpenses - savings)

	if available <= 0 {
		// Nothing left for debt service; no further check is meaningful.
		errs = append(errs, "No cash for debt: expenses+savings >= salary")
		return errs
	}

	for _, otp := range plan.OneTimePayments {
		if otp.Month < 1 || otp.Month > plan.Months {
			errs = append(errs, fmt.Sprintf("Bonus month %d outside 1-%d", otp.Month, plan.Months))
		}
	}

	prevBalance := round2(plan.InitialDebt)

	for _, row := range plan.MonthlyRows {
		if row.RemainingBalance < -balanceTolerance {
			errs = append(errs, fmt.Sprintf("M%d: Negative balance %.2f", row.Month, row.RemainingBalance))
		}

		expected := round2(prevBalance + row.InterestCharged - row.TotalPayment)

		// The balance must not grow in a month whose payment covers at
		// least the interest.
		if row.TotalPayment >= row.InterestCharged {
			if row.RemainingBalance > prevBalance+balanceTolerance {
				errs = append(errs, fmt.Sprintf(
					"M%d: Balance increased. Prev=%.2f, New=%.2f",
					row.Month, prevBalance, row.RemainingBalance))
			}
		}

		if diff := row.RemainingBalance - expected; diff > recomputeTolerance || diff < -recomputeTolerance {
			errs = append(errs, fmt.Sprintf(
				"M%d: Calc mismatch. Expected=%.2f, Got=%.2f",
				row.Month, expected, row.RemainingBalance))
		}

		prevBalance = row.RemainingBalance
	}

	return errs
}

package debtplan

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/rs/zerolog/log"
)

// ValidationError carries the violation list together with the candidate
// plan so callers can show diagnostics. A plan attached to a ValidationError
// must never be persisted.
type ValidationError struct {
	Violations []string
	Plan       *Plan
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("plan validation failed: %s", strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Unwrap() error {
	return contractx.ErrValidation
}

// Engine runs the deterministic month-by-month balance simulation. It is a
// pure function of its inputs apart from the creation-date stamp.
type Engine struct {
	now func() time.Time
}

type EngineOption func(*Engine)

// WithClock overrides the creation-date clock, mainly for tests.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Compute simulates the payoff schedule and validates the result. On
// invariant violations the candidate plan is still returned inside the
// *ValidationError for diagnostic display.
func (e *Engine) Compute(params ParameterSet) (*Plan, error) {
	plan := e.simulate(params)

	violations := Validate(plan)
	if len(violations) > 0 {
		plan.ValidationErrors = violations
		log.Warn().
			Strs("violations", violations).
			Float64("initial_debt", params.InitialDebt).
			Msg("debt plan failed validation")
		return nil, &ValidationError{Violations: violations, Plan: plan}
	}

	return plan, nil
}

// simulate runs the calculation order of the engine contract: interest
// accrues on the pre-payment balance, the fixed regular payment plus any
// one-time payment is applied, and an early payoff clamps the payment so the
// balance lands exactly at zero instead of overshooting.
func (e *Engine) simulate(p ParameterSet) *Plan {
	monthlyRate := round6(p.InterestRatePercent / 100)
	savingsRate := round4(p.SavingsRatePercent / 100)

	savingsAmount := round2(p.Salary * savingsRate)
	regularPayment := round2(p.Salary - p.FixedExpenses - savingsAmount)

	// A month with several one-time entries keeps only the last one; the
	// schedule applies at most one extra payment per month.
	oneTimeByMonth := make(map[int]float64, len(p.OneTimePayments))
	for _, otp := range p.OneTimePayments {
		oneTimeByMonth[otp.Month] = round2(otp.Amount)
	}

	log.Debug().
		Float64("debt", p.InitialDebt).
		Float64("rate_percent", p.InterestRatePercent).
		Float64("regular_payment", regularPayment).
		Int("months", p.Months).
		Msg("starting payoff simulation")

	plan := &Plan{
		PlanName:            fmt.Sprintf("%d-Month Debt Payoff Plan", p.Months),
		Salary:              p.Salary,
		FixedExpenses:       p.FixedExpenses,
		InitialDebt:         p.InitialDebt,
		MonthlyInterestRate: monthlyRate,
		Months:              p.Months,
		SavingsRate:         savingsRate,
		Currency:            p.Currency,
		OneTimePayments:     append([]OneTimePayment(nil), p.OneTimePayments...),
		CreatedDate:         e.now().Format("2006-01-02"),
		PayoffStrategy:      "standard",
	}

	balance := p.InitialDebt
	var totalInterest, totalSaved, totalRegular, totalOneTime float64

	for month := 1; month <= p.Months; month++ {
		// Interest is always charged first, on the balance before payment.
		interest := round2(balance * monthlyRate)

		oneTime := oneTimeByMonth[month]
		regular := regularPayment
		total := round2(regular + oneTime)

		newBalance := round2(balance + interest - total)

		if newBalance < 0 {
			// Clamp: consume the one-time payment first, then the regular
			// payment, so the balance lands exactly at zero.
			overshoot := -newBalance
			if oneTime > 0 {
				reduction := math.Min(oneTime, overshoot)
				oneTime = round2(oneTime - reduction)
				if remaining := overshoot - reduction; remaining > 0 {
					regular = round2(regular - remaining)
				}
			} else {
				regular = round2(balance + interest)
			}
			total = round2(regular + oneTime)
			newBalance = 0
		}

		totalInterest = round2(totalInterest + interest)
		totalSaved = round2(totalSaved + savingsAmount)
		totalRegular = round2(totalRegular + regular)
		totalOneTime = round2(totalOneTime + oneTime)

		plan.MonthlyRows = append(plan.MonthlyRows, MonthlyRow{
			Month:            month,
			Salary:           p.Salary,
			FixedExpenses:    p.FixedExpenses,
			SavingsAmount:    savingsAmount,
			DebtPayment:      regular,
			OneTimePayment:   oneTime,
			TotalPayment:     total,
			InterestCharged:  interest,
			RemainingBalance: newBalance,
		})

		balance = newBalance

		if balance <= 0 {
			payoffMonth := month
			plan.FinalBalance = 0
			plan.IsDebtCleared = true
			plan.MonthsToPayoff = &payoffMonth
			break
		}
	}

	plan.TotalInterestPaid = totalInterest
	plan.TotalSaved = totalSaved
	plan.TotalRegularPayments = totalRegular
	plan.TotalOneTimePayments = totalOneTime

	if !plan.IsDebtCleared {
		plan.FinalBalance = balance

		var totalBonus float64
		for _, otp := range p.OneTimePayments {
			totalBonus = round2(totalBonus + otp.Amount)
		}
		recommended := RequiredPayment(p.InitialDebt, monthlyRate, p.Months, totalBonus)
		plan.RecommendedPayment = &recommended
	}

	return plan
}

// AsValidationError unwraps err into a *ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

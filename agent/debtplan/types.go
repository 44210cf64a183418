package debtplan

// OneTimePayment is an extra, non-recurring payment applied in a specific
// month on top of the regular payment.
type OneTimePayment struct {
	Month       int     `json:"month"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// ParameterSet is the validated input of the engine. Immutable once built;
// refinement produces a new set via the resolver.
type ParameterSet struct {
	Salary              float64          `json:"salary"`
	FixedExpenses       float64          `json:"fixed_expenses"`
	InitialDebt         float64          `json:"debt_amount"`
	InterestRatePercent float64          `json:"interest_rate_percent"`
	Months              int              `json:"months"`
	SavingsRatePercent  float64          `json:"savings_rate_percent"`
	Currency            string           `json:"currency"`
	OneTimePayments     []OneTimePayment `json:"one_time_payments"`
}

// MonthlyRow is one simulated month. Every money field holds at most two
// decimal places.
type MonthlyRow struct {
	Month            int     `json:"month"`
	Salary           float64 `json:"salary"`
	FixedExpenses    float64 `json:"fixed_expenses"`
	SavingsAmount    float64 `json:"savings_amount"`
	DebtPayment      float64 `json:"debt_payment"`
	OneTimePayment   float64 `json:"one_time_payment"`
	TotalPayment     float64 `json:"total_payment"`
	InterestCharged  float64 `json:"interest_charged"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// Plan is the immutable output snapshot and the unit of persistence. The
// field names below are the wire contract with the store and the formatter.
type Plan struct {
	PlanName            string           `json:"plan_name"`
	Salary              float64          `json:"salary"`
	FixedExpenses       float64          `json:"fixed_expenses"`
	InitialDebt         float64          `json:"initial_debt"`
	MonthlyInterestRate float64          `json:"monthly_interest_rate"`
	Months              int              `json:"months"`
	SavingsRate         float64          `json:"savings_rate"`
	Currency            string           `json:"currency"`
	OneTimePayments     []OneTimePayment `json:"one_time_payments"`
	MonthlyRows         []MonthlyRow     `json:"monthly_rows"`

	FinalBalance         float64  `json:"final_balance"`
	TotalSaved           float64  `json:"total_saved"`
	TotalInterestPaid    float64  `json:"total_interest_paid"`
	TotalRegularPayments float64  `json:"total_regular_payments"`
	TotalOneTimePayments float64  `json:"total_one_time_payments"`
	IsDebtCleared        bool     `json:"is_debt_cleared"`
	MonthsToPayoff       *int     `json:"months_to_payoff,omitempty"`
	RecommendedPayment   *float64 `json:"recommended_payment,omitempty"`

	ValidationErrors []string `json:"validation_errors,omitempty"`
	CreatedDate      string   `json:"created_date"`
	PayoffStrategy   string   `json:"payoff_strategy"`
}

// SavingsAmount is the fixed monthly savings derived from the echoed inputs.
func (p *Plan) SavingsAmount() float64 {
	return round2(p.Salary * p.SavingsRate)
}

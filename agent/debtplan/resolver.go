package debtplan

import (
	"regexp"
	"strconv"
	"strings"
)

// The resolver assembles fallback parameters so a follow-up like "make it 8
// months instead" works without the user repeating salary and debt. Echoed
// parameters from the most recent stored plan take precedence over the
// free-text scan, which is best-effort pattern matching and only contributes
// when every required field is found in a single message.

var (
	debtPattern    = regexp.MustCompile(`(\d+[,\s]?\d*)\s*egp.*?debt`)
	ratePattern    = regexp.MustCompile(`(\d+\.?\d*)\s*%.*?interest`)
	salaryPattern  = regexp.MustCompile(`salary.*?(\d+[,\s]?\d*)`)
	expensePattern = regexp.MustCompile(`expenses.*?(\d+[,\s]?\d*)`)
)

// ParamsFromPlan echoes a stored plan back into the raw-parameter shape so
// it can seed the next extraction round.
func ParamsFromPlan(plan *Plan) map[string]any {
	if plan == nil {
		return nil
	}
	currency := plan.Currency
	if strings.TrimSpace(currency) == "" {
		currency = defaultCurrency
	}
	return map[string]any{
		"salary":                plan.Salary,
		"fixed_expenses":        plan.FixedExpenses,
		"debt_amount":           plan.InitialDebt,
		"interest_rate_percent": round2(plan.MonthlyInterestRate * 100),
		"months":                plan.Months,
		"savings_rate_percent":  round2(plan.SavingsRate * 100),
		"currency":              currency,
	}
}

// ParamsFromText scans one human-authored message for the four core
// parameters. All four must match or nothing is contributed. Months and
// savings rate fall back to their conventional defaults.
func ParamsFromText(text string) (map[string]any, bool) {
	content := strings.ToLower(strings.TrimSpace(text))
	if content == "" {
		return nil, false
	}

	debtMatch := debtPattern.FindStringSubmatch(content)
	rateMatch := ratePattern.FindStringSubmatch(content)
	salaryMatch := salaryPattern.FindStringSubmatch(content)
	expenseMatch := expensePattern.FindStringSubmatch(content)

	if debtMatch == nil || rateMatch == nil || salaryMatch == nil || expenseMatch == nil {
		return nil, false
	}

	debt, ok1 := parseAmount(debtMatch[1])
	rate, ok2 := parseAmount(rateMatch[1])
	salary, ok3 := parseAmount(salaryMatch[1])
	expenses, ok4 := parseAmount(expenseMatch[1])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, false
	}

	return map[string]any{
		"debt_amount":           debt,
		"interest_rate_percent": rate,
		"salary":                salary,
		"fixed_expenses":        expenses,
		"months":                6,
		"savings_rate_percent":  defaultSavingsRatePercent,
		"currency":              defaultCurrency,
	}, true
}

// MergeParams fills gaps in fresh with fallback values. Fresh always wins;
// fallback only contributes keys that are absent or nil.
func MergeParams(fresh, fallback map[string]any) map[string]any {
	if fresh == nil {
		fresh = map[string]any{}
	}
	for key, value := range fallback {
		if existing, ok := fresh[key]; !ok || existing == nil {
			fresh[key] = value
		}
	}
	return fresh
}

func parseAmount(raw string) (float64, bool) {
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(raw)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

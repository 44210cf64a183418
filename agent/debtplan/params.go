package debtplan

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
)

const (
	defaultSavingsRatePercent = 10.0
	defaultCurrency           = "EGP"
)

// requiredParamKeys are the fields the extraction oracle must supply.
var requiredParamKeys = []string{
	"salary",
	"fixed_expenses",
	"debt_amount",
	"interest_rate_percent",
	"months",
}

// ExtractionError reports which required parameters are missing after
// defaulting. It wraps contract.ErrParameterExtraction.
type ExtractionError struct {
	Missing []string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("parameter extraction failed: missing %s", strings.Join(e.Missing, ", "))
}

func (e *ExtractionError) Unwrap() error {
	return contractx.ErrParameterExtraction
}

// ParamsFromRaw normalizes an untrusted raw mapping into a validated
// ParameterSet. Defaults are applied before the required-key check, all
// monetary inputs are rounded at first use, and range violations are
// rejected rather than clamped.
func ParamsFromRaw(raw map[string]any) (ParameterSet, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	if _, ok := raw["savings_rate_percent"]; !ok || raw["savings_rate_percent"] == nil {
		raw["savings_rate_percent"] = defaultSavingsRatePercent
	}
	if v, ok := raw["currency"].(string); !ok || strings.TrimSpace(v) == "" {
		raw["currency"] = defaultCurrency
	}
	if _, ok := raw["one_time_payments"]; !ok || raw["one_time_payments"] == nil {
		raw["one_time_payments"] = []any{}
	}

	var missing []string
	for _, key := range requiredParamKeys {
		if v, ok := raw[key]; !ok || v == nil {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return ParameterSet{}, &ExtractionError{Missing: missing}
	}

	salary, err := toMoney(raw["salary"], "salary")
	if err != nil {
		return ParameterSet{}, err
	}
	expenses, err := toMoney(raw["fixed_expenses"], "fixed_expenses")
	if err != nil {
		return ParameterSet{}, err
	}
	debt, err := toMoney(raw["debt_amount"], "debt_amount")
	if err != nil {
		return ParameterSet{}, err
	}
	rate, err := toFloat(raw["interest_rate_percent"], "interest_rate_percent")
	if err != nil {
		return ParameterSet{}, err
	}
	months, err := toInt(raw["months"], "months")
	if err != nil {
		return ParameterSet{}, err
	}
	savingsRate, err := toFloat(raw["savings_rate_percent"], "savings_rate_percent")
	if err != nil {
		return ParameterSet{}, err
	}

	switch {
	case salary <= 0:
		return ParameterSet{}, fmt.Errorf("%w: salary must be > 0", contractx.ErrValidation)
	case expenses <= 0:
		return ParameterSet{}, fmt.Errorf("%w: fixed_expenses must be > 0", contractx.ErrValidation)
	case debt <= 0:
		return ParameterSet{}, fmt.Errorf("%w: debt_amount must be > 0", contractx.ErrValidation)
	case rate < 0:
		return ParameterSet{}, fmt.Errorf("%w: interest_rate_percent must be >= 0", contractx.ErrValidation)
	case months <= 0:
		return ParameterSet{}, fmt.Errorf("%w: months must be > 0", contractx.ErrValidation)
	case savingsRate < 0 || savingsRate > 100:
		return ParameterSet{}, fmt.Errorf("%w: savings_rate_percent must be in [0,100]", contractx.ErrValidation)
	}

	oneTime, err := parseOneTimePayments(raw["one_time_payments"])
	if err != nil {
		return ParameterSet{}, err
	}

	currency, _ := raw["currency"].(string)

	return ParameterSet{
		Salary:              salary,
		FixedExpenses:       expenses,
		InitialDebt:         debt,
		InterestRatePercent: rate,
		Months:              months,
		SavingsRatePercent:  savingsRate,
		Currency:            strings.TrimSpace(currency),
		OneTimePayments:     oneTime,
	}, nil
}

func parseOneTimePayments(v any) ([]OneTimePayment, error) {
	entries, ok := v.([]any)
	if !ok {
		if typed, isTyped := v.([]OneTimePayment); isTyped {
			entries = make([]any, 0, len(typed))
			for _, otp := range typed {
				entries = append(entries, map[string]any{
					"month":       otp.Month,
					"amount":      otp.Amount,
					"description": otp.Description,
				})
			}
		} else {
			return nil, fmt.Errorf("%w: one_time_payments must be a list", contractx.ErrCalculation)
		}
	}

	payments := make([]OneTimePayment, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: one_time_payments[%d] is not an object", contractx.ErrCalculation, i)
		}
		if _, hasMonth := m["month"]; !hasMonth {
			return nil, fmt.Errorf("%w: one_time_payments[%d] is missing month", contractx.ErrCalculation, i)
		}
		if _, hasAmount := m["amount"]; !hasAmount {
			return nil, fmt.Errorf("%w: one_time_payments[%d] is missing amount", contractx.ErrCalculation, i)
		}

		month, err := toInt(m["month"], fmt.Sprintf("one_time_payments[%d].month", i))
		if err != nil {
			return nil, err
		}
		amount, err := toMoney(m["amount"], fmt.Sprintf("one_time_payments[%d].amount", i))
		if err != nil {
			return nil, err
		}
		if month < 1 {
			return nil, fmt.Errorf("%w: one_time_payments[%d].month must be >= 1", contractx.ErrValidation, i)
		}
		if amount <= 0 {
			return nil, fmt.Errorf("%w: one_time_payments[%d].amount must be > 0", contractx.ErrValidation, i)
		}

		desc, _ := m["description"].(string)
		if strings.TrimSpace(desc) == "" {
			desc = "One-time payment"
		}

		payments = append(payments, OneTimePayment{
			Month:       month,
			Amount:      amount,
			Description: desc,
		})
	}

	return payments, nil
}

func toMoney(v any, field string) (float64, error) {
	f, err := toFloat(v, field)
	if err != nil {
		return 0, err
	}
	return round2(f), nil
}

func toFloat(v any, field string) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not numeric", contractx.ErrCalculation, field)
		}
		return f, nil
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not numeric", contractx.ErrCalculation, field)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s is not numeric", contractx.ErrCalculation, field)
	}
}

func toInt(v any, field string) (int, error) {
	f, err := toFloat(v, field)
	if err != nil {
		return 0, err
	}
	i := int(f)
	if float64(i) != f {
		return 0, fmt.Errorf("%w: %s must be an integer", contractx.ErrCalculation, field)
	}
	return i, nil
}

// IsExtractionError reports whether err is a missing-parameter failure and
// returns the missing field names.
func IsExtractionError(err error) ([]string, bool) {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Missing, true
	}
	return nil, false
}

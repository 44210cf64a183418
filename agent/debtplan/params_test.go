package debtplan

import (
	"errors"
	"reflect"
	"testing"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
)

func validRaw() map[string]any {
	return map[string]any{
		"salary":                12000.0,
		"fixed_expenses":        7500.0,
		"debt_amount":           20000.0,
		"interest_rate_percent": 2.5,
		"months":                6,
	}
}

func TestParamsFromRawDefaults(t *testing.T) {
	t.Parallel()

	params, err := ParamsFromRaw(validRaw())
	if err != nil {
		t.Fatalf("ParamsFromRaw() error = %v", err)
	}

	if params.SavingsRatePercent != 10 {
		t.Errorf("savings rate = %v, want default 10", params.SavingsRatePercent)
	}
	if params.Currency != "EGP" {
		t.Errorf("currency = %q, want default EGP", params.Currency)
	}
	if params.OneTimePayments == nil || len(params.OneTimePayments) != 0 {
		t.Errorf("one-time payments = %v, want empty", params.OneTimePayments)
	}
}

func TestParamsFromRawMissingRequired(t *testing.T) {
	t.Parallel()

	raw := validRaw()
	delete(raw, "salary")
	delete(raw, "months")
	raw["debt_amount"] = nil

	_, err := ParamsFromRaw(raw)
	if !errors.Is(err, contractx.ErrParameterExtraction) {
		t.Fatalf("error = %v, want ErrParameterExtraction", err)
	}

	missing, ok := IsExtractionError(err)
	if !ok {
		t.Fatal("error is not an *ExtractionError")
	}
	want := []string{"debt_amount", "months", "salary"}
	if !reflect.DeepEqual(missing, want) {
		t.Errorf("missing = %v, want %v", missing, want)
	}
}

func TestParamsFromRawCoercions(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"salary":                "12,000",
		"fixed_expenses":        7500,
		"debt_amount":           "20000.456",
		"interest_rate_percent": int64(3),
		"months":                6.0,
	}

	params, err := ParamsFromRaw(raw)
	if err != nil {
		t.Fatalf("ParamsFromRaw() error = %v", err)
	}
	if params.Salary != 12000 {
		t.Errorf("salary = %v, want 12000", params.Salary)
	}
	if params.InitialDebt != 20000.46 {
		t.Errorf("debt = %v, want rounded 20000.46", params.InitialDebt)
	}
	if params.Months != 6 {
		t.Errorf("months = %v, want 6", params.Months)
	}
}

func TestParamsFromRawRangeChecks(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		key   string
		value any
	}{
		{name: "zero salary", key: "salary", value: 0.0},
		{name: "negative expenses", key: "fixed_expenses", value: -10.0},
		{name: "negative rate", key: "interest_rate_percent", value: -1.0},
		{name: "zero months", key: "months", value: 0},
		{name: "savings over 100", key: "savings_rate_percent", value: 150.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw := validRaw()
			raw[tc.key] = tc.value

			_, err := ParamsFromRaw(raw)
			if !errors.Is(err, contractx.ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestParamsFromRawOneTimePayments(t *testing.T) {
	t.Parallel()

	raw := validRaw()
	raw["one_time_payments"] = []any{
		map[string]any{"month": 3, "amount": 5000.0, "description": "Tax refund"},
		map[string]any{"month": 5.0, "amount": "1,200"},
	}

	params, err := ParamsFromRaw(raw)
	if err != nil {
		t.Fatalf("ParamsFromRaw() error = %v", err)
	}
	if len(params.OneTimePayments) != 2 {
		t.Fatalf("one-time payments = %d, want 2", len(params.OneTimePayments))
	}
	if params.OneTimePayments[0].Description != "Tax refund" {
		t.Errorf("description = %q", params.OneTimePayments[0].Description)
	}
	if params.OneTimePayments[1].Amount != 1200 {
		t.Errorf("amount = %v, want 1200", params.OneTimePayments[1].Amount)
	}
	if params.OneTimePayments[1].Description != "One-time payment" {
		t.Errorf("default description = %q", params.OneTimePayments[1].Description)
	}
}

func TestParamsFromRawMalformedOneTimePayment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value any
	}{
		{name: "not a list", value: "5000 in month 3"},
		{name: "entry not an object", value: []any{"bonus"}},
		{name: "missing month", value: []any{map[string]any{"amount": 5000.0}}},
		{name: "missing amount", value: []any{map[string]any{"month": 3}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw := validRaw()
			raw["one_time_payments"] = tc.value

			_, err := ParamsFromRaw(raw)
			if !errors.Is(err, contractx.ErrCalculation) {
				t.Fatalf("error = %v, want ErrCalculation", err)
			}
		})
	}
}

package memory

import (
	"fmt"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/intent"
)

// Type identifies one class of stored memory.
type Type string

const (
	TypeProfile           Type = "profile"
	TypeTransactions      Type = "finance_transactions"
	TypeBudgets           Type = "finance_budgets"
	TypeGoals             Type = "finance_goals"
	TypeRecurringPayments Type = "finance_recurring_payments"
)

// extraction shapes by memory type. The oracle fills these skeletons; nil
// values mean "fill from the conversation or leave null".
var shapes = map[Type]map[string]any{
	TypeProfile: {
		"name": nil, "location": nil, "job": nil,
		"connections": nil, "interests": nil,
	},
	TypeTransactions: {
		"transaction_type": nil, "amount": nil, "category": nil,
		"description": nil, "date": nil, "payment_method": nil,
		"merchant": nil, "tags": nil,
	},
	TypeBudgets: {
		"category": nil, "limit_amount": nil, "period": "monthly",
		"alert_threshold": nil, "notes": nil,
	},
	TypeGoals: {
		"goal_name": nil, "target_amount": nil, "current_amount": nil,
		"target_date": nil, "priority": nil, "notes": nil,
	},
	TypeRecurringPayments: {
		"name": nil, "amount": nil, "frequency": nil, "category": nil,
		"next_payment_date": nil, "payment_method": nil,
		"auto_pay": nil, "notes": nil,
	},
}

// ShapeFor returns a fresh copy of the extraction shape for a memory type.
// The set is closed; an unknown type is a programming error surfaced at
// startup, not at request time.
func ShapeFor(t Type) (map[string]any, error) {
	shape, ok := shapes[t]
	if !ok {
		return nil, fmt.Errorf("%w: unknown memory type %q", contractx.ErrValidation, t)
	}
	out := make(map[string]any, len(shape))
	for k, v := range shape {
		out[k] = v
	}
	return out, nil
}

// TypesForIntent maps a classified intent to the memory types it writes.
// Intents that only read data return nil.
func TypesForIntent(it intent.Intent) []Type {
	switch it {
	case intent.IntentAddTransaction, intent.IntentUpdateTransaction:
		return []Type{TypeTransactions}
	case intent.IntentSetBudget:
		return []Type{TypeBudgets}
	case intent.IntentCreateGoal:
		return []Type{TypeGoals}
	case intent.IntentAddRecurringPayment:
		return []Type{TypeRecurringPayments}
	default:
		return nil
	}
}

// AllTypes lists every registered memory type in a stable order.
func AllTypes() []Type {
	return []Type{TypeProfile, TypeTransactions, TypeBudgets, TypeGoals, TypeRecurringPayments}
}

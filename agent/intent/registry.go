package intent

import (
	"fmt"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
)

// Intent is the closed set of request categories the assistant understands.
type Intent string

const (
	IntentDebtPayoffPlan      Intent = "debt_payoff_plan"
	IntentAddTransaction      Intent = "add_transaction"
	IntentUpdateTransaction   Intent = "update_transaction"
	IntentMonthlySummary      Intent = "monthly_summary"
	IntentSetBudget           Intent = "set_budget"
	IntentCreateGoal          Intent = "create_goal"
	IntentAddRecurringPayment Intent = "add_recurring_payment"
	IntentAdvice              Intent = "advice"
	IntentOther               Intent = "other"
)

// All lists every known intent, in routing-prompt order.
func All() []Intent {
	return []Intent{
		IntentDebtPayoffPlan,
		IntentAddTransaction,
		IntentUpdateTransaction,
		IntentMonthlySummary,
		IntentSetBudget,
		IntentCreateGoal,
		IntentAddRecurringPayment,
		IntentAdvice,
		IntentOther,
	}
}

// Parse validates a raw intent string against the closed set.
func Parse(raw string) (Intent, error) {
	candidate := Intent(raw)
	for _, known := range All() {
		if candidate == known {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q", contractx.ErrUnknownIntent, raw)
}

// Registry maps intents to executors. It is resolved once at startup and
// fails fast on any unknown or unbound intent instead of silently falling
// through.
type Registry struct {
	executors map[Intent]contractx.Executor
}

func NewRegistry(bindings map[Intent]contractx.Executor) (*Registry, error) {
	if len(bindings) == 0 {
		return nil, fmt.Errorf("intent registry needs at least one binding")
	}

	executors := make(map[Intent]contractx.Executor, len(bindings))
	for it, exec := range bindings {
		if _, err := Parse(string(it)); err != nil {
			return nil, err
		}
		if exec == nil {
			return nil, fmt.Errorf("nil executor bound to intent=%s", it)
		}
		executors[it] = exec
	}

	return &Registry{executors: executors}, nil
}

// Resolve returns the executor for an intent or fails with ErrUnknownIntent.
func (r *Registry) Resolve(it Intent) (contractx.Executor, error) {
	exec, ok := r.executors[it]
	if !ok {
		return nil, fmt.Errorf("%w: no executor bound for %q", contractx.ErrUnknownIntent, it)
	}
	return exec, nil
}

// Bound lists the intents the registry can dispatch.
func (r *Registry) Bound() []Intent {
	out := make([]Intent, 0, len(r.executors))
	for _, it := range All() {
		if _, ok := r.executors[it]; ok {
			out = append(out, it)
		}
	}
	return out
}

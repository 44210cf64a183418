package planstore

import (
	"context"
	"errors"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/debtplan"
)

// ErrPlanNotFound reports that no stored plan matches the key.
var ErrPlanNotFound = errors.New("plan not found")

// Key scopes stored plans the same way memories are scoped: one logical plan
// collection per (plan type, assistant type, user).
type Key struct {
	PlanType      string
	AssistantType contractx.AssistantType
	UserID        string
}

// DebtPlanType is the only plan type currently stored.
const DebtPlanType = "finance_debt_plans"

// Stored is one persisted plan with its storage identity.
type Stored struct {
	ID   string
	Key  Key
	Plan debtplan.Plan
}

// Store persists validated payoff plans. Put assigns and returns the plan
// ID; FindMostRecent returns ErrPlanNotFound when the user has no plans.
type Store interface {
	Put(ctx context.Context, key Key, plan debtplan.Plan) (string, error)
	FindMostRecent(ctx context.Context, key Key) (Stored, error)
}

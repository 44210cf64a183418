package executors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/debtplan"
	"github.com/omarelhadidy/hesab-agent/agent/format"
	"github.com/omarelhadidy/hesab-agent/agent/planstore"
)

// debtParamShape is the skeleton the extraction oracle fills for payoff
// requests. Keys match the raw parameter contract of the engine.
var debtParamShape = map[string]any{
	"salary":                nil,
	"fixed_expenses":        nil,
	"debt_amount":           nil,
	"interest_rate_percent": nil,
	"months":                nil,
	"savings_rate_percent":  nil,
	"currency":              nil,
	"one_time_payments":     nil,
}

// DebtPayoff computes deterministic payoff schedules. The model only
// extracts numbers; every calculation happens in the engine.
type DebtPayoff struct {
	engine   *debtplan.Engine
	oracle   contractx.Extractor
	fallback contractx.Extractor
	plans    planstore.Store
}

func NewDebtPayoff(engine *debtplan.Engine, oracle, fallback contractx.Extractor, plans planstore.Store) *DebtPayoff {
	return &DebtPayoff{
		engine:   engine,
		oracle:   oracle,
		fallback: fallback,
		plans:    plans,
	}
}

func (d *DebtPayoff) Execute(ctx context.Context, req contractx.ExecutorRequest) (contractx.ExecutorResponse, error) {
	prior := d.priorParams(ctx, req)

	raw, err := d.extract(ctx, req, prior)
	if err != nil {
		return contractx.ExecutorResponse{}, err
	}
	merged := debtplan.MergeParams(raw, prior)
	merged = debtplan.MergeParams(merged, historyParams(req.History))

	params, err := debtplan.ParamsFromRaw(merged)
	if err != nil {
		if missing, ok := debtplan.IsExtractionError(err); ok {
			return contractx.ExecutorResponse{Reply: askForMissing(missing)}, nil
		}
		return contractx.ExecutorResponse{}, err
	}

	plan, err := d.engine.Compute(params)
	if err != nil {
		if verr, ok := debtplan.AsValidationError(err); ok {
			return contractx.ExecutorResponse{Reply: explainViolations(verr)}, nil
		}
		return contractx.ExecutorResponse{}, err
	}

	key := planstore.Key{
		PlanType:      planstore.DebtPlanType,
		AssistantType: req.AssistantType,
		UserID:        req.UserID,
	}
	planID, err := d.plans.Put(ctx, key, *plan)
	if err != nil {
		return contractx.ExecutorResponse{}, fmt.Errorf("persist plan: %w", err)
	}

	log.Info().
		Str("user_id", req.UserID).
		Str("plan_id", planID).
		Bool("cleared", plan.IsDebtCleared).
		Msg("payoff plan computed")

	reply := format.Summary(*plan) + "\n\n" + format.Markdown(*plan)
	return contractx.ExecutorResponse{
		Reply:        reply,
		MemoryUpdate: memoryNote(plan),
		PlanKey:      planID,
	}, nil
}

// priorParams recovers the user's last stored plan as extraction context so
// refinements like "make it 8 months instead" keep the other inputs.
func (d *DebtPayoff) priorParams(ctx context.Context, req contractx.ExecutorRequest) map[string]any {
	stored, err := d.plans.FindMostRecent(ctx, planstore.Key{
		PlanType:      planstore.DebtPlanType,
		AssistantType: req.AssistantType,
		UserID:        req.UserID,
	})
	if errors.Is(err, planstore.ErrPlanNotFound) {
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Str("user_id", req.UserID).Msg("prior plan lookup failed")
		return nil
	}
	return debtplan.ParamsFromPlan(&stored.Plan)
}

func (d *DebtPayoff) extract(ctx context.Context, req contractx.ExecutorRequest, prior map[string]any) (map[string]any, error) {
	messages := append(append([]contractx.Message{}, req.History...), contractx.UserMessage(req.Text))
	extractReq := contractx.ExtractionRequest{
		Messages: messages,
		Shape:    debtParamShape,
		Context:  prior,
	}

	raw, err := d.oracle.Extract(ctx, extractReq)
	if err == nil {
		return raw, nil
	}
	log.Warn().Err(err).Msg("oracle extraction failed, trying pattern fallback")

	raw, ferr := d.fallback.Extract(ctx, extractReq)
	if ferr != nil {
		return nil, fmt.Errorf("%w: oracle failed (%v) and fallback found nothing", contractx.ErrParameterExtraction, err)
	}
	return raw, nil
}

// historyParams scans earlier user messages, newest first, for a complete
// parameter set. It fills only the gaps a stored plan could not cover.
func historyParams(history []contractx.Message) map[string]any {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != contractx.RoleUser {
			continue
		}
		if params, ok := debtplan.ParamsFromText(history[i].Content); ok {
			return params
		}
	}
	return nil
}

func askForMissing(missing []string) string {
	labels := map[string]string{
		"salary":                "your monthly salary",
		"fixed_expenses":        "your fixed monthly expenses",
		"debt_amount":           "the total debt amount",
		"interest_rate_percent": "the monthly interest rate",
		"months":                "how many months the plan should cover",
	}
	asks := make([]string, 0, len(missing))
	for _, field := range missing {
		if label, ok := labels[field]; ok {
			asks = append(asks, label)
		} else {
			asks = append(asks, field)
		}
	}
	return "I can build your payoff plan, but I still need " + joinNaturally(asks) + "."
}

func explainViolations(verr *debtplan.ValidationError) string {
	var b strings.Builder
	b.WriteString("I computed the schedule, but it does not add up with these inputs:\n\n")
	for _, violation := range verr.Violations {
		fmt.Fprintf(&b, "- %s\n", violation)
	}
	b.WriteString("\nNothing was saved. Adjust the numbers (lower expenses or savings, or a longer horizon) and I'll recompute.")
	return b.String()
}

func memoryNote(plan *debtplan.Plan) string {
	status := "not cleared"
	if plan.IsDebtCleared {
		status = "cleared"
	}
	return fmt.Sprintf("Computed %q: %s debt over %d months, outcome %s.",
		plan.PlanName, format.MoneyWithCurrency(plan.InitialDebt, plan.Currency), plan.Months, status)
}

func joinNaturally(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

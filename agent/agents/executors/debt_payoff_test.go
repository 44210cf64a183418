package executors

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/debtplan"
	"github.com/omarelhadidy/hesab-agent/agent/planstore"
)

type fakeExtractor struct {
	out     map[string]any
	err     error
	lastReq contractx.ExtractionRequest
	calls   int
}

func (f *fakeExtractor) Extract(_ context.Context, req contractx.ExtractionRequest) (map[string]any, error) {
	f.lastReq = req
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func fixedClock() time.Time {
	return time.Date(2026, 2, 16, 12, 0, 0, 0, time.UTC)
}

func fullParams() map[string]any {
	return map[string]any{
		"salary":                float64(12000),
		"fixed_expenses":        float64(7500),
		"debt_amount":           float64(20000),
		"interest_rate_percent": float64(2.5),
		"months":                float64(6),
	}
}

func payoffRequest(text string) contractx.ExecutorRequest {
	return contractx.ExecutorRequest{
		UserID:        "u1",
		AssistantType: contractx.AssistantTypeFinance,
		Text:          text,
		Now:           fixedClock(),
	}
}

func TestDebtPayoffComputesAndPersists(t *testing.T) {
	t.Parallel()

	plans := planstore.NewInMemoryStore()
	oracle := &fakeExtractor{out: fullParams()}
	exec := NewDebtPayoff(debtplan.NewEngine(debtplan.WithClock(fixedClock)), oracle, &fakeExtractor{err: errors.New("unused")}, plans)

	resp, err := exec.Execute(context.Background(), payoffRequest("plan my debt payoff"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.PlanKey == "" {
		t.Fatal("plan was not persisted")
	}
	if !strings.Contains(resp.Reply, "Monthly Breakdown") {
		t.Errorf("reply missing schedule table:\n%s", resp.Reply)
	}
	if !strings.Contains(resp.Reply, "debt payoff plan is ready") {
		t.Errorf("reply missing summary:\n%s", resp.Reply)
	}
	if resp.MemoryUpdate == "" {
		t.Error("expected a memory update note")
	}

	stored, err := plans.FindMostRecent(context.Background(), planstore.Key{
		PlanType:      planstore.DebtPlanType,
		AssistantType: contractx.AssistantTypeFinance,
		UserID:        "u1",
	})
	if err != nil {
		t.Fatalf("FindMostRecent error: %v", err)
	}
	if stored.ID != resp.PlanKey {
		t.Errorf("stored id %q != reply plan key %q", stored.ID, resp.PlanKey)
	}
	if stored.Plan.InitialDebt != 20000 || stored.Plan.Months != 6 {
		t.Errorf("stored plan = %+v", stored.Plan)
	}
}

func TestDebtPayoffAsksForMissingFields(t *testing.T) {
	t.Parallel()

	oracle := &fakeExtractor{out: map[string]any{"salary": float64(12000)}}
	exec := NewDebtPayoff(debtplan.NewEngine(), oracle, &fakeExtractor{err: errors.New("no match")}, planstore.NewInMemoryStore())

	resp, err := exec.Execute(context.Background(), payoffRequest("help me with my debt"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.PlanKey != "" {
		t.Error("incomplete request must not persist a plan")
	}
	for _, want := range []string{"debt amount", "the monthly interest rate", "months", "expenses"} {
		if !strings.Contains(resp.Reply, want) {
			t.Errorf("reply should ask for %q:\n%s", want, resp.Reply)
		}
	}
}

func TestDebtPayoffRecoversParamsFromHistory(t *testing.T) {
	t.Parallel()

	plans := planstore.NewInMemoryStore()
	// Oracle succeeds but only catches the new horizon; the numbers live in
	// an earlier message and there is no stored plan to fall back on.
	oracle := &fakeExtractor{out: map[string]any{"months": float64(8)}}
	fallback := &fakeExtractor{err: errors.New("unused")}
	exec := NewDebtPayoff(debtplan.NewEngine(debtplan.WithClock(fixedClock)), oracle, fallback, plans)

	req := payoffRequest("make the plan 8 months")
	req.History = []contractx.Message{
		contractx.UserMessage("I have 20,000 egp debt at 2.5% interest, my salary is 12000 and expenses are 7500"),
		contractx.AssistantMessage("Got it."),
	}

	resp, err := exec.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback extractor called %d times, want 0", fallback.calls)
	}
	if resp.PlanKey == "" {
		t.Fatalf("plan not computed, reply:\n%s", resp.Reply)
	}

	stored, err := plans.FindMostRecent(context.Background(), planstore.Key{
		PlanType:      planstore.DebtPlanType,
		AssistantType: contractx.AssistantTypeFinance,
		UserID:        "u1",
	})
	if err != nil {
		t.Fatalf("FindMostRecent error: %v", err)
	}
	if stored.Plan.Months != 8 {
		t.Errorf("months = %d, want the freshly extracted 8", stored.Plan.Months)
	}
	if stored.Plan.InitialDebt != 20000 || stored.Plan.Salary != 12000 {
		t.Errorf("history-scanned params not applied: %+v", stored.Plan)
	}
}

func TestDebtPayoffFallsBackToPatterns(t *testing.T) {
	t.Parallel()

	oracle := &fakeExtractor{err: contractx.ErrModelInvoke}
	fallback := &fakeExtractor{out: fullParams()}
	exec := NewDebtPayoff(debtplan.NewEngine(debtplan.WithClock(fixedClock)), oracle, fallback, planstore.NewInMemoryStore())

	resp, err := exec.Execute(context.Background(), payoffRequest("I have 20,000 egp debt at 2.5% interest, salary is 12000, expenses are 7500"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if fallback.calls != 1 {
		t.Errorf("fallback called %d times, want 1", fallback.calls)
	}
	if resp.PlanKey == "" {
		t.Error("fallback extraction should still produce a plan")
	}
}

func TestDebtPayoffBothExtractorsFail(t *testing.T) {
	t.Parallel()

	exec := NewDebtPayoff(
		debtplan.NewEngine(),
		&fakeExtractor{err: contractx.ErrModelInvoke},
		&fakeExtractor{err: contractx.ErrParameterExtraction},
		planstore.NewInMemoryStore(),
	)

	_, err := exec.Execute(context.Background(), payoffRequest("hello"))
	if !errors.Is(err, contractx.ErrParameterExtraction) {
		t.Fatalf("error = %v, want ErrParameterExtraction", err)
	}
}

func TestDebtPayoffRefinementKeepsPriorParams(t *testing.T) {
	t.Parallel()

	plans := planstore.NewInMemoryStore()
	engine := debtplan.NewEngine(debtplan.WithClock(fixedClock))

	first := NewDebtPayoff(engine, &fakeExtractor{out: fullParams()}, &fakeExtractor{}, plans)
	if _, err := first.Execute(context.Background(), payoffRequest("plan my payoff")); err != nil {
		t.Fatalf("first Execute error: %v", err)
	}

	// Second turn only changes the horizon; everything else comes from the
	// stored plan.
	oracle := &fakeExtractor{out: map[string]any{"months": float64(8)}}
	second := NewDebtPayoff(engine, oracle, &fakeExtractor{}, plans)
	resp, err := second.Execute(context.Background(), payoffRequest("make it 8 months instead"))
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if oracle.lastReq.Context == nil {
		t.Fatal("oracle should receive prior params as context")
	}
	if oracle.lastReq.Context["salary"] != float64(12000) {
		t.Errorf("prior salary not passed: %v", oracle.lastReq.Context)
	}

	stored, err := plans.FindMostRecent(context.Background(), planstore.Key{
		PlanType:      planstore.DebtPlanType,
		AssistantType: contractx.AssistantTypeFinance,
		UserID:        "u1",
	})
	if err != nil {
		t.Fatalf("FindMostRecent error: %v", err)
	}
	if stored.ID != resp.PlanKey {
		t.Errorf("latest plan %q != new plan key %q", stored.ID, resp.PlanKey)
	}
	if stored.Plan.Months != 8 {
		t.Errorf("refined months = %d, want 8", stored.Plan.Months)
	}
	if stored.Plan.InitialDebt != 20000 {
		t.Errorf("refined debt = %v, want carried-over 20000", stored.Plan.InitialDebt)
	}
}

func TestDebtPayoffValidationFailureIsNotPersisted(t *testing.T) {
	t.Parallel()

	params := fullParams()
	params["salary"] = float64(10000)
	params["fixed_expenses"] = float64(9500)

	plans := planstore.NewInMemoryStore()
	exec := NewDebtPayoff(debtplan.NewEngine(debtplan.WithClock(fixedClock)), &fakeExtractor{out: params}, &fakeExtractor{}, plans)

	resp, err := exec.Execute(context.Background(), payoffRequest("plan with no room for payments"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.PlanKey != "" {
		t.Error("invalid plan must not be persisted")
	}
	if !strings.Contains(resp.Reply, "No cash for debt") {
		t.Errorf("reply should surface the violation:\n%s", resp.Reply)
	}
	if !strings.Contains(resp.Reply, "Nothing was saved") {
		t.Errorf("reply should state nothing was saved:\n%s", resp.Reply)
	}

	if _, err := plans.FindMostRecent(context.Background(), planstore.Key{
		PlanType:      planstore.DebtPlanType,
		AssistantType: contractx.AssistantTypeFinance,
		UserID:        "u1",
	}); !errors.Is(err, planstore.ErrPlanNotFound) {
		t.Fatalf("store error = %v, want ErrPlanNotFound", err)
	}
}

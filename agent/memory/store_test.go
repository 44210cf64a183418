package memory

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/intent"
)

func financeNS(userID string) Namespace {
	return Namespace{AssistantType: contractx.AssistantTypeFinance, UserID: userID}
}

func TestPutAppendsTransactions(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ns := financeNS("u1")
	ctx := context.Background()

	for _, amount := range []float64{150, 72.5} {
		if _, err := store.Put(ctx, ns, TypeTransactions, map[string]any{
			"transaction_type": "expense",
			"amount":           amount,
			"category":         "groceries",
		}); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}

	records, err := store.List(ctx, ns, TypeTransactions)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID == records[1].ID {
		t.Error("records share an ID")
	}
}

func TestPutReplacesProfile(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ns := financeNS("u1")
	ctx := context.Background()

	if _, err := store.Put(ctx, ns, TypeProfile, map[string]any{"name": "Omar"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if _, err := store.Put(ctx, ns, TypeProfile, map[string]any{"name": "Omar", "location": "Cairo"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	records, err := store.List(ctx, ns, TypeProfile)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("profile holds %d records, want 1", len(records))
	}
	if records[0].Value["location"] != "Cairo" {
		t.Errorf("profile not replaced: %v", records[0].Value)
	}
}

func TestPutRejectsUnknownType(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	_, err := store.Put(context.Background(), financeNS("u1"), Type("finance_bets"), map[string]any{})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestListIsolatesNamespaces(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ctx := context.Background()

	if _, err := store.Put(ctx, financeNS("u1"), TypeGoals, map[string]any{"goal_name": "Emergency Fund"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	records, err := store.List(ctx, financeNS("u2"), TypeGoals)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("u2 sees %d of u1's records", len(records))
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	store := NewInMemoryStore()
	ns := financeNS("u1")
	ctx := context.Background()

	if _, err := store.Put(ctx, ns, TypeProfile, map[string]any{"name": "Omar"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if _, err := store.Put(ctx, ns, TypeBudgets, map[string]any{"category": "groceries", "limit_amount": 2000}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	summary, err := Summarize(ctx, store, ns)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if !strings.Contains(summary, "## profile") || !strings.Contains(summary, "Omar") {
		t.Errorf("summary missing profile section: %q", summary)
	}
	if !strings.Contains(summary, "## finance_budgets") || !strings.Contains(summary, "groceries") {
		t.Errorf("summary missing budget section: %q", summary)
	}
	if strings.Contains(summary, "## finance_goals") {
		t.Errorf("summary includes empty type: %q", summary)
	}
}

func TestShapeForReturnsCopy(t *testing.T) {
	t.Parallel()

	first, err := ShapeFor(TypeBudgets)
	if err != nil {
		t.Fatalf("ShapeFor error: %v", err)
	}
	first["period"] = "yearly"

	second, err := ShapeFor(TypeBudgets)
	if err != nil {
		t.Fatalf("ShapeFor error: %v", err)
	}
	if second["period"] != "monthly" {
		t.Error("ShapeFor shares state between calls")
	}
}

func TestTypesForIntent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		it   intent.Intent
		want []Type
	}{
		{intent.IntentAddTransaction, []Type{TypeTransactions}},
		{intent.IntentUpdateTransaction, []Type{TypeTransactions}},
		{intent.IntentSetBudget, []Type{TypeBudgets}},
		{intent.IntentCreateGoal, []Type{TypeGoals}},
		{intent.IntentAddRecurringPayment, []Type{TypeRecurringPayments}},
		{intent.IntentAdvice, nil},
		{intent.IntentOther, nil},
		{intent.IntentDebtPayoffPlan, nil},
	}
	for _, tc := range cases {
		got := TypesForIntent(tc.it)
		if len(got) != len(tc.want) {
			t.Errorf("TypesForIntent(%s) = %v, want %v", tc.it, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("TypesForIntent(%s)[%d] = %s, want %s", tc.it, i, got[i], tc.want[i])
			}
		}
	}
}

func TestSummariesRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewInMemorySummaries()
	ctx := context.Background()

	got, err := s.ReadSummary(ctx, "u1")
	if err != nil || got != "" {
		t.Fatalf("fresh summary = (%q, %v), want empty", got, err)
	}
	if err := s.WriteSummary(ctx, "u1", "tracks groceries budget"); err != nil {
		t.Fatalf("WriteSummary error: %v", err)
	}
	got, err = s.ReadSummary(ctx, "u1")
	if err != nil || got != "tracks groceries budget" {
		t.Fatalf("summary = (%q, %v)", got, err)
	}
	if err := s.WriteSummary(ctx, "", "x"); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("empty user id error = %v, want ErrValidation", err)
	}
}

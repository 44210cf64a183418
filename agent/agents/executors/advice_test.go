package executors

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/debtplan"
	"github.com/omarelhadidy/hesab-agent/agent/memory"
	"github.com/omarelhadidy/hesab-agent/agent/planstore"
)

type fakeTextModel struct {
	reply    string
	err      error
	lastSent []contractx.Message
}

func (f *fakeTextModel) Generate(_ context.Context, messages []contractx.Message) (string, error) {
	f.lastSent = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestAdviceGroundsModelInStoredData(t *testing.T) {
	t.Parallel()

	memories := memory.NewInMemoryStore()
	ns := memory.Namespace{AssistantType: contractx.AssistantTypeFinance, UserID: "u1"}
	if _, err := memories.Put(context.Background(), ns, memory.TypeBudgets, map[string]any{
		"category": "groceries", "limit_amount": float64(2000),
	}); err != nil {
		t.Fatalf("seed budget: %v", err)
	}

	plans := planstore.NewInMemoryStore()
	months := 6
	plan := debtplan.Plan{
		PlanName: "6-Month Debt Payoff Plan", InitialDebt: 20000, Months: 6,
		SavingsRate: 0.1, Currency: "EGP", IsDebtCleared: true, MonthsToPayoff: &months,
	}
	if _, err := plans.Put(context.Background(), planstore.Key{
		PlanType: planstore.DebtPlanType, AssistantType: contractx.AssistantTypeFinance, UserID: "u1",
	}, plan); err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	model := &fakeTextModel{reply: "Keep the groceries budget and finish the plan."}
	exec := NewAdvice(model, memories, plans, "advisor prompt")

	req := payoffRequest("any advice?")
	req.MemorySummary = "user wants to build savings"
	resp, err := exec.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Reply != "Keep the groceries budget and finish the plan." {
		t.Errorf("reply = %q", resp.Reply)
	}

	var contextBlock string
	for _, msg := range model.lastSent {
		if msg.Role == contractx.RoleSystem && strings.Contains(msg.Content, "What is known about the user") {
			contextBlock = msg.Content
		}
	}
	if contextBlock == "" {
		t.Fatal("model never received the grounding context")
	}
	for _, want := range []string{"groceries", "debt payoff plan is ready", "build savings"} {
		if !strings.Contains(contextBlock, want) {
			t.Errorf("context missing %q:\n%s", want, contextBlock)
		}
	}
}

func TestAdviceWithoutAnyData(t *testing.T) {
	t.Parallel()

	model := &fakeTextModel{reply: "Tell me more about your finances first."}
	exec := NewAdvice(model, memory.NewInMemoryStore(), planstore.NewInMemoryStore(), "advisor prompt")

	resp, err := exec.Execute(context.Background(), payoffRequest("advice?"))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Reply == "" {
		t.Error("expected a reply even with no stored data")
	}
	for _, msg := range model.lastSent {
		if strings.Contains(msg.Content, "What is known about the user") {
			t.Error("empty context block should be omitted")
		}
	}
}

func TestAdviceModelFailure(t *testing.T) {
	t.Parallel()

	exec := NewAdvice(&fakeTextModel{err: contractx.ErrModelInvoke}, memory.NewInMemoryStore(), planstore.NewInMemoryStore(), "p")
	_, err := exec.Execute(context.Background(), payoffRequest("advice?"))
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("error = %v, want ErrModelInvoke", err)
	}
}

func TestConversationReply(t *testing.T) {
	t.Parallel()

	model := &fakeTextModel{reply: "Hello! How can I help with your finances?"}
	exec := NewConversation(model, "assistant prompt")

	req := payoffRequest("hi there")
	req.History = []contractx.Message{contractx.AssistantMessage("Welcome back.")}
	resp, err := exec.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if resp.Reply != "Hello! How can I help with your finances?" {
		t.Errorf("reply = %q", resp.Reply)
	}
	if len(model.lastSent) != 3 {
		t.Errorf("model received %d messages, want system+history+user", len(model.lastSent))
	}
	last := model.lastSent[len(model.lastSent)-1]
	if last.Role != contractx.RoleUser || last.Content != "hi there" {
		t.Errorf("last message = %+v", last)
	}
}

func TestConversationEmptyReply(t *testing.T) {
	t.Parallel()

	exec := NewConversation(&fakeTextModel{reply: "   "}, "p")
	_, err := exec.Execute(context.Background(), payoffRequest("hi"))
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("error = %v, want ErrModelInvoke", err)
	}
}

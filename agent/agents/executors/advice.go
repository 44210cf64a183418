package executors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/format"
	"github.com/omarelhadidy/hesab-agent/agent/memory"
	"github.com/omarelhadidy/hesab-agent/agent/planstore"
)

// Advice answers open-ended financial questions. It grounds the model in
// everything stored about the user: memories, the latest plan, and the
// rolling conversation summary. Numbers from the plan are passed through
// pre-rendered so the model never recomputes them.
type Advice struct {
	model        contractx.TextModel
	memories     memory.Store
	plans        planstore.Store
	systemPrompt string
}

func NewAdvice(model contractx.TextModel, memories memory.Store, plans planstore.Store, systemPrompt string) *Advice {
	return &Advice{
		model:        model,
		memories:     memories,
		plans:        plans,
		systemPrompt: systemPrompt,
	}
}

func (a *Advice) Execute(ctx context.Context, req contractx.ExecutorRequest) (contractx.ExecutorResponse, error) {
	contextBlock, err := a.buildContext(ctx, req)
	if err != nil {
		return contractx.ExecutorResponse{}, err
	}

	messages := make([]contractx.Message, 0, len(req.History)+3)
	messages = append(messages, contractx.SystemMessage(a.systemPrompt))
	if contextBlock != "" {
		messages = append(messages, contractx.SystemMessage("What is known about the user:\n\n"+contextBlock))
	}
	messages = append(messages, req.History...)
	messages = append(messages, contractx.UserMessage(req.Text))

	reply, err := a.model.Generate(ctx, messages)
	if err != nil {
		return contractx.ExecutorResponse{}, err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return contractx.ExecutorResponse{}, fmt.Errorf("%w: empty advice reply", contractx.ErrModelInvoke)
	}
	return contractx.ExecutorResponse{Reply: reply}, nil
}

func (a *Advice) buildContext(ctx context.Context, req contractx.ExecutorRequest) (string, error) {
	var parts []string

	if req.MemorySummary != "" {
		parts = append(parts, "Conversation summary:\n"+req.MemorySummary)
	}

	ns := memory.Namespace{AssistantType: req.AssistantType, UserID: req.UserID}
	records, err := memory.Summarize(ctx, a.memories, ns)
	if err != nil {
		return "", fmt.Errorf("summarize memories: %w", err)
	}
	if records != "" {
		parts = append(parts, records)
	}

	stored, err := a.plans.FindMostRecent(ctx, planstore.Key{
		PlanType:      planstore.DebtPlanType,
		AssistantType: req.AssistantType,
		UserID:        req.UserID,
	})
	switch {
	case err == nil:
		parts = append(parts, "Latest computed payoff plan:\n"+format.Summary(stored.Plan))
	case errors.Is(err, planstore.ErrPlanNotFound):
	default:
		log.Warn().Err(err).Str("user_id", req.UserID).Msg("plan lookup failed, advising without it")
	}

	return strings.Join(parts, "\n\n"), nil
}

package assistantnode

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	intentx "github.com/omarelhadidy/hesab-agent/agent/intent"
)

func DispatchExecutor(
	ctx context.Context,
	in *GraphState,
	registry *intentx.Registry,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	executor, err := registry.Resolve(in.Classification.Intent)
	if err != nil {
		return nil, err
	}

	resp, err := executor.Execute(ctx, contractx.ExecutorRequest{
		UserID:        in.Session.UserID,
		AssistantType: in.Session.AssistantType,
		Text:          in.Text,
		History:       priorHistory(in),
		MemorySummary: in.MemorySummary,
		Now:           in.Now,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Reply) == "" {
		return nil, fmt.Errorf("%w: executor %s returned empty reply", contractx.ErrValidation, in.Classification.Intent)
	}

	in.ExecResp = resp
	return in, nil
}

// priorHistory reconstructs what little conversational context the session
// keeps. Only the previous user message survives across turns.
func priorHistory(in *GraphState) []contractx.Message {
	if in.Session.LastUserMessage == "" {
		return nil
	}
	return []contractx.Message{contractx.UserMessage(in.Session.LastUserMessage)}
}

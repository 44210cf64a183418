package executors

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
)

// Conversation handles small talk and anything outside the finance intents.
type Conversation struct {
	model        contractx.TextModel
	systemPrompt string
}

func NewConversation(model contractx.TextModel, systemPrompt string) *Conversation {
	return &Conversation{model: model, systemPrompt: systemPrompt}
}

func (c *Conversation) Execute(ctx context.Context, req contractx.ExecutorRequest) (contractx.ExecutorResponse, error) {
	messages := make([]contractx.Message, 0, len(req.History)+3)
	messages = append(messages, contractx.SystemMessage(c.systemPrompt))
	if req.MemorySummary != "" {
		messages = append(messages, contractx.SystemMessage("Conversation summary:\n"+req.MemorySummary))
	}
	messages = append(messages, req.History...)
	messages = append(messages, contractx.UserMessage(req.Text))

	reply, err := c.model.Generate(ctx, messages)
	if err != nil {
		return contractx.ExecutorResponse{}, err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return contractx.ExecutorResponse{}, fmt.Errorf("%w: empty reply", contractx.ErrModelInvoke)
	}
	return contractx.ExecutorResponse{Reply: reply}, nil
}

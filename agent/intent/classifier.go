package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	extractx "github.com/omarelhadidy/hesab-agent/agent/extract"
)

// Classification is the routing decision for one user turn.
type Classification struct {
	Intent    Intent `json:"intent"`
	Reasoning string `json:"reasoning,omitempty"`
}

type classifierLLMOutput struct {
	Intent    string `json:"intent"`
	Reasoning string `json:"reasoning"`
}

// Classifier asks the injected text model to pick an intent from the closed
// set. An answer outside the set is a schema violation, never a silent
// fallthrough.
type Classifier struct {
	model        contractx.TextModel
	systemPrompt string
}

func NewClassifier(model contractx.TextModel, systemPrompt string) (*Classifier, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: classifier model is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: classifier prompt is required", contractx.ErrValidation)
	}
	return &Classifier{model: model, systemPrompt: systemPrompt}, nil
}

func (c *Classifier) Classify(ctx context.Context, userMessage, memorySummary string) (Classification, error) {
	if strings.TrimSpace(userMessage) == "" {
		return Classification{}, fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}

	intents := make([]string, 0, len(All()))
	for _, it := range All() {
		intents = append(intents, string(it))
	}

	payload, err := json.Marshal(map[string]any{
		"user_message":   userMessage,
		"memory_summary": memorySummary,
		"intents":        intents,
	})
	if err != nil {
		return Classification{}, fmt.Errorf("%w: marshal classifier payload: %v", contractx.ErrValidation, err)
	}

	content, err := c.model.Generate(ctx, []contractx.Message{
		contractx.SystemMessage(c.systemPrompt),
		contractx.UserMessage(string(payload)),
	})
	if err != nil {
		return Classification{}, err
	}

	var out classifierLLMOutput
	if err := extractx.DecodeLoose(content, &out); err != nil {
		return Classification{}, fmt.Errorf("%w: classifier output: %v", contractx.ErrSchemaViolation, err)
	}

	it, err := Parse(strings.TrimSpace(out.Intent))
	if err != nil {
		return Classification{}, fmt.Errorf("%w: classifier picked %q", contractx.ErrSchemaViolation, out.Intent)
	}

	return Classification{Intent: it, Reasoning: strings.TrimSpace(out.Reasoning)}, nil
}

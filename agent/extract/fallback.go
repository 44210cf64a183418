package extract

import (
	"context"
	"fmt"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/debtplan"
)

// Fallback extracts debt parameters with pattern matching over the latest
// user message. It only covers the debt-payoff shape and is used when the
// model-backed extractor is unavailable or returns nothing usable.
type Fallback struct{}

func NewFallback() *Fallback { return &Fallback{} }

func (f *Fallback) Extract(_ context.Context, req contractx.ExtractionRequest) (map[string]any, error) {
	text := lastUserContent(req.Messages)
	if text == "" {
		return nil, fmt.Errorf("%w: no user message to scan", contractx.ErrParameterExtraction)
	}
	params, ok := debtplan.ParamsFromText(text)
	if !ok {
		return nil, fmt.Errorf("%w: pattern scan found no complete parameter set", contractx.ErrParameterExtraction)
	}
	return params, nil
}

func lastUserContent(messages []contractx.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == contractx.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
)

// Oracle extracts structured fields from conversation text by prompting a
// model with the target shape and decoding its JSON reply. It implements
// contract.Extractor.
type Oracle struct {
	model        contractx.TextModel
	systemPrompt string
}

// NewOracle builds an Oracle on the given model. systemPrompt describes the
// extraction task; the shape and context are appended per request.
func NewOracle(model contractx.TextModel, systemPrompt string) *Oracle {
	return &Oracle{model: model, systemPrompt: systemPrompt}
}

func (o *Oracle) Extract(ctx context.Context, req contractx.ExtractionRequest) (map[string]any, error) {
	shape, err := json.Marshal(req.Shape)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal shape: %v", contractx.ErrSchemaViolation, err)
	}

	instruction := fmt.Sprintf(
		"Return ONLY a JSON object matching this shape, with null for fields not present in the conversation:\n%s",
		string(shape),
	)
	if len(req.Context) > 0 {
		prior, err := json.Marshal(req.Context)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal context: %v", contractx.ErrSchemaViolation, err)
		}
		instruction += fmt.Sprintf("\n\nKnown values from earlier in the session (reuse unless the user changed them):\n%s", string(prior))
	}

	messages := make([]contractx.Message, 0, len(req.Messages)+2)
	messages = append(messages, contractx.SystemMessage(o.systemPrompt))
	messages = append(messages, req.Messages...)
	messages = append(messages, contractx.SystemMessage(instruction))

	content, err := o.model.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("%w: extraction call: %v", contractx.ErrModelInvoke, err)
	}

	fields := map[string]any{}
	if err := DecodeLoose(content, &fields); err != nil {
		log.Warn().Err(err).Str("raw", content).Msg("extraction output rejected")
		return nil, err
	}

	// Null means the model saw nothing for the field. Dropping the key keeps
	// downstream merge logic free of nil checks.
	for k, v := range fields {
		if v == nil {
			delete(fields, k)
		}
	}
	return fields, nil
}

package assistantnode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	intentx "github.com/omarelhadidy/hesab-agent/agent/intent"
)

func ClassifyIntent(
	ctx context.Context,
	in *GraphState,
	classifier *intentx.Classifier,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	classification, err := classifier.Classify(ctx, in.Text, in.MemorySummary)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("intent", string(classification.Intent)).
		Str("reasoning", classification.Reasoning).
		Msg("intent classified")

	in.Classification = classification
	return in, nil
}

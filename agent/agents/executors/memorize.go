package executors

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/memory"
)

// Memorize captures one structured record from the conversation and stores
// it. One instance is bound per writing intent, so the record type is fixed
// at construction.
type Memorize struct {
	oracle   contractx.Extractor
	memories memory.Store
	memType  memory.Type
	noun     string // e.g. "transaction", "budget"
}

func NewMemorize(oracle contractx.Extractor, memories memory.Store, memType memory.Type, noun string) (*Memorize, error) {
	if _, err := memory.ShapeFor(memType); err != nil {
		return nil, err
	}
	return &Memorize{
		oracle:   oracle,
		memories: memories,
		memType:  memType,
		noun:     noun,
	}, nil
}

func (m *Memorize) Execute(ctx context.Context, req contractx.ExecutorRequest) (contractx.ExecutorResponse, error) {
	shape, err := memory.ShapeFor(m.memType)
	if err != nil {
		return contractx.ExecutorResponse{}, err
	}

	messages := append(append([]contractx.Message{}, req.History...), contractx.UserMessage(req.Text))
	value, err := m.oracle.Extract(ctx, contractx.ExtractionRequest{
		Messages: messages,
		Shape:    shape,
	})
	if err != nil {
		return contractx.ExecutorResponse{}, err
	}
	if len(value) == 0 {
		return contractx.ExecutorResponse{
			Reply: fmt.Sprintf("I couldn't pick out the %s details. Could you rephrase with the amount and what it was for?", m.noun),
		}, nil
	}

	ns := memory.Namespace{AssistantType: req.AssistantType, UserID: req.UserID}
	rec, err := m.memories.Put(ctx, ns, m.memType, value)
	if err != nil {
		return contractx.ExecutorResponse{}, fmt.Errorf("store %s: %w", m.noun, err)
	}

	log.Debug().
		Str("user_id", req.UserID).
		Str("memory_type", string(m.memType)).
		Str("record_id", rec.ID).
		Msg("memory captured")

	return contractx.ExecutorResponse{
		Reply:        fmt.Sprintf("Got it, I recorded your %s.", m.noun),
		MemoryUpdate: fmt.Sprintf("Recorded a %s: %v", m.noun, value),
	}, nil
}

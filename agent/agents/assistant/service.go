package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	intentx "github.com/omarelhadidy/hesab-agent/agent/intent"
	nodex "github.com/omarelhadidy/hesab-agent/agent/nodes"
	statex "github.com/omarelhadidy/hesab-agent/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
	ErrInvalidUser    = nodex.ErrInvalidUser
)

// Reply is one handled turn.
type Reply struct {
	Text    string
	Intent  intentx.Intent
	PlanKey string
}

// Assistant routes each user turn through the handle-message graph:
// classification, executor dispatch, then state and memory persistence.
type Assistant struct {
	store      statex.Store
	registry   *intentx.Registry
	classifier *intentx.Classifier
	memory     contractx.MemoryStore

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	assistantType contractx.AssistantType
	now           func() time.Time
}

func New(
	store statex.Store,
	registry *intentx.Registry,
	classifier *intentx.Classifier,
	memory contractx.MemoryStore,
) (*Assistant, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if registry == nil {
		return nil, errors.New("intent registry is required")
	}
	if classifier == nil {
		return nil, errors.New("intent classifier is required")
	}
	if memory == nil {
		memory = noopMemoryStore{}
	}

	a := &Assistant{
		store:         store,
		registry:      registry,
		classifier:    classifier,
		memory:        memory,
		assistantType: contractx.AssistantTypeFinance,
		now:           time.Now,
	}

	graphRunner, err := a.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	a.graphRunner = graphRunner

	return a, nil
}

func (a *Assistant) HandleMessage(ctx context.Context, sessionID, userID, text string) (Reply, error) {
	out, err := a.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		UserID:    userID,
		Text:      text,
	})
	if err != nil {
		return Reply{}, err
	}
	return Reply{
		Text:    out.Reply,
		Intent:  out.Intent,
		PlanKey: out.PlanKey,
	}, nil
}

type noopMemoryStore struct{}

func (noopMemoryStore) ReadSummary(context.Context, string) (string, error) {
	return "", nil
}

func (noopMemoryStore) WriteSummary(context.Context, string, string) error {
	return nil
}

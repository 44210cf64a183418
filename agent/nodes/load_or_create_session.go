package assistantnode

import (
	"context"
	"errors"
	"fmt"
	"time"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	statex "github.com/omarelhadidy/hesab-agent/agent/state"
)

func LoadOrCreateSession(
	ctx context.Context,
	in *GraphState,
	store statex.Store,
	assistantType contractx.AssistantType,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	st, err := loadOrCreateSession(ctx, store, in.SessionID, in.UserID, assistantType, in.Now)
	if err != nil {
		return nil, err
	}
	in.Session = st
	return in, nil
}

func loadOrCreateSession(
	ctx context.Context,
	store statex.Store,
	sessionID string,
	userID string,
	assistantType contractx.AssistantType,
	now time.Time,
) (*statex.SessionState, error) {
	st, err := store.Load(ctx, sessionID)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, statex.ErrStateNotFound) {
		return nil, err
	}

	return statex.NewSessionState(sessionID, userID, assistantType, now), nil
}

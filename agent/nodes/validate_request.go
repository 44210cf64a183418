package assistantnode

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	intentx "github.com/omarelhadidy/hesab-agent/agent/intent"
	statex "github.com/omarelhadidy/hesab-agent/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
	ErrInvalidUser    = errors.New("user id is empty")
)

type GraphInput struct {
	SessionID string
	UserID    string
	Text      string
}

type GraphOutput struct {
	Reply   string
	Intent  intentx.Intent
	PlanKey string
}

type GraphState struct {
	SessionID string
	UserID    string
	Text      string
	Now       time.Time

	Session        *statex.SessionState
	MemorySummary  string
	Classification intentx.Classification

	ExecResp contractx.ExecutorResponse
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, ErrInvalidUser
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		SessionID: sessionID,
		UserID:    userID,
		Text:      text,
		Now:       nowFn().UTC(),
	}, nil
}

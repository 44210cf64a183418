package state

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
)

var (
	ErrInvalidSession = errors.New("session id is empty")
	ErrInvalidUser    = errors.New("user id is empty")
)

// SessionState is the per-conversation source of truth. It carries what the
// next turn needs to resolve context: the last classified intent, the key of
// the most recent persisted plan, and a rolling turn count.
type SessionState struct {
	SessionID     string                  `json:"session_id"`
	UserID        string                  `json:"user_id"`
	AssistantType contractx.AssistantType `json:"assistant_type"`

	LastUserMessage string `json:"last_user_message,omitempty"`
	LastIntent      string `json:"last_intent,omitempty"`
	LastPlanKey     string `json:"last_plan_key,omitempty"`
	Turns           int    `json:"turns"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewSessionState(sessionID, userID string, assistantType contractx.AssistantType, now time.Time) *SessionState {
	return &SessionState{
		SessionID:     sessionID,
		UserID:        userID,
		AssistantType: assistantType,
		UpdatedAt:     now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// RecordTurn captures one completed exchange.
func (s *SessionState) RecordTurn(userMessage, intent, planKey string, now time.Time) {
	s.LastUserMessage = userMessage
	s.LastIntent = intent
	if planKey != "" {
		s.LastPlanKey = planKey
	}
	s.Turns++
	s.Touch(now)
}

func (s *SessionState) Validate() error {
	if strings.TrimSpace(s.SessionID) == "" {
		return ErrInvalidSession
	}
	if strings.TrimSpace(s.UserID) == "" {
		return ErrInvalidUser
	}
	return nil
}

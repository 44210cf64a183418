package planstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	"github.com/omarelhadidy/hesab-agent/agent/debtplan"
)

type memoryEntry struct {
	stored  Stored
	savedAt time.Time
}

// InMemoryStore is a process-local Store for tests and single-node runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[Key][]memoryEntry
	now     func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entries: map[Key][]memoryEntry{},
		now:     time.Now,
	}
}

func (s *InMemoryStore) Put(_ context.Context, key Key, plan debtplan.Plan) (string, error) {
	if key.UserID == "" {
		return "", fmt.Errorf("%w: user id is required", contractx.ErrValidation)
	}
	if key.PlanType == "" {
		key.PlanType = DebtPlanType
	}

	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append(s.entries[key], memoryEntry{
		stored:  Stored{ID: id, Key: key, Plan: plan},
		savedAt: s.now(),
	})
	return id, nil
}

func (s *InMemoryStore) FindMostRecent(_ context.Context, key Key) (Stored, error) {
	if key.PlanType == "" {
		key.PlanType = DebtPlanType
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.entries[key]
	if len(entries) == 0 {
		return Stored{}, ErrPlanNotFound
	}

	latest := entries[0]
	for _, e := range entries[1:] {
		if e.savedAt.After(latest.savedAt) {
			latest = e
		}
	}
	return latest.stored, nil
}

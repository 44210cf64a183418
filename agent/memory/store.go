package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
)

// Namespace scopes records per assistant type and user, mirroring the
// (memory_type, assistant_type, user_id) keying of the persisted store.
type Namespace struct {
	AssistantType contractx.AssistantType
	UserID        string
}

// Record is one stored memory value.
type Record struct {
	ID        string         `json:"id"`
	Type      Type           `json:"type"`
	Value     map[string]any `json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store keeps structured memory records. Profile writes replace the single
// profile record; all other types append.
type Store interface {
	Put(ctx context.Context, ns Namespace, t Type, value map[string]any) (Record, error)
	List(ctx context.Context, ns Namespace, t Type) ([]Record, error)
}

// InMemoryStore is a process-local Store for tests and single-node runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string][]Record // keyed by namespace + type
	now     func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: map[string][]Record{},
		now:     time.Now,
	}
}

func (s *InMemoryStore) Put(_ context.Context, ns Namespace, t Type, value map[string]any) (Record, error) {
	if ns.UserID == "" {
		return Record{}, fmt.Errorf("%w: user id is required", contractx.ErrValidation)
	}
	if _, err := ShapeFor(t); err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:        uuid.NewString(),
		Type:      t,
		Value:     value,
		UpdatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := storeKey(ns, t)
	if t == TypeProfile {
		s.records[key] = []Record{rec}
		return rec, nil
	}
	s.records[key] = append(s.records[key], rec)
	return rec, nil
}

func (s *InMemoryStore) List(_ context.Context, ns Namespace, t Type) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.records[storeKey(ns, t)]
	out := make([]Record, len(stored))
	copy(out, stored)
	return out, nil
}

func storeKey(ns Namespace, t Type) string {
	return string(ns.AssistantType) + "/" + ns.UserID + "/" + string(t)
}

// Summarize renders the user's records as prompt context for the advisor
// and summary executors. Types appear in registry order; empty types are
// skipped.
func Summarize(ctx context.Context, store Store, ns Namespace) (string, error) {
	var b strings.Builder
	for _, t := range AllTypes() {
		records, err := store.List(ctx, ns, t)
		if err != nil {
			return "", err
		}
		if len(records) == 0 {
			continue
		}
		sort.Slice(records, func(i, j int) bool {
			return records[i].UpdatedAt.Before(records[j].UpdatedAt)
		})
		fmt.Fprintf(&b, "## %s\n", t)
		for _, rec := range records {
			line, err := json.Marshal(rec.Value)
			if err != nil {
				return "", fmt.Errorf("%w: marshal %s record: %v", contractx.ErrValidation, t, err)
			}
			b.Write(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String()), nil
}

// InMemorySummaries implements the conversation-summary contract for tests
// and single-node runs.
type InMemorySummaries struct {
	mu        sync.RWMutex
	summaries map[string]string
}

func NewInMemorySummaries() *InMemorySummaries {
	return &InMemorySummaries{summaries: map[string]string{}}
}

func (s *InMemorySummaries) ReadSummary(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summaries[userID], nil
}

func (s *InMemorySummaries) WriteSummary(_ context.Context, userID string, update string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", contractx.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[userID] = update
	return nil
}

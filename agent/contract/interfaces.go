package contract

import "context"

// TextModel is the single LLM dependency of the agent. It is always passed
// explicitly; nothing in this module reaches for an ambient client.
type TextModel interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Extractor turns conversation text into a raw parameter mapping. The
// primary implementation is an LLM oracle; a regex fallback sits behind the
// same interface so callers cannot tell them apart. Output is untrusted and
// must be validated before use.
type Extractor interface {
	Extract(ctx context.Context, req ExtractionRequest) (map[string]any, error)
}

// Executor handles one classified intent end to end.
type Executor interface {
	Execute(ctx context.Context, req ExecutorRequest) (ExecutorResponse, error)
}

// MemoryStore persists free-form conversation summaries per user.
type MemoryStore interface {
	ReadSummary(ctx context.Context, userID string) (string, error)
	WriteSummary(ctx context.Context, userID string, update string) error
}

package contract

import "time"

type AssistantType string

const (
	AssistantTypeFinance AssistantType = "finance"
	AssistantTypeTodo    AssistantType = "todo"
)

// Role names follow the chat-completions convention used by the model API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ExtractionRequest asks an oracle for a raw parameter mapping. Shape is a
// JSON skeleton the oracle should fill; Context carries previously known
// values so multi-turn refinements stay anchored.
type ExtractionRequest struct {
	Messages []Message      `json:"messages"`
	Shape    map[string]any `json:"shape"`
	Context  map[string]any `json:"context,omitempty"`
}

// ExecutorRequest is the unit of work dispatched to an intent executor.
type ExecutorRequest struct {
	UserID        string
	AssistantType AssistantType
	Text          string
	History       []Message
	MemorySummary string
	Now           time.Time
}

// ExecutorResponse carries the user-facing reply plus side-channel updates
// the orchestrator applies to session state and stored memories.
type ExecutorResponse struct {
	Reply        string
	MemoryUpdate string
	PlanKey      string
}

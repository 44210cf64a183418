package llm

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
)

// ChatModel adapts an eino chat model to the TextModel contract so callers
// stay decoupled from the model SDK.
type ChatModel struct {
	inner einomodel.BaseChatModel
}

func NewChatModel(inner einomodel.BaseChatModel) *ChatModel {
	return &ChatModel{inner: inner}
}

// NewForRole builds a TextModel for one role from the shared config.
func NewForRole(ctx context.Context, cfg Config, role Role) (*ChatModel, error) {
	orCfg := cfg.OpenRouterFor(role)
	inner, err := orCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: build %s model: %v", contractx.ErrModelInvoke, role, err)
	}
	return NewChatModel(inner), nil
}

func (m *ChatModel) Generate(ctx context.Context, messages []contractx.Message) (string, error) {
	converted := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case contractx.RoleSystem:
			converted = append(converted, schema.SystemMessage(msg.Content))
		case contractx.RoleAssistant:
			converted = append(converted, schema.AssistantMessage(msg.Content, nil))
		case contractx.RoleUser:
			converted = append(converted, schema.UserMessage(msg.Content))
		default:
			return "", fmt.Errorf("%w: unknown message role %q", contractx.ErrValidation, msg.Role)
		}
	}

	out, err := m.inner.Generate(ctx, converted)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if out == nil {
		return "", fmt.Errorf("%w: empty completion", contractx.ErrModelInvoke)
	}
	return out.Content, nil
}

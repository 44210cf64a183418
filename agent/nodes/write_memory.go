package assistantnode

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
)

// WriteMemory appends the executor's memory note to the user's rolling
// summary. Turns without a note leave the summary untouched.
func WriteMemory(
	ctx context.Context,
	in *GraphState,
	memory contractx.MemoryStore,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	update := strings.TrimSpace(in.ExecResp.MemoryUpdate)
	if update == "" {
		return in, nil
	}

	summary := in.MemorySummary
	if summary == "" {
		summary = update
	} else {
		summary = summary + "\n" + update
	}

	if err := memory.WriteSummary(ctx, in.Session.UserID, summary); err != nil {
		return nil, err
	}
	in.MemorySummary = summary
	return in, nil
}

package assistantnode

import (
	"fmt"
	"strings"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := strings.TrimSpace(in.ExecResp.Reply)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: executor returned empty reply", contractx.ErrValidation)
	}
	return GraphOutput{
		Reply:   reply,
		Intent:  in.Classification.Intent,
		PlanKey: in.ExecResp.PlanKey,
	}, nil
}

package assistantnode

import (
	"context"
	"fmt"

	contractx "github.com/omarelhadidy/hesab-agent/agent/contract"
	statex "github.com/omarelhadidy/hesab-agent/agent/state"
)

func SaveSession(
	ctx context.Context,
	in *GraphState,
	store statex.Store,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	in.Session.RecordTurn(in.Text, string(in.Classification.Intent), in.ExecResp.PlanKey, in.Now)
	if err := store.Save(ctx, in.Session); err != nil {
		return nil, err
	}
	return in, nil
}

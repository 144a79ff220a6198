package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

// Finalize lifts the consensus payload into the run result.
func Finalize(in *RunState) (*RunState, error) {
	if in == nil || in.Context == nil {
		return nil, ErrNilState
	}

	resp, ok := in.Context.Response(contractx.RoleConsensusBuilder)
	if !ok {
		return nil, in.fail(contractx.RoleConsensusBuilder, fmt.Errorf("%w: no consensus response recorded", contractx.ErrAggregation))
	}
	payload, ok := resp.Payload.(contractx.ConsensusPayload)
	if !ok {
		return nil, in.fail(contractx.RoleConsensusBuilder, fmt.Errorf("%w: consensus payload has type %T", contractx.ErrAggregation, resp.Payload))
	}

	result := payload.Result()
	in.Consensus = &result
	return in, nil
}

package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	nodex "github.com/tanpawarit/consensus-solver/agent/nodes/orchestrator"
)

func (o *Orchestrator) compileSolveGraph(
	ctx context.Context,
) (compose.Runnable[*nodex.RunState, *nodex.RunState], error) {
	graph := compose.NewGraph[*nodex.RunState, *nodex.RunState]()

	analysis := []contractx.Agent{
		o.models.Agent(contractx.RoleCritic),
		o.models.Agent(contractx.RoleJudgment),
		o.models.Agent(contractx.RoleStrategist),
	}

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.RunState) (*nodex.RunState, error) {
			return nodex.ValidateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("lead_solver",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.RunState) (*nodex.RunState, error) {
			return nodex.RunStage(ctx, in, o.models.Agent(contractx.RoleLeadSolver))
		}),
	); err != nil {
		return nil, fmt.Errorf("add node lead_solver: %w", err)
	}

	if err := graph.AddLambdaNode("analysis",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.RunState) (*nodex.RunState, error) {
			return nodex.RunAnalysisStages(ctx, in, analysis, o.parallelAnalysis)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node analysis: %w", err)
	}

	if err := graph.AddLambdaNode("data_augmentor",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.RunState) (*nodex.RunState, error) {
			return nodex.RunStage(ctx, in, o.models.Agent(contractx.RoleDataAugmentor))
		}),
	); err != nil {
		return nil, fmt.Errorf("add node data_augmentor: %w", err)
	}

	if err := graph.AddLambdaNode("consensus_builder",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.RunState) (*nodex.RunState, error) {
			return nodex.RunStage(ctx, in, o.models.Agent(contractx.RoleConsensusBuilder))
		}),
	); err != nil {
		return nil, fmt.Errorf("add node consensus_builder: %w", err)
	}

	if err := graph.AddLambdaNode("finalize",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.RunState) (*nodex.RunState, error) {
			return nodex.Finalize(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "lead_solver"},
		{"lead_solver", "analysis"},
		{"analysis", "data_augmentor"},
		{"data_augmentor", "consensus_builder"},
		{"consensus_builder", "finalize"},
		{"finalize", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.solve"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}

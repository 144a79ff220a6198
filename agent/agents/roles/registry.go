package roles

import (
	"context"
	"fmt"
	"time"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
	llmx "github.com/tanpawarit/consensus-solver/agent/llm"
	promptx "github.com/tanpawarit/consensus-solver/agent/prompt"
)

type registryImpl struct {
	agents []contractx.Agent
	byRole map[contractx.Role]contractx.Agent
}

func (r *registryImpl) Agent(role contractx.Role) contractx.Agent {
	return r.byRole[role]
}

// Agents returns the agents in pipeline order.
func (r *registryImpl) Agents() []contractx.Agent {
	return append([]contractx.Agent(nil), r.agents...)
}

// NewRegistry builds the six agents against their configured providers.
func NewRegistry(ctx context.Context, cfg llmx.Config, callTimeout time.Duration) (contractx.Registry, error) {
	completers, err := llmx.NewCompleters(ctx, cfg, callTimeout)
	if err != nil {
		return nil, err
	}

	prompts, err := promptx.LoadPromptSet()
	if err != nil {
		return nil, err
	}

	return NewRegistryWith(completers, prompts)
}

// NewRegistryWith builds the agents over caller-supplied completers.
func NewRegistryWith(completers map[contractx.Role]contractx.Completer, prompts promptx.PromptSet) (contractx.Registry, error) {
	builders := map[contractx.Role]func(contractx.Completer, promptx.RolePrompt) (contractx.Agent, error){
		contractx.RoleLeadSolver: func(c contractx.Completer, p promptx.RolePrompt) (contractx.Agent, error) {
			return NewLeadSolver(c, p)
		},
		contractx.RoleCritic: func(c contractx.Completer, p promptx.RolePrompt) (contractx.Agent, error) {
			return NewCritic(c, p)
		},
		contractx.RoleJudgment: func(c contractx.Completer, p promptx.RolePrompt) (contractx.Agent, error) {
			return NewJudgment(c, p)
		},
		contractx.RoleStrategist: func(c contractx.Completer, p promptx.RolePrompt) (contractx.Agent, error) {
			return NewStrategist(c, p)
		},
		contractx.RoleDataAugmentor: func(c contractx.Completer, p promptx.RolePrompt) (contractx.Agent, error) {
			return NewDataAugmentor(c, p)
		},
		contractx.RoleConsensusBuilder: func(c contractx.Completer, p promptx.RolePrompt) (contractx.Agent, error) {
			return NewConsensusBuilder(c, p)
		},
	}

	reg := &registryImpl{byRole: make(map[contractx.Role]contractx.Agent, len(builders))}
	for _, role := range contractx.Roles() {
		agent, err := builders[role](completers[role], prompts.For(role))
		if err != nil {
			return nil, fmt.Errorf("build %s agent: %w", role.Key(), err)
		}
		reg.agents = append(reg.agents, agent)
		reg.byRole[role] = agent
	}
	return reg, nil
}

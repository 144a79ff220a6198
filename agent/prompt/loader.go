package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	contractx "github.com/tanpawarit/consensus-solver/agent/contract"
)

//go:embed template/roles.yaml
var rolesRaw []byte

// RolePrompt is the instruction set and sampling defaults for one role.
type RolePrompt struct {
	System      string  `yaml:"system"`
	Critique    string  `yaml:"critique"`
	Refine      string  `yaml:"refine"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// PromptSet holds loaded prompt content for every role.
type PromptSet struct {
	roles map[contractx.Role]RolePrompt
}

// For returns the prompt of role. The zero RolePrompt is returned for roles
// the set does not hold, which LoadPromptSet never produces.
func (s PromptSet) For(role contractx.Role) RolePrompt {
	return s.roles[role]
}

// LoadPromptSet parses the embedded role catalog with trimmed prompt strings.
// It fails with ErrPromptMissing when a role or its system instruction is absent.
func LoadPromptSet() (PromptSet, error) {
	return parse(rolesRaw)
}

// MustLoadPromptSet panics if the embedded catalog is incomplete.
func MustLoadPromptSet() PromptSet {
	set, err := LoadPromptSet()
	if err != nil {
		panic(err)
	}
	return set
}

func parse(raw []byte) (PromptSet, error) {
	var byKey map[string]RolePrompt
	if err := yaml.Unmarshal(raw, &byKey); err != nil {
		return PromptSet{}, fmt.Errorf("%w: decode role catalog: %v", contractx.ErrPromptMissing, err)
	}

	set := PromptSet{roles: make(map[contractx.Role]RolePrompt, len(contractx.Roles()))}
	for _, role := range contractx.Roles() {
		p, ok := byKey[role.Key()]
		if !ok {
			return PromptSet{}, fmt.Errorf("%w: %s", contractx.ErrPromptMissing, role.Key())
		}
		p.System = strings.TrimSpace(p.System)
		p.Critique = strings.TrimSpace(p.Critique)
		p.Refine = strings.TrimSpace(p.Refine)
		if p.System == "" {
			return PromptSet{}, fmt.Errorf("%w: %s has no system instruction", contractx.ErrPromptMissing, role.Key())
		}
		set.roles[role] = p
	}
	return set, nil
}

// Package plan defines sequential plans over the actions of a planning
// problem, and the action-instance replacement used to map a plan computed on
// a compiled problem back to the problem it was compiled from.
package plan

import (
	"fmt"
	"strings"

	"planc/expr"
	"planc/model"
)

// An ActionInstance is one occurrence of an action in a plan, with the actual
// parameters it is applied to.
type ActionInstance struct {
	Action model.Action
	Params []expr.Node
}

// NewActionInstance returns an instance of the given action.
func NewActionInstance(a model.Action, params ...expr.Node) ActionInstance {
	return ActionInstance{Action: a, Params: params}
}

func (ai ActionInstance) String() string {
	if len(ai.Params) == 0 {
		return ai.Action.Name()
	}
	strs := make([]string, len(ai.Params))
	for i, p := range ai.Params {
		strs[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", ai.Action.Name(), strings.Join(strs, ", "))
}

// A SequentialPlan is an ordered list of action instances.
type SequentialPlan struct {
	Actions []ActionInstance
}

// ReplaceActionInstances returns a new plan where every action instance has
// been rewritten by replace. Instances for which replace reports no
// counterpart are dropped from the result.
func (p *SequentialPlan) ReplaceActionInstances(replace func(ActionInstance) (ActionInstance, bool, error)) (*SequentialPlan, error) {
	np := &SequentialPlan{}
	for _, ai := range p.Actions {
		nai, ok, err := replace(ai)
		if err != nil {
			return nil, fmt.Errorf("could not replace action instance %s: %w", ai, err)
		}
		if !ok {
			continue
		}
		np.Actions = append(np.Actions, nai)
	}
	return np, nil
}

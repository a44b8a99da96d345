package model

import (
	"fmt"

	"planc/expr"
)

// A Fluent is a named, typed state variable.
type Fluent struct {
	Name string
	Type Type
}

// TimedGoals holds the goals that must hold over one time interval.
// The goal list is an implicit conjunction.
type TimedGoals struct {
	Interval TimeInterval
	Goals    []expr.Node
}

// A Problem is an action-based planning problem: a set of fluents with their
// initial values, a set of actions, the goals that must hold at the end of the
// plan and the goals that must hold over declared time intervals.
type Problem struct {
	name       string
	fluents    []Fluent
	fluentIdx  map[string]int
	initial    map[string]expr.Node
	actions    []Action
	actionIdx  map[string]int
	goals      []expr.Node
	timedGoals []TimedGoals
}

// NewProblem returns an empty problem with the given name.
func NewProblem(name string) *Problem {
	return &Problem{
		name:      name,
		fluentIdx: make(map[string]int),
		initial:   make(map[string]expr.Node),
		actionIdx: make(map[string]int),
	}
}

// Name returns the problem's name.
func (p *Problem) Name() string { return p.name }

// SetName renames the problem.
func (p *Problem) SetName(name string) { p.name = name }

// AddFluent declares a fluent with the given default initial value.
// It fails if the fluent's name is already used in the problem.
func (p *Problem) AddFluent(f Fluent, defaultInitial expr.Node) error {
	if p.HasName(f.Name) {
		return fmt.Errorf("name %q is already used in problem %q", f.Name, p.name)
	}
	p.fluentIdx[f.Name] = len(p.fluents)
	p.fluents = append(p.fluents, f)
	p.initial[f.Name] = defaultInitial
	return nil
}

// Fluents returns the problem's fluents, in declaration order.
func (p *Problem) Fluents() []Fluent { return p.fluents }

// Fluent returns the declared fluent with the given name.
func (p *Problem) Fluent(name string) (Fluent, bool) {
	i, ok := p.fluentIdx[name]
	if !ok {
		return Fluent{}, false
	}
	return p.fluents[i], true
}

// InitialValue returns the declared initial value of the named fluent.
func (p *Problem) InitialValue(name string) (expr.Node, bool) {
	v, ok := p.initial[name]
	return v, ok
}

// SetInitialValue overrides the initial value of the named fluent.
func (p *Problem) SetInitialValue(name string, value expr.Node) error {
	if _, ok := p.fluentIdx[name]; !ok {
		return fmt.Errorf("no fluent named %q in problem %q", name, p.name)
	}
	p.initial[name] = value
	return nil
}

// AddAction adds an action to the problem.
// It fails if the action's name is already used in the problem.
func (p *Problem) AddAction(a Action) error {
	if p.HasName(a.Name()) {
		return fmt.Errorf("name %q is already used in problem %q", a.Name(), p.name)
	}
	p.actionIdx[a.Name()] = len(p.actions)
	p.actions = append(p.actions, a)
	return nil
}

// Actions returns the problem's actions, in insertion order.
func (p *Problem) Actions() []Action { return p.actions }

// Action returns the action with the given name.
func (p *Problem) Action(name string) (Action, bool) {
	i, ok := p.actionIdx[name]
	if !ok {
		return nil, false
	}
	return p.actions[i], true
}

// ClearActions removes all the problem's actions.
func (p *Problem) ClearActions() {
	p.actions = nil
	p.actionIdx = make(map[string]int)
}

// AddGoal appends a condition to the plain goal, an implicit conjunction that
// must hold at the end of the plan. The True constant is ignored.
func (p *Problem) AddGoal(g expr.Node) {
	if expr.IsTrue(g) {
		return
	}
	p.goals = append(p.goals, g)
}

// Goals returns the plain goal list.
func (p *Problem) Goals() []expr.Node { return p.goals }

// ClearGoals removes the plain goal.
func (p *Problem) ClearGoals() { p.goals = nil }

// AddTimedGoal requires g to hold over the given interval. The True constant
// is ignored. Interval order is preserved.
func (p *Problem) AddTimedGoal(interval TimeInterval, g expr.Node) {
	if expr.IsTrue(g) {
		return
	}
	for i := range p.timedGoals {
		if p.timedGoals[i].Interval == interval {
			p.timedGoals[i].Goals = append(p.timedGoals[i].Goals, g)
			return
		}
	}
	p.timedGoals = append(p.timedGoals, TimedGoals{Interval: interval, Goals: []expr.Node{g}})
}

// TimedGoals returns the per-interval goal lists, in insertion order.
func (p *Problem) TimedGoals() []TimedGoals { return p.timedGoals }

// ClearTimedGoals removes all timed goals.
func (p *Problem) ClearTimedGoals() { p.timedGoals = nil }

// HasName reports whether the given name is already used by a fluent or an
// action of the problem.
func (p *Problem) HasName(name string) bool {
	if _, ok := p.fluentIdx[name]; ok {
		return true
	}
	_, ok := p.actionIdx[name]
	return ok
}

// FreshName returns a name derived from base that is not used by any fluent or
// action of the problem. Allocation is deterministic: the first free name in
// the sequence base_0, base_1, ... is returned.
func (p *Problem) FreshName(base string) string {
	for i := 0; ; i++ {
		name := fmt.Sprintf("%s_%d", base, i)
		if !p.HasName(name) {
			return name
		}
	}
}

// Clone returns an independent copy of the problem. Actions are deep-copied;
// expression trees are shared, since they are immutable.
func (p *Problem) Clone() *Problem {
	np := NewProblem(p.name)
	np.fluents = append([]Fluent(nil), p.fluents...)
	for name, i := range p.fluentIdx {
		np.fluentIdx[name] = i
	}
	for name, v := range p.initial {
		np.initial[name] = v
	}
	for _, a := range p.actions {
		switch a := a.(type) {
		case *InstantaneousAction:
			np.actions = append(np.actions, a.Clone(a.Name()))
		case *DurativeAction:
			np.actions = append(np.actions, a.Clone(a.Name()))
		default:
			np.actions = append(np.actions, a)
		}
	}
	for name, i := range p.actionIdx {
		np.actionIdx[name] = i
	}
	np.goals = append([]expr.Node(nil), p.goals...)
	np.timedGoals = make([]TimedGoals, len(p.timedGoals))
	for i, tg := range p.timedGoals {
		np.timedGoals[i] = TimedGoals{
			Interval: tg.Interval,
			Goals:    append([]expr.Node(nil), tg.Goals...),
		}
	}
	return np
}

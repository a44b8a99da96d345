package model

import (
	"fmt"
	"strings"

	"planc/expr"
)

// A Type is the declared type of a fluent or parameter.
type Type byte

const (
	// BoolType is the type of boolean fluents.
	BoolType Type = iota
	// IntType is the type of integer-valued fluents.
	IntType
	// RealType is the type of real-valued fluents.
	RealType
)

func (t Type) String() string {
	switch t {
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	default:
		return "real"
	}
}

// A Parameter is a typed formal parameter of an action.
type Parameter struct {
	Name string
	Type Type
}

// An Action is either an InstantaneousAction or a DurativeAction.
type Action interface {
	Name() string
	Parameters() []Parameter
}

// An InstantaneousAction is an action whose preconditions are all checked at
// once and whose effects all apply at once. Its precondition list is an
// implicit conjunction.
type InstantaneousAction struct {
	name          string
	params        []Parameter
	preconditions []expr.Node
	effects       []Effect
}

// NewInstantaneousAction returns an action with the given name and parameters,
// no preconditions and no effects.
func NewInstantaneousAction(name string, params ...Parameter) *InstantaneousAction {
	return &InstantaneousAction{name: name, params: params}
}

// Name returns the action's name.
func (a *InstantaneousAction) Name() string { return a.name }

// Parameters returns the action's formal parameters.
func (a *InstantaneousAction) Parameters() []Parameter { return a.params }

// Preconditions returns the action's precondition list, an implicit conjunction.
func (a *InstantaneousAction) Preconditions() []expr.Node { return a.preconditions }

// AddPrecondition appends a condition to the action's preconditions.
// The True constant and conditions already present are ignored.
func (a *InstantaneousAction) AddPrecondition(c expr.Node) {
	if expr.IsTrue(c) {
		return
	}
	for _, p := range a.preconditions {
		if expr.Equal(p, c) {
			return
		}
	}
	a.preconditions = append(a.preconditions, c)
}

// ClearPreconditions removes all the action's preconditions.
func (a *InstantaneousAction) ClearPreconditions() { a.preconditions = nil }

// Effects returns the action's effect list.
func (a *InstantaneousAction) Effects() []Effect { return a.effects }

// AddEffect appends the unconditional effect "fluent := value".
func (a *InstantaneousAction) AddEffect(fluent, value expr.Node) {
	a.effects = append(a.effects, AssignEffect(fluent, value))
}

// AddConditionalEffect appends the effect "if condition then fluent := value".
func (a *InstantaneousAction) AddConditionalEffect(fluent, value, condition expr.Node) {
	a.effects = append(a.effects, ConditionalEffect(fluent, value, condition))
}

// AppendEffect appends an already-built effect instance.
func (a *InstantaneousAction) AppendEffect(e Effect) {
	a.effects = append(a.effects, e)
}

// ClearEffects removes all the action's effects.
func (a *InstantaneousAction) ClearEffects() { a.effects = nil }

// Clone returns an independent copy of the action under the given name.
// Expression trees are shared, since they are immutable.
func (a *InstantaneousAction) Clone(name string) *InstantaneousAction {
	na := &InstantaneousAction{
		name:          name,
		params:        append([]Parameter(nil), a.params...),
		preconditions: append([]expr.Node(nil), a.preconditions...),
		effects:       append([]Effect(nil), a.effects...),
	}
	return na
}

func (a *InstantaneousAction) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "action %s", a.name)
	for _, p := range a.preconditions {
		fmt.Fprintf(&b, "\n  pre  %s", p)
	}
	for _, e := range a.effects {
		fmt.Fprintf(&b, "\n  eff  %s", e)
	}
	return b.String()
}

// IntervalConditions holds the conditions a durative action requires over one
// time interval. The condition list is an implicit conjunction.
type IntervalConditions struct {
	Interval   TimeInterval
	Conditions []expr.Node
}

// TimedEffects holds the effects a durative action applies at one timing.
type TimedEffects struct {
	Timing  Timing
	Effects []Effect
}

// A DurativeAction is an action with a duration, conditions that must hold
// over declared time intervals and effects that apply at declared timings.
// Interval and timing order is preserved.
type DurativeAction struct {
	name        string
	params      []Parameter
	lower       expr.Node
	upper       expr.Node
	isLeftOpen  bool
	isRightOpen bool
	conditions  []IntervalConditions
	effects     []TimedEffects
}

// NewDurativeAction returns a durative action with the given name and
// parameters and a fixed zero duration.
func NewDurativeAction(name string, params ...Parameter) *DurativeAction {
	return &DurativeAction{name: name, params: params, lower: expr.Num(0), upper: expr.Num(0)}
}

// Name returns the action's name.
func (a *DurativeAction) Name() string { return a.name }

// Parameters returns the action's formal parameters.
func (a *DurativeAction) Parameters() []Parameter { return a.params }

// SetDurationBounds constrains the action's duration to [lower, upper].
func (a *DurativeAction) SetDurationBounds(lower, upper expr.Node) {
	a.lower, a.upper = lower, upper
	a.isLeftOpen, a.isRightOpen = false, false
}

// SetOpenDurationBounds constrains the action's duration to ]lower, upper[.
func (a *DurativeAction) SetOpenDurationBounds(lower, upper expr.Node) {
	a.lower, a.upper = lower, upper
	a.isLeftOpen, a.isRightOpen = true, true
}

// DurationBounds returns the duration bounds and whether each is strict.
func (a *DurativeAction) DurationBounds() (lower, upper expr.Node, leftOpen, rightOpen bool) {
	return a.lower, a.upper, a.isLeftOpen, a.isRightOpen
}

// Conditions returns the per-interval condition lists, in insertion order.
func (a *DurativeAction) Conditions() []IntervalConditions {
	return a.conditions
}

// AddCondition requires c to hold over the given interval.
// The True constant and conditions already present over the same interval are
// ignored.
func (a *DurativeAction) AddCondition(interval TimeInterval, c expr.Node) {
	if expr.IsTrue(c) {
		return
	}
	for i := range a.conditions {
		if a.conditions[i].Interval == interval {
			for _, p := range a.conditions[i].Conditions {
				if expr.Equal(p, c) {
					return
				}
			}
			a.conditions[i].Conditions = append(a.conditions[i].Conditions, c)
			return
		}
	}
	a.conditions = append(a.conditions, IntervalConditions{Interval: interval, Conditions: []expr.Node{c}})
}

// ClearConditions removes all the action's conditions.
func (a *DurativeAction) ClearConditions() { a.conditions = nil }

// Effects returns the per-timing effect lists, in insertion order.
func (a *DurativeAction) Effects() []TimedEffects {
	return a.effects
}

// AddEffectAt appends the unconditional effect "fluent := value" at the given timing.
func (a *DurativeAction) AddEffectAt(t Timing, fluent, value expr.Node) {
	a.AppendEffectAt(t, AssignEffect(fluent, value))
}

// AddConditionalEffectAt appends "if condition then fluent := value" at the given timing.
func (a *DurativeAction) AddConditionalEffectAt(t Timing, fluent, value, condition expr.Node) {
	a.AppendEffectAt(t, ConditionalEffect(fluent, value, condition))
}

// AppendEffectAt appends an already-built effect instance at the given timing.
func (a *DurativeAction) AppendEffectAt(t Timing, e Effect) {
	for i := range a.effects {
		if a.effects[i].Timing == t {
			a.effects[i].Effects = append(a.effects[i].Effects, e)
			return
		}
	}
	a.effects = append(a.effects, TimedEffects{Timing: t, Effects: []Effect{e}})
}

// ClearEffects removes all the action's effects.
func (a *DurativeAction) ClearEffects() { a.effects = nil }

// Clone returns an independent copy of the action under the given name.
// Expression trees are shared, since they are immutable.
func (a *DurativeAction) Clone(name string) *DurativeAction {
	na := &DurativeAction{
		name:        name,
		params:      append([]Parameter(nil), a.params...),
		lower:       a.lower,
		upper:       a.upper,
		isLeftOpen:  a.isLeftOpen,
		isRightOpen: a.isRightOpen,
	}
	na.conditions = make([]IntervalConditions, len(a.conditions))
	for i, ic := range a.conditions {
		na.conditions[i] = IntervalConditions{
			Interval:   ic.Interval,
			Conditions: append([]expr.Node(nil), ic.Conditions...),
		}
	}
	na.effects = make([]TimedEffects, len(a.effects))
	for i, te := range a.effects {
		na.effects[i] = TimedEffects{
			Timing:  te.Timing,
			Effects: append([]Effect(nil), te.Effects...),
		}
	}
	return na
}

func (a *DurativeAction) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "durative action %s", a.name)
	for _, ic := range a.conditions {
		for _, c := range ic.Conditions {
			fmt.Fprintf(&b, "\n  cond %s: %s", ic.Interval, c)
		}
	}
	for _, te := range a.effects {
		for _, e := range te.Effects {
			fmt.Fprintf(&b, "\n  eff  %s: %s", te.Timing, e)
		}
	}
	return b.String()
}

package model

import (
	"fmt"

	"planc/expr"
)

// An EffectKind tells how an effect changes the value of its fluent.
type EffectKind byte

const (
	// Assign replaces the fluent's value.
	Assign EffectKind = iota
	// Increase adds the effect's value to the fluent.
	Increase
	// Decrease subtracts the effect's value from the fluent.
	Decrease
)

// An Effect changes the value of one fluent when its condition holds.
// A condition equal to expr.True denotes an unconditional effect.
// Effects are value types: the expression trees they point to are immutable,
// so copying an Effect is always safe.
type Effect struct {
	Fluent    expr.Node
	Value     expr.Node
	Condition expr.Node
	Kind      EffectKind
}

// AssignEffect returns the unconditional effect "fluent := value".
func AssignEffect(fluent, value expr.Node) Effect {
	return Effect{Fluent: fluent, Value: value, Condition: expr.True, Kind: Assign}
}

// ConditionalEffect returns the effect "if condition then fluent := value".
func ConditionalEffect(fluent, value, condition expr.Node) Effect {
	return Effect{Fluent: fluent, Value: value, Condition: condition, Kind: Assign}
}

// IsConditional reports whether the effect is guarded by a non-trivial condition.
func (e Effect) IsConditional() bool {
	return !expr.IsTrue(e.Condition)
}

// WithCondition returns a copy of e guarded by the given condition.
func (e Effect) WithCondition(condition expr.Node) Effect {
	e.Condition = condition
	return e
}

func (e Effect) String() string {
	var op string
	switch e.Kind {
	case Assign:
		op = ":="
	case Increase:
		op = "+="
	default:
		op = "-="
	}
	if e.IsConditional() {
		return fmt.Sprintf("if %s then %s %s %s", e.Condition, e.Fluent, op, e.Value)
	}
	return fmt.Sprintf("%s %s %s", e.Fluent, op, e.Value)
}

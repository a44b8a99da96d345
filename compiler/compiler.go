// Package compiler holds problem-to-problem transformations. A compiler takes
// a planning problem and returns an equivalent problem in a restricted
// fragment, together with a translation that maps a plan computed on the new
// problem back to the original one.
package compiler

import (
	"errors"

	"planc/model"
	"planc/plan"
)

// A CompilationKind selects the transformation a compiler must apply.
type CompilationKind byte

const (
	// Grounding removes action parameters by instantiating them.
	Grounding CompilationKind = iota
	// DisjunctiveConditionsRemoving removes the "or" connective from action
	// conditions and goals.
	DisjunctiveConditionsRemoving
	// NegativeConditionsRemoving removes the "not" connective from action
	// conditions and goals.
	NegativeConditionsRemoving
	// ConditionalEffectsRemoving removes conditional effects.
	ConditionalEffectsRemoving
)

func (ck CompilationKind) String() string {
	switch ck {
	case Grounding:
		return "grounding"
	case DisjunctiveConditionsRemoving:
		return "disjunctive conditions removing"
	case NegativeConditionsRemoving:
		return "negative conditions removing"
	case ConditionalEffectsRemoving:
		return "conditional effects removing"
	default:
		return "unknown compilation kind"
	}
}

// ErrUnsupportedCompilationKind is returned when a compiler is invoked with a
// compilation kind it does not implement.
var ErrUnsupportedCompilationKind = errors.New("unsupported compilation kind")

// ErrUnsupportedProblemKind is returned when a problem requires features the
// compiler does not accept.
var ErrUnsupportedProblemKind = errors.New("unsupported problem kind")

// A Translation maps an action instance of a compiled problem back to an
// instance over the original problem. The second return value is false when
// the instance has no counterpart in the original problem and must be dropped
// from the translated plan.
type Translation func(plan.ActionInstance) (plan.ActionInstance, bool, error)

// A Result is the outcome of a compilation: the new problem, the translation
// back to the original problem and the name of the engine that produced it.
type Result struct {
	Problem    *model.Problem
	Translate  Translation
	EngineName string
}

// A Compiler transforms problems for one or more compilation kinds.
type Compiler interface {
	Name() string
	SupportsCompilation(CompilationKind) bool
	Supports(model.Kind) bool
	Compile(*model.Problem, CompilationKind) (*Result, error)
}

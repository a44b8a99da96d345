// Package expr offers facilities to build and rewrite the condition and value
// formulas of a planning problem.
//
// Formulas are immutable trees made of the logical connectors And, Or and Not,
// the True and False constants, fluent references and a small set of numeric
// nodes (constants, comparisons and arithmetic) that the logical layer treats
// as opaque atoms.
//
// The two rewriting entry points are Dnf, which converts any formula into an
// equivalent "or of ands", and Simplify, which removes trivially-true and
// trivially-false subterms. Both build new trees and never mutate their input,
// so subformulas can safely be shared between the trees derived from them.
package expr

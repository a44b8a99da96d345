package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// A Node is any kind of condition or value formula, not necessarily in a normal form.
// Nodes are immutable: operations that transform a formula build new trees and never
// touch shared subtrees.
type Node interface {
	String() string
	// Eval evaluates a ground boolean formula under the given fluent valuation.
	// It panics on formulas that are not boolean or reference an unbound fluent.
	Eval(state map[string]bool) bool
}

// The "true" constant.
type trueConst struct{}

// True is the constant denoting a condition that always holds.
var True Node = trueConst{}

func (t trueConst) String() string            { return "⊤" }
func (t trueConst) Eval(map[string]bool) bool { return true }

// The "false" constant.
type falseConst struct{}

// False is the constant denoting a condition that never holds.
var False Node = falseConst{}

func (f falseConst) String() string            { return "⊥" }
func (f falseConst) Eval(map[string]bool) bool { return false }

// Bool returns the constant node for the given truth value.
func Bool(b bool) Node {
	if b {
		return True
	}
	return False
}

// Fluent generates a reference to the named boolean state variable.
func Fluent(name string) Node {
	return fluent{name: name}
}

type fluent struct {
	name string
}

func (f fluent) String() string { return f.name }

func (f fluent) Eval(state map[string]bool) bool {
	b, ok := state[f.name]
	if !ok {
		panic(fmt.Errorf("state lacks binding for fluent %s", f.name))
	}
	return b
}

// Not represents a negation. It negates the given subformula.
func Not(f Node) Node {
	return not{f}
}

type not [1]Node

func (n not) String() string { return "not(" + n[0].String() + ")" }

func (n not) Eval(state map[string]bool) bool { return !n[0].Eval(state) }

// And generates a conjunction of subformulas.
// An empty conjunction is True, a singleton conjunction is its only member.
func And(subs ...Node) Node {
	if len(subs) == 0 {
		return True
	}
	if len(subs) == 1 {
		return subs[0]
	}
	res := make(and, len(subs))
	copy(res, subs)
	return res
}

type and []Node

func (a and) String() string {
	strs := make([]string, len(a))
	for i, f := range a {
		strs[i] = f.String()
	}
	return "and(" + strings.Join(strs, ", ") + ")"
}

func (a and) Eval(state map[string]bool) bool {
	for _, s := range a {
		if !s.Eval(state) {
			return false
		}
	}
	return true
}

// Or generates a disjunction of subformulas.
// An empty disjunction is False, a singleton disjunction is its only member.
func Or(subs ...Node) Node {
	if len(subs) == 0 {
		return False
	}
	if len(subs) == 1 {
		return subs[0]
	}
	res := make(or, len(subs))
	copy(res, subs)
	return res
}

type or []Node

func (o or) String() string {
	strs := make([]string, len(o))
	for i, f := range o {
		strs[i] = f.String()
	}
	return "or(" + strings.Join(strs, ", ") + ")"
}

func (o or) Eval(state map[string]bool) bool {
	for _, s := range o {
		if s.Eval(state) {
			return true
		}
	}
	return false
}

// Num generates a numeric constant node.
func Num(v float64) Node {
	return num{val: v}
}

type num struct {
	val float64
}

func (n num) String() string { return strconv.FormatFloat(n.val, 'g', -1, 64) }

func (n num) Eval(map[string]bool) bool {
	panic(fmt.Errorf("formula %s is not boolean", n))
}

type cmpOp byte

const (
	opEq cmpOp = iota
	opLE
	opLT
)

// Eq generates an equality comparison between two value expressions.
func Eq(lhs, rhs Node) Node { return cmp{op: opEq, lhs: lhs, rhs: rhs} }

// LE generates a less-or-equal comparison between two value expressions.
func LE(lhs, rhs Node) Node { return cmp{op: opLE, lhs: lhs, rhs: rhs} }

// LT generates a strict less-than comparison between two value expressions.
func LT(lhs, rhs Node) Node { return cmp{op: opLT, lhs: lhs, rhs: rhs} }

type cmp struct {
	op       cmpOp
	lhs, rhs Node
}

func (c cmp) String() string {
	var name string
	switch c.op {
	case opEq:
		name = "eq"
	case opLE:
		name = "le"
	default:
		name = "lt"
	}
	return name + "(" + c.lhs.String() + ", " + c.rhs.String() + ")"
}

func (c cmp) Eval(map[string]bool) bool {
	l, lok := c.lhs.(num)
	r, rok := c.rhs.(num)
	if !lok || !rok {
		panic(fmt.Errorf("cannot evaluate comparison %s over non-constant operands", c))
	}
	switch c.op {
	case opEq:
		return l.val == r.val
	case opLE:
		return l.val <= r.val
	default:
		return l.val < r.val
	}
}

type arithOp byte

const (
	opPlus arithOp = iota
	opMinus
)

// Plus generates the sum of two value expressions.
func Plus(lhs, rhs Node) Node { return arith{op: opPlus, lhs: lhs, rhs: rhs} }

// Minus generates the difference of two value expressions.
func Minus(lhs, rhs Node) Node { return arith{op: opMinus, lhs: lhs, rhs: rhs} }

type arith struct {
	op       arithOp
	lhs, rhs Node
}

func (a arith) String() string {
	name := "add"
	if a.op == opMinus {
		name = "sub"
	}
	return name + "(" + a.lhs.String() + ", " + a.rhs.String() + ")"
}

func (a arith) Eval(map[string]bool) bool {
	panic(fmt.Errorf("formula %s is not boolean", a))
}

// IsTrue reports whether f is the True constant.
func IsTrue(f Node) bool {
	_, ok := f.(trueConst)
	return ok
}

// IsFalse reports whether f is the False constant.
func IsFalse(f Node) bool {
	_, ok := f.(falseConst)
	return ok
}

// IsAnd reports whether the top-level form of f is a conjunction.
func IsAnd(f Node) bool {
	_, ok := f.(and)
	return ok
}

// IsOr reports whether the top-level form of f is a disjunction.
func IsOr(f Node) bool {
	_, ok := f.(or)
	return ok
}

// IsNot reports whether the top-level form of f is a negation.
func IsNot(f Node) bool {
	_, ok := f.(not)
	return ok
}

// NotOperand returns the negated subformula of a negation, and nil for any
// other node.
func NotOperand(f Node) Node {
	if n, ok := f.(not); ok {
		return n[0]
	}
	return nil
}

// IsEquality reports whether f is an equality comparison.
func IsEquality(f Node) bool {
	c, ok := f.(cmp)
	return ok && c.op == opEq
}

// IsFluent reports whether f is a fluent reference, returning its name.
func IsFluent(f Node) (string, bool) {
	fl, ok := f.(fluent)
	return fl.name, ok
}

// Operands returns the direct subformulas of a conjunction or disjunction,
// and nil for any other node.
func Operands(f Node) []Node {
	switch f := f.(type) {
	case and:
		return f
	case or:
		return f
	default:
		return nil
	}
}

// Equal reports whether two formulas are structurally identical.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case trueConst:
		return IsTrue(b)
	case falseConst:
		return IsFalse(b)
	case fluent:
		bf, ok := b.(fluent)
		return ok && a.name == bf.name
	case num:
		bn, ok := b.(num)
		return ok && a.val == bn.val
	case not:
		bn, ok := b.(not)
		return ok && Equal(a[0], bn[0])
	case and:
		bn, ok := b.(and)
		return ok && equalSlices(a, bn)
	case or:
		bn, ok := b.(or)
		return ok && equalSlices(a, bn)
	case cmp:
		bc, ok := b.(cmp)
		return ok && a.op == bc.op && Equal(a.lhs, bc.lhs) && Equal(a.rhs, bc.rhs)
	case arith:
		ba, ok := b.(arith)
		return ok && a.op == ba.op && Equal(a.lhs, ba.lhs) && Equal(a.rhs, ba.rhs)
	default:
		return false
	}
}

func equalSlices(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Walk visits f and every subformula of f in preorder.
func Walk(f Node, visit func(Node)) {
	visit(f)
	switch f := f.(type) {
	case not:
		Walk(f[0], visit)
	case and:
		for _, s := range f {
			Walk(s, visit)
		}
	case or:
		for _, s := range f {
			Walk(s, visit)
		}
	case cmp:
		Walk(f.lhs, visit)
		Walk(f.rhs, visit)
	case arith:
		Walk(f.lhs, visit)
		Walk(f.rhs, visit)
	}
}

package expr

// Dnf returns a formula equivalent to f in disjunctive normal form, an "or" of
// "and"-clauses. When f contains no disjunction the result has no top-level "or"
// node at all, so callers can branch on IsOr to detect genuine alternatives.
//
// The conversion first rewrites f into negation normal form, pushing negations
// down to the leaves, then distributes conjunctions over disjunctions. The
// distribution is the classic cross-product of branches, so the result can be
// exponentially larger than f.
func Dnf(f Node) Node {
	branches := dnfBranches(nnf(f))
	if branches == nil {
		return False
	}
	disjuncts := make([]Node, len(branches))
	for i, b := range branches {
		disjuncts[i] = And(b...)
	}
	return Or(disjuncts...)
}

// nnf pushes negations down to atoms and flattens nested connectives,
// absorbing the True and False constants on the way.
func nnf(f Node) Node {
	switch f := f.(type) {
	case and:
		var res []Node
		for _, s := range f {
			switch sub := nnf(s).(type) {
			case and: // "and"s in the "and" get to the higher level
				res = append(res, sub...)
			case trueConst: // True is ignored
			case falseConst:
				return False
			default:
				res = append(res, sub)
			}
		}
		return And(res...)
	case or:
		var res []Node
		for _, s := range f {
			switch sub := nnf(s).(type) {
			case or: // "or"s in the "or" get to the higher level
				res = append(res, sub...)
			case falseConst: // False is ignored
			case trueConst:
				return True
			default:
				res = append(res, sub)
			}
		}
		return Or(res...)
	case not:
		switch sub := f[0].(type) {
		case trueConst:
			return False
		case falseConst:
			return True
		case not:
			return nnf(sub[0])
		case and:
			subs := make([]Node, len(sub))
			for i, s := range sub {
				subs[i] = not{s}
			}
			return nnf(Or(subs...))
		case or:
			subs := make([]Node, len(sub))
			for i, s := range sub {
				subs[i] = not{s}
			}
			return nnf(And(subs...))
		default: // negated atom, a literal
			return f
		}
	default:
		return f
	}
}

// dnfBranches converts an NNF formula into its list of "and"-branches.
// Each branch is one disjunct of the DNF. A nil result denotes False,
// a single empty branch denotes True.
func dnfBranches(f Node) [][]Node {
	switch f := f.(type) {
	case or:
		var res [][]Node
		for _, sub := range f {
			res = append(res, dnfBranches(sub)...)
		}
		return res
	case and:
		res := [][]Node{nil}
		for _, sub := range f {
			subBranches := dnfBranches(sub)
			next := make([][]Node, 0, len(res)*len(subBranches))
			for _, left := range res {
				for _, right := range subBranches {
					merged := make([]Node, 0, len(left)+len(right))
					merged = append(merged, left...)
					merged = append(merged, right...)
					next = append(next, merged)
				}
			}
			res = next
		}
		return res
	case trueConst:
		return [][]Node{nil}
	case falseConst:
		return nil
	default:
		return [][]Node{{f}}
	}
}

package expr

// Simplify returns a formula equivalent to f with trivially-true and
// trivially-false subterms removed. It folds the True/False constants out of
// connectives, cancels double negations, drops duplicated operands and detects
// complementary literals inside a single conjunction or disjunction, reducing
// "a and not(a)" to False and "a or not(a)" to True. Simplify is idempotent.
func Simplify(f Node) Node {
	switch f := f.(type) {
	case and:
		var subs []Node
		for _, s := range f {
			s = Simplify(s)
			switch {
			case IsTrue(s):
			case IsFalse(s):
				return False
			case IsAnd(s):
				subs = appendUnique(subs, Operands(s)...)
			default:
				subs = appendUnique(subs, s)
			}
		}
		if hasComplementaryPair(subs) {
			return False
		}
		return And(subs...)
	case or:
		var subs []Node
		for _, s := range f {
			s = Simplify(s)
			switch {
			case IsFalse(s):
			case IsTrue(s):
				return True
			case IsOr(s):
				subs = appendUnique(subs, Operands(s)...)
			default:
				subs = appendUnique(subs, s)
			}
		}
		if hasComplementaryPair(subs) {
			return True
		}
		return Or(subs...)
	case not:
		sub := Simplify(f[0])
		switch sub := sub.(type) {
		case trueConst:
			return False
		case falseConst:
			return True
		case not:
			return sub[0]
		default:
			return not{sub}
		}
	case cmp:
		// Comparisons over two constants fold to a truth value.
		if _, lok := f.lhs.(num); lok {
			if _, rok := f.rhs.(num); rok {
				return Bool(f.Eval(nil))
			}
		}
		return f
	default:
		return f
	}
}

func appendUnique(subs []Node, more ...Node) []Node {
	for _, m := range more {
		dup := false
		for _, s := range subs {
			if Equal(s, m) {
				dup = true
				break
			}
		}
		if !dup {
			subs = append(subs, m)
		}
	}
	return subs
}

func hasComplementaryPair(subs []Node) bool {
	for i, a := range subs {
		for _, b := range subs[i+1:] {
			if complementary(a, b) {
				return true
			}
		}
	}
	return false
}

func complementary(a, b Node) bool {
	if n, ok := a.(not); ok && Equal(n[0], b) {
		return true
	}
	if n, ok := b.(not); ok && Equal(n[0], a) {
		return true
	}
	return false
}

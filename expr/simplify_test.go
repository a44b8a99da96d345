package expr

import "testing"

func TestSimplify(t *testing.T) {
	tests := []struct {
		f        Node
		expected string
	}{
		{And(Fluent("a"), True), "a"},
		{And(Fluent("a"), False), "⊥"},
		{Or(Fluent("a"), False), "a"},
		{Or(Fluent("a"), True), "⊤"},
		{And(Fluent("a"), Not(Fluent("a"))), "⊥"},
		{Or(Fluent("a"), Not(Fluent("a"))), "⊤"},
		{Not(Not(Fluent("a"))), "a"},
		{And(Fluent("a"), Fluent("a")), "a"},
		{And(Fluent("a"), And(Fluent("b"), True)), "and(a, b)"},
		{Eq(Num(1), Num(1)), "⊤"},
		{Eq(Num(1), Num(2)), "⊥"},
		{LT(Num(1), Num(2)), "⊤"},
		{LE(Fluent("x"), Num(2)), "le(x, 2)"},
	}
	for _, test := range tests {
		if s := Simplify(test.f); s.String() != test.expected {
			t.Errorf("Simplify(%s): wanted %q, got %q", test.f, test.expected, s)
		}
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	f := And(Or(Fluent("a"), False), Not(Not(Fluent("b"))), True)
	once := Simplify(f)
	twice := Simplify(once)
	if !Equal(once, twice) {
		t.Errorf("simplify not idempotent: %s vs %s", once, twice)
	}
}

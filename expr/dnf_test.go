package expr

import (
	"fmt"
	"testing"
)

func TestDnfDistributes(t *testing.T) {
	f := And(Or(Fluent("a"), Fluent("b")), Fluent("c"))
	d := Dnf(f)
	if !IsOr(d) {
		t.Fatalf("expected top-level or, got %s", d)
	}
	const expected = "or(and(a, c), and(b, c))"
	if d.String() != expected {
		t.Errorf("wanted %q, got %q", expected, d.String())
	}
}

func TestDnfNoDisjunction(t *testing.T) {
	f := And(Fluent("a"), Fluent("b"))
	d := Dnf(f)
	if IsOr(d) {
		t.Errorf("conjunction should not produce a top-level or, got %s", d)
	}
	if d.String() != "and(a, b)" {
		t.Errorf("unexpected dnf %s", d)
	}
}

func TestDnfPushesNegations(t *testing.T) {
	f := Not(And(Fluent("a"), Fluent("b")))
	d := Dnf(f)
	const expected = "or(not(a), not(b))"
	if d.String() != expected {
		t.Errorf("wanted %q, got %q", expected, d.String())
	}
}

func TestDnfNestedOr(t *testing.T) {
	f := Or(Fluent("a"), Or(Fluent("b"), Fluent("c")))
	d := Dnf(f)
	if len(Operands(d)) != 3 {
		t.Errorf("nested or should flatten to 3 disjuncts, got %s", d)
	}
}

func TestDnfConstants(t *testing.T) {
	if d := Dnf(And(Fluent("a"), False)); !IsFalse(d) {
		t.Errorf("and with false should collapse, got %s", d)
	}
	if d := Dnf(Or(Fluent("a"), True)); !IsTrue(d) {
		t.Errorf("or with true should collapse, got %s", d)
	}
	if d := Dnf(Not(False)); !IsTrue(d) {
		t.Errorf("not(false) should be true, got %s", d)
	}
}

func TestDnfEquivalent(t *testing.T) {
	f := And(Or(Fluent("a"), Fluent("b")), Or(Fluent("c"), Not(Fluent("a"))))
	d := Dnf(f)
	for i := 0; i < 8; i++ {
		state := map[string]bool{
			"a": i&1 != 0,
			"b": i&2 != 0,
			"c": i&4 != 0,
		}
		if f.Eval(state) != d.Eval(state) {
			t.Errorf("dnf not equivalent under %v: %s vs %s", state, f, d)
		}
	}
}

func ExampleDnf() {
	f := And(Or(Fluent("a"), Fluent("b")), Fluent("c"))
	fmt.Println(Dnf(f))
	// Output: or(and(a, c), and(b, c))
}

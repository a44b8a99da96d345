package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planc/expr"
)

func TestFreshName(t *testing.T) {
	p := NewProblem("demo")
	require.NoError(t, p.AddFluent(Fluent{Name: "move_0", Type: BoolType}, expr.False))
	require.NoError(t, p.AddAction(NewInstantaneousAction("move_1")))
	assert.Equal(t, "move_2", p.FreshName("move"))
	assert.Equal(t, "other_0", p.FreshName("other"))
}

func TestAddFluentRejectsDuplicates(t *testing.T) {
	p := NewProblem("demo")
	require.NoError(t, p.AddFluent(Fluent{Name: "a", Type: BoolType}, expr.False))
	assert.Error(t, p.AddFluent(Fluent{Name: "a", Type: BoolType}, expr.True))
	assert.Error(t, p.AddAction(NewInstantaneousAction("a")))
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewProblem("demo")
	require.NoError(t, p.AddFluent(Fluent{Name: "a", Type: BoolType}, expr.False))
	act := NewInstantaneousAction("act")
	act.AddPrecondition(expr.Fluent("a"))
	act.AddEffect(expr.Fluent("a"), expr.True)
	require.NoError(t, p.AddAction(act))
	p.AddGoal(expr.Fluent("a"))

	np := p.Clone()
	np.ClearActions()
	np.ClearGoals()
	require.NoError(t, np.AddFluent(Fluent{Name: "b", Type: BoolType}, expr.False))

	assert.Len(t, p.Actions(), 1)
	assert.Len(t, p.Goals(), 1)
	_, ok := p.Fluent("b")
	assert.False(t, ok)

	// Mutating the clone's action copy must not touch the original action.
	np2 := p.Clone()
	ca, _ := np2.Action("act")
	ca.(*InstantaneousAction).ClearEffects()
	assert.Len(t, act.Effects(), 1)
}

func TestAddPreconditionIgnoresTrueAndDuplicates(t *testing.T) {
	a := NewInstantaneousAction("act")
	a.AddPrecondition(expr.True)
	a.AddPrecondition(expr.Fluent("x"))
	a.AddPrecondition(expr.Fluent("x"))
	assert.Len(t, a.Preconditions(), 1)
}

func TestDurativeConditionOrder(t *testing.T) {
	a := NewDurativeAction("work")
	atStart := TimePointInterval(StartTiming())
	overAll := ClosedTimeInterval(StartTiming(), EndTiming())
	a.AddCondition(overAll, expr.Fluent("a"))
	a.AddCondition(atStart, expr.Fluent("b"))
	a.AddCondition(overAll, expr.Fluent("c"))

	conds := a.Conditions()
	require.Len(t, conds, 2)
	assert.Equal(t, overAll, conds[0].Interval)
	assert.Len(t, conds[0].Conditions, 2)
	assert.Equal(t, atStart, conds[1].Interval)
}

func TestKindDerivation(t *testing.T) {
	p := NewProblem("demo")
	require.NoError(t, p.AddFluent(Fluent{Name: "a", Type: BoolType}, expr.False))
	require.NoError(t, p.AddFluent(Fluent{Name: "n", Type: RealType}, expr.Num(0)))
	act := NewInstantaneousAction("act")
	act.AddPrecondition(expr.Or(expr.Fluent("a"), expr.Not(expr.Fluent("a"))))
	act.AddConditionalEffect(expr.Fluent("a"), expr.True, expr.Fluent("a"))
	require.NoError(t, p.AddAction(act))
	work := NewDurativeAction("work")
	work.AddEffectAt(EndTiming(), expr.Fluent("a"), expr.True)
	require.NoError(t, p.AddAction(work))
	p.AddTimedGoal(TimePointInterval(GlobalTiming(5)), expr.Fluent("a"))

	k := p.Kind()
	for _, f := range []Feature{
		FeatureActionBased,
		FeatureNumericFluents,
		FeatureContinuousNumbers,
		FeatureDisjunctiveConditions,
		FeatureNegativeConditions,
		FeatureConditionalEffects,
		FeatureContinuousTime,
		FeatureTimedGoals,
	} {
		assert.True(t, k.Has(f), "missing feature %s", f)
	}
	assert.False(t, k.Has(FeatureEquality))
}

func TestKindSubset(t *testing.T) {
	small := NewKind(FeatureActionBased)
	big := NewKind(FeatureActionBased, FeatureDisjunctiveConditions)
	assert.True(t, small.IsSubsetOf(big))
	assert.False(t, big.IsSubsetOf(small))
}

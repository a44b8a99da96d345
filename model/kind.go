package model

import (
	"sort"
	"strings"

	"planc/expr"
)

// A Feature is one capability a problem may require from an engine.
type Feature string

const (
	FeatureActionBased            Feature = "ACTION_BASED"
	FeatureFlatTyping             Feature = "FLAT_TYPING"
	FeatureHierarchicalTyping     Feature = "HIERARCHICAL_TYPING"
	FeatureContinuousNumbers      Feature = "CONTINUOUS_NUMBERS"
	FeatureDiscreteNumbers        Feature = "DISCRETE_NUMBERS"
	FeatureSimpleNumericPlanning  Feature = "SIMPLE_NUMERIC_PLANNING"
	FeatureGeneralNumericPlanning Feature = "GENERAL_NUMERIC_PLANNING"
	FeatureNumericFluents         Feature = "NUMERIC_FLUENTS"
	FeatureObjectFluents          Feature = "OBJECT_FLUENTS"
	FeatureNegativeConditions     Feature = "NEGATIVE_CONDITIONS"
	FeatureDisjunctiveConditions  Feature = "DISJUNCTIVE_CONDITIONS"
	FeatureEquality               Feature = "EQUALITY"
	FeatureExistentialConditions  Feature = "EXISTENTIAL_CONDITIONS"
	FeatureUniversalConditions    Feature = "UNIVERSAL_CONDITIONS"
	FeatureConditionalEffects     Feature = "CONDITIONAL_EFFECTS"
	FeatureIncreaseEffects        Feature = "INCREASE_EFFECTS"
	FeatureDecreaseEffects        Feature = "DECREASE_EFFECTS"
	FeatureContinuousTime         Feature = "CONTINUOUS_TIME"
	FeatureDiscreteTime           Feature = "DISCRETE_TIME"
	FeatureIntermediateConditions Feature = "INTERMEDIATE_CONDITIONS_AND_EFFECTS"
	FeatureTimedEffects           Feature = "TIMED_EFFECTS"
	FeatureTimedGoals             Feature = "TIMED_GOALS"
	FeatureDurationInequalities   Feature = "DURATION_INEQUALITIES"
	FeatureSimulatedEffects       Feature = "SIMULATED_EFFECTS"
)

// A Kind is the set of features a problem requires or an engine supports.
type Kind map[Feature]struct{}

// NewKind returns a kind holding the given features.
func NewKind(features ...Feature) Kind {
	k := make(Kind, len(features))
	for _, f := range features {
		k[f] = struct{}{}
	}
	return k
}

// Set adds a feature to the kind.
func (k Kind) Set(f Feature) { k[f] = struct{}{} }

// Unset removes a feature from the kind.
func (k Kind) Unset(f Feature) { delete(k, f) }

// Has reports whether the kind holds the given feature.
func (k Kind) Has(f Feature) bool {
	_, ok := k[f]
	return ok
}

// IsSubsetOf reports whether every feature of k is held by other.
func (k Kind) IsSubsetOf(other Kind) bool {
	for f := range k {
		if !other.Has(f) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the kind.
func (k Kind) Clone() Kind {
	nk := make(Kind, len(k))
	for f := range k {
		nk[f] = struct{}{}
	}
	return nk
}

// Features returns the kind's features in lexicographic order.
func (k Kind) Features() []Feature {
	features := make([]Feature, 0, len(k))
	for f := range k {
		features = append(features, f)
	}
	sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })
	return features
}

func (k Kind) String() string {
	features := k.Features()
	strs := make([]string, len(features))
	for i, f := range features {
		strs[i] = string(f)
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

// Kind derives the feature set the problem requires by inspecting its fluents,
// actions and goals.
func (p *Problem) Kind() Kind {
	k := NewKind(FeatureActionBased)
	condition := func(c expr.Node) {
		expr.Walk(c, func(n expr.Node) {
			switch {
			case expr.IsOr(n):
				k.Set(FeatureDisjunctiveConditions)
			case expr.IsNot(n):
				k.Set(FeatureNegativeConditions)
			case expr.IsEquality(n):
				k.Set(FeatureEquality)
			}
		})
	}
	effect := func(e Effect) {
		if e.IsConditional() {
			k.Set(FeatureConditionalEffects)
			condition(e.Condition)
		}
		switch e.Kind {
		case Increase:
			k.Set(FeatureIncreaseEffects)
		case Decrease:
			k.Set(FeatureDecreaseEffects)
		}
	}
	for _, f := range p.fluents {
		switch f.Type {
		case IntType:
			k.Set(FeatureNumericFluents)
			k.Set(FeatureDiscreteNumbers)
		case RealType:
			k.Set(FeatureNumericFluents)
			k.Set(FeatureContinuousNumbers)
		}
	}
	for _, a := range p.actions {
		switch a := a.(type) {
		case *InstantaneousAction:
			for _, c := range a.Preconditions() {
				condition(c)
			}
			for _, e := range a.Effects() {
				effect(e)
			}
		case *DurativeAction:
			k.Set(FeatureContinuousTime)
			_, _, leftOpen, rightOpen := a.DurationBounds()
			if leftOpen || rightOpen {
				k.Set(FeatureDurationInequalities)
			}
			for _, ic := range a.Conditions() {
				for _, c := range ic.Conditions {
					condition(c)
				}
			}
			for _, te := range a.Effects() {
				for _, e := range te.Effects {
					effect(e)
				}
			}
		}
	}
	for _, g := range p.goals {
		condition(g)
	}
	if len(p.timedGoals) > 0 {
		k.Set(FeatureTimedGoals)
		k.Set(FeatureContinuousTime)
	}
	for _, tg := range p.timedGoals {
		for _, g := range tg.Goals {
			condition(g)
		}
	}
	return k
}

package compiler

import (
	"fmt"

	"planc/expr"
	"planc/model"
	"planc/plan"
)

// A DisjunctiveConditionsRemover transforms a problem whose action conditions
// and goals may contain the "or" connective into a semantically equivalent
// problem where they do not.
//
// Every action whose condition normalizes to an "or" is decomposed into one
// action per disjunct, each carrying the original effects. A disjunctive goal
// cannot be decomposed that way, so it is rewritten instead: a fresh flag
// fluent replaces the goal, one witness action per disjunct sets the flag true,
// and every real action resets it false, so the flag can only be observed true
// right after a witness action fired.
type DisjunctiveConditionsRemover struct{}

// NewDisjunctiveConditionsRemover returns a ready-to-use remover.
func NewDisjunctiveConditionsRemover() *DisjunctiveConditionsRemover {
	return &DisjunctiveConditionsRemover{}
}

// Name returns the engine name recorded in compilation results.
func (c *DisjunctiveConditionsRemover) Name() string { return "dcrm" }

// SupportedKind returns the feature set this compiler accepts as input.
func (c *DisjunctiveConditionsRemover) SupportedKind() model.Kind {
	return model.NewKind(
		model.FeatureActionBased,
		model.FeatureFlatTyping,
		model.FeatureHierarchicalTyping,
		model.FeatureContinuousNumbers,
		model.FeatureDiscreteNumbers,
		model.FeatureSimpleNumericPlanning,
		model.FeatureGeneralNumericPlanning,
		model.FeatureNumericFluents,
		model.FeatureObjectFluents,
		model.FeatureNegativeConditions,
		model.FeatureDisjunctiveConditions,
		model.FeatureEquality,
		model.FeatureExistentialConditions,
		model.FeatureUniversalConditions,
		model.FeatureConditionalEffects,
		model.FeatureIncreaseEffects,
		model.FeatureDecreaseEffects,
		model.FeatureContinuousTime,
		model.FeatureDiscreteTime,
		model.FeatureIntermediateConditions,
		model.FeatureTimedEffects,
		model.FeatureTimedGoals,
		model.FeatureDurationInequalities,
		model.FeatureSimulatedEffects,
	)
}

// Supports reports whether a problem of the given kind is accepted as input.
func (c *DisjunctiveConditionsRemover) Supports(k model.Kind) bool {
	return k.IsSubsetOf(c.SupportedKind())
}

// SupportsCompilation reports whether the given compilation kind is implemented.
func (c *DisjunctiveConditionsRemover) SupportsCompilation(ck CompilationKind) bool {
	return ck == DisjunctiveConditionsRemoving
}

// ResultingKind returns the kind of the compiled problem for an input problem
// of the given kind: the same features minus disjunctive conditions.
func (c *DisjunctiveConditionsRemover) ResultingKind(k model.Kind) model.Kind {
	nk := k.Clone()
	nk.Unset(model.FeatureDisjunctiveConditions)
	return nk
}

// A traceEntry records one produced action together with the original action
// it was derived from. A nil original marks a witness action introduced by
// goal rewriting, with no counterpart in the source problem.
type traceEntry struct {
	produced model.Action
	original model.Action
}

// Compile returns a problem equivalent to p where no action condition and no
// goal has "or" as its top-level form, together with the translation mapping
// plans on the new problem back to p.
func (c *DisjunctiveConditionsRemover) Compile(p *model.Problem, ck CompilationKind) (*Result, error) {
	if !c.SupportsCompilation(ck) {
		return nil, fmt.Errorf("%w: %s only implements %s, got %s",
			ErrUnsupportedCompilationKind, c.Name(), DisjunctiveConditionsRemoving, ck)
	}
	if !c.Supports(p.Kind()) {
		return nil, fmt.Errorf("%w: problem %q requires %s", ErrUnsupportedProblemKind, p.Name(), p.Kind())
	}

	np := p.Clone()
	np.SetName(c.Name() + "_" + p.Name())
	np.ClearActions()
	np.ClearGoals()
	np.ClearTimedGoals()

	var trace []traceEntry
	for _, a := range p.Actions() {
		switch a := a.(type) {
		case *model.InstantaneousAction:
			entries, err := c.splitInstantaneous(np, a)
			if err != nil {
				return nil, err
			}
			trace = append(trace, entries...)
		case *model.DurativeAction:
			entries, err := c.splitDurative(np, a)
			if err != nil {
				return nil, err
			}
			trace = append(trace, entries...)
		default:
			return nil, fmt.Errorf("cannot compile action %q: unknown action variant %T", a.Name(), a)
		}
	}

	// Actions produced so far model real transitions of the source problem.
	// Everything appended to the trace below is a witness action.
	meaningful := len(trace)

	var flags []model.Fluent
	if err := c.removeGoalDisjunctions(np, &trace, &flags, p.Goals(), nil); err != nil {
		return nil, err
	}
	for _, tg := range p.TimedGoals() {
		interval := tg.Interval
		if err := c.removeGoalDisjunctions(np, &trace, &flags, tg.Goals, &interval); err != nil {
			return nil, err
		}
	}

	injectFlagResets(flags, trace[:meaningful])

	origin := make(map[string]model.Action, len(trace))
	for _, e := range trace {
		origin[e.produced.Name()] = e.original
	}
	translate := func(ai plan.ActionInstance) (plan.ActionInstance, bool, error) {
		orig, ok := origin[ai.Action.Name()]
		if !ok {
			return plan.ActionInstance{}, false, fmt.Errorf("action %q does not belong to problem %q", ai.Action.Name(), np.Name())
		}
		if orig == nil {
			return plan.ActionInstance{}, false, nil
		}
		return plan.ActionInstance{Action: orig, Params: ai.Params}, true, nil
	}

	return &Result{Problem: np, Translate: translate, EngineName: c.Name()}, nil
}

// splitInstantaneous decomposes one instantaneous action into one action per
// disjunct of its DNF-normalized precondition, adding the survivors to np.
func (c *DisjunctiveConditionsRemover) splitInstantaneous(np *model.Problem, a *model.InstantaneousAction) ([]traceEntry, error) {
	var entries []traceEntry
	precond := expr.Dnf(expr.And(a.Preconditions()...))
	for _, disjunct := range disjunctsOf(precond) {
		na := buildVariant(np, disjunct, a)
		if na == nil {
			continue
		}
		if err := np.AddAction(na); err != nil {
			return nil, err
		}
		entries = append(entries, traceEntry{produced: na, original: a})
	}
	return entries, nil
}

// splitDurative decomposes one durative action. Each time interval contributes
// its own set of disjuncts, and one action is produced per element of the
// cartesian product over those sets, so the number of candidates is the
// product of the branch counts across all intervals.
func (c *DisjunctiveConditionsRemover) splitDurative(np *model.Problem, a *model.DurativeAction) ([]traceEntry, error) {
	var entries []traceEntry
	conds := a.Conditions()
	intervals := make([]model.TimeInterval, len(conds))
	disjunctSets := make([][]expr.Node, len(conds))
	for i, ic := range conds {
		intervals[i] = ic.Interval
		disjunctSets[i] = disjunctsOf(expr.Dnf(expr.And(ic.Conditions...)))
	}
	prod := newProduct(disjunctSets)
	for combo, ok := prod.next(); ok; combo, ok = prod.next() {
		na := buildDurativeVariant(np, intervals, combo, a)
		if na == nil {
			continue
		}
		if err := np.AddAction(na); err != nil {
			return nil, err
		}
		entries = append(entries, traceEntry{produced: na, original: a})
	}
	return entries, nil
}

// removeGoalDisjunctions rewrites one goal list, the plain goal when interval
// is nil or the timed goal at that interval otherwise. A non-disjunctive goal
// is installed as is. A disjunctive goal is replaced by a fresh flag fluent,
// set true by one witness action per disjunct; the witness actions go through
// the same variant building as real actions and are traced with no original.
func (c *DisjunctiveConditionsRemover) removeGoalDisjunctions(
	np *model.Problem,
	trace *[]traceEntry,
	flags *[]model.Fluent,
	goals []expr.Node,
	interval *model.TimeInterval,
) error {
	newGoal := expr.Dnf(expr.And(goals...))
	if !expr.IsOr(newGoal) {
		if interval == nil {
			np.AddGoal(newGoal)
		} else {
			np.AddTimedGoal(*interval, newGoal)
		}
		return nil
	}
	base := c.Name()
	if interval != nil {
		base += "_timed"
	}
	flag := model.Fluent{Name: np.FreshName(base + "_fake_goal"), Type: model.BoolType}
	witness := model.NewInstantaneousAction(base + "_fake_action")
	witness.AddEffect(expr.Fluent(flag.Name), expr.True)
	for _, disjunct := range expr.Operands(newGoal) {
		na := buildVariant(np, disjunct, witness)
		if na == nil {
			continue
		}
		if err := np.AddAction(na); err != nil {
			return err
		}
		*trace = append(*trace, traceEntry{produced: na, original: nil})
	}
	if err := np.AddFluent(flag, expr.False); err != nil {
		return err
	}
	*flags = append(*flags, flag)
	if interval == nil {
		np.AddGoal(expr.Fluent(flag.Name))
	} else {
		np.AddTimedGoal(*interval, expr.Fluent(flag.Name))
	}
	return nil
}

// buildVariant clones the original action under a fresh name, installs the
// given disjunct as its precondition and rebuilds its effects. It returns nil
// when the disjunct simplifies to False or when no effect survives: such a
// variant is either unreachable or a no-op and is not added to the problem.
func buildVariant(np *model.Problem, precond expr.Node, original *model.InstantaneousAction) *model.InstantaneousAction {
	na := original.Clone(np.FreshName(original.Name()))
	na.ClearPreconditions()
	precond = expr.Simplify(precond)
	if expr.IsFalse(precond) {
		return nil
	}
	if expr.IsAnd(precond) {
		for _, conjunct := range expr.Operands(precond) {
			na.AddPrecondition(conjunct)
		}
	} else {
		na.AddPrecondition(precond)
	}
	na.ClearEffects()
	for _, e := range original.Effects() {
		for _, ne := range rebuildEffect(e) {
			na.AppendEffect(ne)
		}
	}
	if len(na.Effects()) == 0 {
		return nil
	}
	return na
}

// buildDurativeVariant is the durative counterpart of buildVariant: one chosen
// disjunct per interval. A single interval whose disjunct simplifies to False
// invalidates the whole combination.
func buildDurativeVariant(np *model.Problem, intervals []model.TimeInterval, combo []expr.Node, original *model.DurativeAction) *model.DurativeAction {
	na := original.Clone(np.FreshName(original.Name()))
	na.ClearConditions()
	for i, cond := range combo {
		cond = expr.Simplify(cond)
		if expr.IsFalse(cond) {
			return nil
		}
		if expr.IsAnd(cond) {
			for _, conjunct := range expr.Operands(cond) {
				na.AddCondition(intervals[i], conjunct)
			}
		} else {
			na.AddCondition(intervals[i], cond)
		}
	}
	na.ClearEffects()
	total := 0
	for _, te := range original.Effects() {
		for _, e := range te.Effects {
			for _, ne := range rebuildEffect(e) {
				na.AppendEffectAt(te.Timing, ne)
				total++
			}
		}
	}
	if total == 0 {
		return nil
	}
	return na
}

// rebuildEffect re-expands one effect of the original action. Unconditional
// effects are copied unchanged. A conditional effect has its guard normalized
// to DNF and simplified: a disjunctive guard yields one copy per disjunct, a
// guard reduced to False drops the effect.
func rebuildEffect(e model.Effect) []model.Effect {
	if !e.IsConditional() {
		return []model.Effect{e}
	}
	guard := expr.Simplify(expr.Dnf(e.Condition))
	if expr.IsOr(guard) {
		disjuncts := expr.Operands(guard)
		res := make([]model.Effect, len(disjuncts))
		for i, d := range disjuncts {
			res[i] = e.WithCondition(d)
		}
		return res
	}
	if expr.IsFalse(guard) {
		return nil
	}
	return []model.Effect{e.WithCondition(guard)}
}

// injectFlagResets appends an unconditional reset to false of every flag
// fluent to every meaningful action. Without the reset a flag set by an early
// witness firing would stay true through later real actions and satisfy a goal
// that never held at its evaluation point; resetting on every real action
// makes the flag observable only right after a witness action.
func injectFlagResets(flags []model.Fluent, meaningful []traceEntry) {
	if len(flags) == 0 {
		return
	}
	resets := make([]model.Effect, len(flags))
	for i, f := range flags {
		resets[i] = model.AssignEffect(expr.Fluent(f.Name), expr.False)
	}
	for _, entry := range meaningful {
		switch a := entry.produced.(type) {
		case *model.InstantaneousAction:
			for _, r := range resets {
				a.AppendEffect(r)
			}
		case *model.DurativeAction:
			for _, te := range a.Effects() {
				for _, r := range resets {
					a.AppendEffectAt(te.Timing, r)
				}
			}
		}
	}
}

// disjunctsOf returns the top-level alternatives of a DNF formula: the
// operands of an "or", or the formula itself when it has no disjunction.
func disjunctsOf(f expr.Node) []expr.Node {
	if expr.IsOr(f) {
		return expr.Operands(f)
	}
	return []expr.Node{f}
}

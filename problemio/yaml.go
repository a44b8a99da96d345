// Package problemio reads and writes planning problems as YAML documents.
// It is the file surface of the planc command line tool; the model itself is
// format-agnostic.
package problemio

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"planc/expr"
	"planc/model"
)

type problemDoc struct {
	Name       string         `yaml:"name"`
	Fluents    []fluentDoc    `yaml:"fluents"`
	Actions    []actionDoc    `yaml:"actions,omitempty"`
	Goals      []string       `yaml:"goals,omitempty"`
	TimedGoals []timedGoalDoc `yaml:"timed_goals,omitempty"`
}

type fluentDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
	Init string `yaml:"init,omitempty"`
}

type actionDoc struct {
	Name          string           `yaml:"name"`
	Durative      bool             `yaml:"durative,omitempty"`
	Preconditions []string         `yaml:"preconditions,omitempty"`
	Effects       []effectDoc      `yaml:"effects,omitempty"`
	Duration      *durationDoc     `yaml:"duration,omitempty"`
	Conditions    []conditionsDoc  `yaml:"conditions,omitempty"`
	TimedEffects  []timedEffectDoc `yaml:"timed_effects,omitempty"`
}

type effectDoc struct {
	Fluent string `yaml:"fluent"`
	Value  string `yaml:"value"`
	When   string `yaml:"when,omitempty"`
}

type durationDoc struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

type conditionsDoc struct {
	Interval string   `yaml:"interval"`
	Conds    []string `yaml:"conds"`
}

type timedEffectDoc struct {
	Timing  string      `yaml:"timing"`
	Effects []effectDoc `yaml:"effects"`
}

type timedGoalDoc struct {
	Interval string   `yaml:"interval"`
	Goals    []string `yaml:"goals"`
}

// Read parses a problem from the YAML document on r.
func Read(r io.Reader) (*model.Problem, error) {
	var doc problemDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode problem document: %w", err)
	}
	return fromDoc(&doc)
}

// Write renders the problem as a YAML document on w.
func Write(w io.Writer, p *model.Problem) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDoc(p)); err != nil {
		return fmt.Errorf("could not encode problem %q: %w", p.Name(), err)
	}
	return enc.Close()
}

func fromDoc(doc *problemDoc) (*model.Problem, error) {
	p := model.NewProblem(doc.Name)
	for _, f := range doc.Fluents {
		typ, err := parseType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("fluent %q: %w", f.Name, err)
		}
		init, err := parseValue(f.Init, typ)
		if err != nil {
			return nil, fmt.Errorf("fluent %q: %w", f.Name, err)
		}
		if err := p.AddFluent(model.Fluent{Name: f.Name, Type: typ}, init); err != nil {
			return nil, err
		}
	}
	for _, a := range doc.Actions {
		act, err := fromActionDoc(&a)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", a.Name, err)
		}
		if err := p.AddAction(act); err != nil {
			return nil, err
		}
	}
	for _, g := range doc.Goals {
		cond, err := expr.ParseString(g)
		if err != nil {
			return nil, fmt.Errorf("goal %q: %w", g, err)
		}
		p.AddGoal(cond)
	}
	for _, tg := range doc.TimedGoals {
		interval, err := parseInterval(tg.Interval)
		if err != nil {
			return nil, fmt.Errorf("timed goal: %w", err)
		}
		for _, g := range tg.Goals {
			cond, err := expr.ParseString(g)
			if err != nil {
				return nil, fmt.Errorf("timed goal %q: %w", g, err)
			}
			p.AddTimedGoal(interval, cond)
		}
	}
	return p, nil
}

func fromActionDoc(doc *actionDoc) (model.Action, error) {
	if !doc.Durative {
		act := model.NewInstantaneousAction(doc.Name)
		for _, pre := range doc.Preconditions {
			cond, err := expr.ParseString(pre)
			if err != nil {
				return nil, fmt.Errorf("precondition %q: %w", pre, err)
			}
			act.AddPrecondition(cond)
		}
		for _, e := range doc.Effects {
			eff, err := fromEffectDoc(&e)
			if err != nil {
				return nil, err
			}
			act.AppendEffect(eff)
		}
		return act, nil
	}
	act := model.NewDurativeAction(doc.Name)
	if doc.Duration != nil {
		act.SetDurationBounds(expr.Num(doc.Duration.Lower), expr.Num(doc.Duration.Upper))
	}
	for _, c := range doc.Conditions {
		interval, err := parseInterval(c.Interval)
		if err != nil {
			return nil, err
		}
		for _, raw := range c.Conds {
			cond, err := expr.ParseString(raw)
			if err != nil {
				return nil, fmt.Errorf("condition %q: %w", raw, err)
			}
			act.AddCondition(interval, cond)
		}
	}
	for _, te := range doc.TimedEffects {
		timing, err := parseTiming(te.Timing)
		if err != nil {
			return nil, err
		}
		for _, e := range te.Effects {
			eff, err := fromEffectDoc(&e)
			if err != nil {
				return nil, err
			}
			act.AppendEffectAt(timing, eff)
		}
	}
	return act, nil
}

func fromEffectDoc(doc *effectDoc) (model.Effect, error) {
	value, err := expr.ParseString(doc.Value)
	if err != nil {
		return model.Effect{}, fmt.Errorf("effect value %q: %w", doc.Value, err)
	}
	if doc.When == "" {
		return model.AssignEffect(expr.Fluent(doc.Fluent), value), nil
	}
	cond, err := expr.ParseString(doc.When)
	if err != nil {
		return model.Effect{}, fmt.Errorf("effect condition %q: %w", doc.When, err)
	}
	return model.ConditionalEffect(expr.Fluent(doc.Fluent), value, cond), nil
}

func toDoc(p *model.Problem) *problemDoc {
	doc := &problemDoc{Name: p.Name()}
	for _, f := range p.Fluents() {
		fd := fluentDoc{Name: f.Name, Type: f.Type.String()}
		if init, ok := p.InitialValue(f.Name); ok && init != nil {
			fd.Init = renderValue(init)
		}
		doc.Fluents = append(doc.Fluents, fd)
	}
	for _, a := range p.Actions() {
		doc.Actions = append(doc.Actions, toActionDoc(a))
	}
	for _, g := range p.Goals() {
		doc.Goals = append(doc.Goals, render(g))
	}
	for _, tg := range p.TimedGoals() {
		td := timedGoalDoc{Interval: renderInterval(tg.Interval)}
		for _, g := range tg.Goals {
			td.Goals = append(td.Goals, render(g))
		}
		doc.TimedGoals = append(doc.TimedGoals, td)
	}
	return doc
}

func toActionDoc(a model.Action) actionDoc {
	switch a := a.(type) {
	case *model.InstantaneousAction:
		doc := actionDoc{Name: a.Name()}
		for _, pre := range a.Preconditions() {
			doc.Preconditions = append(doc.Preconditions, render(pre))
		}
		for _, e := range a.Effects() {
			doc.Effects = append(doc.Effects, toEffectDoc(e))
		}
		return doc
	case *model.DurativeAction:
		doc := actionDoc{Name: a.Name(), Durative: true}
		lower, upper, _, _ := a.DurationBounds()
		doc.Duration = &durationDoc{Lower: numValue(lower), Upper: numValue(upper)}
		for _, ic := range a.Conditions() {
			cd := conditionsDoc{Interval: renderInterval(ic.Interval)}
			for _, c := range ic.Conditions {
				cd.Conds = append(cd.Conds, render(c))
			}
			doc.Conditions = append(doc.Conditions, cd)
		}
		for _, te := range a.Effects() {
			ted := timedEffectDoc{Timing: renderTiming(te.Timing)}
			for _, e := range te.Effects {
				ted.Effects = append(ted.Effects, toEffectDoc(e))
			}
			doc.TimedEffects = append(doc.TimedEffects, ted)
		}
		return doc
	default:
		return actionDoc{Name: a.Name()}
	}
}

func toEffectDoc(e model.Effect) effectDoc {
	doc := effectDoc{Fluent: render(e.Fluent), Value: renderValue(e.Value)}
	if e.IsConditional() {
		doc.When = render(e.Condition)
	}
	return doc
}

func parseType(s string) (model.Type, error) {
	switch s {
	case "", "bool":
		return model.BoolType, nil
	case "int":
		return model.IntType, nil
	case "real":
		return model.RealType, nil
	default:
		return model.BoolType, fmt.Errorf("unknown type %q", s)
	}
}

func parseValue(s string, typ model.Type) (expr.Node, error) {
	if s == "" {
		if typ == model.BoolType {
			return expr.False, nil
		}
		return expr.Num(0), nil
	}
	if typ == model.BoolType {
		switch s {
		case "true":
			return expr.True, nil
		case "false":
			return expr.False, nil
		default:
			return nil, fmt.Errorf("invalid boolean initial value %q", s)
		}
	}
	var v float64
	if _, err := fmt.Sscanf(s, "%g", &v); err != nil {
		return nil, fmt.Errorf("invalid numeric initial value %q", s)
	}
	return expr.Num(v), nil
}

func parseInterval(s string) (model.TimeInterval, error) {
	switch s {
	case "start":
		return model.TimePointInterval(model.StartTiming()), nil
	case "end":
		return model.TimePointInterval(model.EndTiming()), nil
	case "overall":
		return model.ClosedTimeInterval(model.StartTiming(), model.EndTiming()), nil
	default:
		var delay float64
		if _, err := fmt.Sscanf(s, "at %g", &delay); err == nil {
			return model.TimePointInterval(model.GlobalTiming(delay)), nil
		}
		return model.TimeInterval{}, fmt.Errorf("unknown interval %q", s)
	}
}

func parseTiming(s string) (model.Timing, error) {
	switch s {
	case "start":
		return model.StartTiming(), nil
	case "end":
		return model.EndTiming(), nil
	default:
		return model.Timing{}, fmt.Errorf("unknown timing %q", s)
	}
}

func renderInterval(i model.TimeInterval) string {
	start := model.TimePointInterval(model.StartTiming())
	end := model.TimePointInterval(model.EndTiming())
	overall := model.ClosedTimeInterval(model.StartTiming(), model.EndTiming())
	switch i {
	case start:
		return "start"
	case end:
		return "end"
	case overall:
		return "overall"
	default:
		if i.Lower == i.Upper && i.Lower.Kind == model.GlobalTimepoint {
			return fmt.Sprintf("at %g", i.Lower.Delay)
		}
		return i.String()
	}
}

func renderTiming(t model.Timing) string {
	switch t {
	case model.StartTiming():
		return "start"
	case model.EndTiming():
		return "end"
	default:
		return t.String()
	}
}

// render writes a condition back in the parser's infix syntax.
func render(n expr.Node) string {
	if expr.IsTrue(n) {
		return "true"
	}
	if expr.IsFalse(n) {
		return "false"
	}
	if name, ok := expr.IsFluent(n); ok {
		return name
	}
	if expr.IsNot(n) {
		return "^" + renderChild(expr.NotOperand(n))
	}
	if ops := expr.Operands(n); ops != nil {
		sep := " & "
		if expr.IsOr(n) {
			sep = " | "
		}
		out := ""
		for i, op := range ops {
			if i > 0 {
				out += sep
			}
			out += renderChild(op)
		}
		return out
	}
	return n.String()
}

func renderChild(n expr.Node) string {
	if expr.IsAnd(n) || expr.IsOr(n) {
		return "(" + render(n) + ")"
	}
	return render(n)
}

func renderValue(n expr.Node) string {
	return render(n)
}

func numValue(n expr.Node) float64 {
	var v float64
	fmt.Sscanf(n.String(), "%g", &v)
	return v
}

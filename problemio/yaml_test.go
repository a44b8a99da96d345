package problemio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planc/expr"
	"planc/model"
)

const sampleDoc = `
name: robot
fluents:
  - name: at_home
    init: "true"
  - name: at_work
  - name: battery
    type: real
    init: "100"
actions:
  - name: commute
    preconditions: ["at_home | at_work"]
    effects:
      - fluent: at_work
        value: "true"
      - fluent: at_home
        value: "false"
        when: "at_home"
  - name: recharge
    durative: true
    duration: {lower: 1, upper: 4}
    conditions:
      - interval: overall
        conds: ["at_home"]
    timed_effects:
      - timing: end
        effects:
          - fluent: at_work
            value: "false"
goals: ["at_work | at_home"]
timed_goals:
  - interval: "at 10"
    goals: ["at_work"]
`

func TestRead(t *testing.T) {
	p, err := Read(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, "robot", p.Name())
	require.Len(t, p.Fluents(), 3)

	init, ok := p.InitialValue("at_home")
	require.True(t, ok)
	assert.True(t, expr.IsTrue(init))
	init, ok = p.InitialValue("at_work")
	require.True(t, ok)
	assert.True(t, expr.IsFalse(init))

	battery, ok := p.Fluent("battery")
	require.True(t, ok)
	assert.Equal(t, model.RealType, battery.Type)

	require.Len(t, p.Actions(), 2)
	commute := p.Actions()[0].(*model.InstantaneousAction)
	require.Len(t, commute.Preconditions(), 1)
	assert.True(t, expr.IsOr(commute.Preconditions()[0]))
	require.Len(t, commute.Effects(), 2)
	assert.False(t, commute.Effects()[0].IsConditional())
	assert.True(t, commute.Effects()[1].IsConditional())

	recharge := p.Actions()[1].(*model.DurativeAction)
	require.Len(t, recharge.Conditions(), 1)
	assert.Equal(t, model.ClosedTimeInterval(model.StartTiming(), model.EndTiming()), recharge.Conditions()[0].Interval)
	require.Len(t, recharge.Effects(), 1)
	assert.Equal(t, model.EndTiming(), recharge.Effects()[0].Timing)

	require.Len(t, p.Goals(), 1)
	require.Len(t, p.TimedGoals(), 1)
	assert.Equal(t, model.TimePointInterval(model.GlobalTiming(10)), p.TimedGoals()[0].Interval)
}

func TestReadErrors(t *testing.T) {
	docs := []string{
		"name: x\nfluents:\n  - name: a\n    type: color\n",
		"name: x\nfluents:\n  - name: a\n    init: maybe\n",
		"name: x\ngoals: [\"a &\"]\n",
		"name: x\nactions:\n  - name: a\n    durative: true\n    conditions:\n      - interval: sometime\n        conds: [\"a\"]\n",
	}
	for _, doc := range docs {
		_, err := Read(strings.NewReader(doc))
		assert.Error(t, err, "document %q should be rejected", doc)
	}
}

func TestRoundTrip(t *testing.T) {
	p, err := Read(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p))

	p2, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, p.Name(), p2.Name())
	assert.Len(t, p2.Fluents(), len(p.Fluents()))
	assert.Len(t, p2.Actions(), len(p.Actions()))
	assert.Len(t, p2.Goals(), len(p.Goals()))
	assert.Len(t, p2.TimedGoals(), len(p.TimedGoals()))
}

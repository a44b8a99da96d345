package model

import "fmt"

// A TimepointKind tells what a timing is anchored to.
type TimepointKind byte

const (
	// StartTimepoint anchors a timing to the start of an action.
	StartTimepoint TimepointKind = iota
	// EndTimepoint anchors a timing to the end of an action.
	EndTimepoint
	// GlobalTimepoint anchors a timing to the start of the plan.
	GlobalTimepoint
)

// A Timing is a point in time, anchored to an action boundary or to the plan
// start, plus a delay. Timings are value types and can be compared with ==.
type Timing struct {
	Kind  TimepointKind
	Delay float64
}

// StartTiming returns the timing of an action's start.
func StartTiming() Timing { return Timing{Kind: StartTimepoint} }

// EndTiming returns the timing of an action's end.
func EndTiming() Timing { return Timing{Kind: EndTimepoint} }

// GlobalTiming returns the absolute timing at the given delay from plan start.
func GlobalTiming(delay float64) Timing {
	return Timing{Kind: GlobalTimepoint, Delay: delay}
}

func (t Timing) String() string {
	var base string
	switch t.Kind {
	case StartTimepoint:
		base = "start"
	case EndTimepoint:
		base = "end"
	default:
		base = "global"
	}
	if t.Delay != 0 {
		return fmt.Sprintf("%s + %g", base, t.Delay)
	}
	return base
}

// A TimeInterval is a span between two timings, possibly open on either side.
// Intervals are value types and can be compared with ==.
type TimeInterval struct {
	Lower, Upper Timing
	IsLeftOpen   bool
	IsRightOpen  bool
}

// TimePointInterval returns the degenerate interval holding exactly at t.
func TimePointInterval(t Timing) TimeInterval {
	return TimeInterval{Lower: t, Upper: t}
}

// ClosedTimeInterval returns the interval [lower, upper].
func ClosedTimeInterval(lower, upper Timing) TimeInterval {
	return TimeInterval{Lower: lower, Upper: upper}
}

// OpenTimeInterval returns the interval ]lower, upper[.
func OpenTimeInterval(lower, upper Timing) TimeInterval {
	return TimeInterval{Lower: lower, Upper: upper, IsLeftOpen: true, IsRightOpen: true}
}

func (i TimeInterval) String() string {
	if i.Lower == i.Upper && !i.IsLeftOpen && !i.IsRightOpen {
		return i.Lower.String()
	}
	left, right := "[", "]"
	if i.IsLeftOpen {
		left = "]"
	}
	if i.IsRightOpen {
		right = "["
	}
	return fmt.Sprintf("%s%s, %s%s", left, i.Lower, i.Upper, right)
}

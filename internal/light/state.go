package light

import (
	"math"

	"github.com/lumesync/lumesync/internal/upstream"
)

// epsilon is the tolerance for comparing color/brightness components.
// Controllers quantise values internally, so exact float equality would
// report phantom changes on every poll.
const epsilon = 0.01

// State is the canonical representation of one light, independent of the
// controller's wire format. Hue is in degrees (0..360); saturation and
// brightness are percentages (0..100).
type State struct {
	On         bool
	Hue        float64
	Saturation float64
	Brightness float64
	Kelvin     int
	Reachable  bool
	Label      string
}

// FromUpstream parses a raw controller payload into canonical state.
// Pure: no side effects, no I/O.
func FromUpstream(d upstream.Device) State {
	return State{
		On:         d.Power == "on",
		Hue:        d.Color.Hue,
		Saturation: clampPercent(d.Color.Saturation * 100),
		Brightness: clampPercent(d.Brightness * 100),
		Kelvin:     d.Color.Kelvin,
		Reachable:  d.Connected,
		Label:      d.Label,
	}
}

// Equal reports whether two states are semantically identical.
// Float components compare within a small tolerance.
func (s State) Equal(o State) bool {
	return s.On == o.On &&
		s.Reachable == o.Reachable &&
		s.Kelvin == o.Kelvin &&
		s.Label == o.Label &&
		closeEnough(s.Hue, o.Hue) &&
		closeEnough(s.Saturation, o.Saturation) &&
		closeEnough(s.Brightness, o.Brightness)
}

// Diff reports whether the state changed between two observations.
func Diff(old, new State) bool {
	return !old.Equal(new)
}

// Render projects the state into the consumer-facing value pushed to
// subscribers.
func (s State) Render() map[string]any {
	return map[string]any{
		"on":         s.On,
		"hue":        round2(s.Hue),
		"saturation": round2(s.Saturation),
		"brightness": round2(s.Brightness),
		"kelvin":     s.Kelvin,
		"reachable":  s.Reachable,
		"label":      s.Label,
	}
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package light

import (
	"testing"

	"github.com/lumesync/lumesync/internal/upstream"
)

func sampleDevice() upstream.Device {
	return upstream.Device{
		ID:         "ctrl-1",
		UniqueID:   "hw-1",
		Label:      "Desk",
		Power:      "on",
		Brightness: 0.8,
		Color: upstream.Color{
			Hue:        120,
			Saturation: 0.5,
			Kelvin:     3500,
		},
		Connected: true,
	}
}

func TestFromUpstream(t *testing.T) {
	s := FromUpstream(sampleDevice())

	if !s.On {
		t.Error("expected On for power=on")
	}
	if s.Brightness != 80 {
		t.Errorf("Brightness = %v, want 80", s.Brightness)
	}
	if s.Saturation != 50 {
		t.Errorf("Saturation = %v, want 50", s.Saturation)
	}
	if s.Hue != 120 || s.Kelvin != 3500 {
		t.Errorf("color = hue %v kelvin %d, want 120/3500", s.Hue, s.Kelvin)
	}
	if !s.Reachable || s.Label != "Desk" {
		t.Errorf("metadata not carried over: %+v", s)
	}
}

func TestFromUpstreamClampsOutOfRange(t *testing.T) {
	d := sampleDevice()
	d.Brightness = 1.5
	d.Color.Saturation = -0.1

	s := FromUpstream(d)
	if s.Brightness != 100 {
		t.Errorf("Brightness = %v, want clamped to 100", s.Brightness)
	}
	if s.Saturation != 0 {
		t.Errorf("Saturation = %v, want clamped to 0", s.Saturation)
	}
}

func TestEqualTolerance(t *testing.T) {
	a := FromUpstream(sampleDevice())
	b := a
	b.Brightness += 0.001

	if !a.Equal(b) {
		t.Error("sub-tolerance float drift should not count as a change")
	}

	b.Brightness = a.Brightness + 1
	if a.Equal(b) {
		t.Error("real brightness change should be detected")
	}
}

func TestDiffDetectsLabelAndReachability(t *testing.T) {
	a := FromUpstream(sampleDevice())

	b := a
	b.Label = "Desk Lamp"
	if !Diff(a, b) {
		t.Error("label change should be a diff")
	}

	c := a
	c.Reachable = false
	if !Diff(a, c) {
		t.Error("reachability change should be a diff")
	}

	if Diff(a, a) {
		t.Error("identical states should not diff")
	}
}

func TestRender(t *testing.T) {
	rendered := FromUpstream(sampleDevice()).Render()

	if rendered["on"] != true {
		t.Errorf("rendered on = %v, want true", rendered["on"])
	}
	if rendered["brightness"] != 80.0 {
		t.Errorf("rendered brightness = %v, want 80", rendered["brightness"])
	}
	if rendered["label"] != "Desk" {
		t.Errorf("rendered label = %v, want Desk", rendered["label"])
	}
}

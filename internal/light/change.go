package light

import (
	"time"

	"github.com/lumesync/lumesync/internal/upstream"
)

// Change is a desired modification to one light. Nil fields are left
// untouched. Duration, when set, asks the controller to fade over that
// time rather than switching instantly.
type Change struct {
	On         *bool
	Hue        *float64
	Saturation *float64
	Brightness *float64
	Kelvin     *int
	Duration   time.Duration
}

// IsZero reports whether the change touches nothing.
func (c Change) IsZero() bool {
	return c.On == nil && c.Hue == nil && c.Saturation == nil &&
		c.Brightness == nil && c.Kelvin == nil
}

// Apply returns the state as it is expected to look once the change has
// taken effect. Used for the optimistic local update after a write.
func (c Change) Apply(s State) State {
	if c.On != nil {
		s.On = *c.On
	}
	if c.Hue != nil {
		s.Hue = *c.Hue
	}
	if c.Saturation != nil {
		s.Saturation = clampPercent(*c.Saturation)
	}
	if c.Brightness != nil {
		s.Brightness = clampPercent(*c.Brightness)
	}
	if c.Kelvin != nil {
		s.Kelvin = *c.Kelvin
	}
	return s
}

// WriteRequest renders the change into the controller's wire format.
// Percentages convert back to the controller's 0..1 scale; the
// transition duration is encoded in seconds.
func (c Change) WriteRequest() upstream.WriteRequest {
	var req upstream.WriteRequest

	if c.On != nil {
		power := "off"
		if *c.On {
			power = "on"
		}
		req.Power = &power
	}
	if c.Hue != nil {
		hue := *c.Hue
		req.Hue = &hue
	}
	if c.Saturation != nil {
		sat := clampPercent(*c.Saturation) / 100
		req.Saturation = &sat
	}
	if c.Brightness != nil {
		bri := clampPercent(*c.Brightness) / 100
		req.Brightness = &bri
	}
	if c.Kelvin != nil {
		kelvin := *c.Kelvin
		req.Kelvin = &kelvin
	}
	if c.Duration > 0 {
		req.Duration = c.Duration.Seconds()
	}

	return req
}

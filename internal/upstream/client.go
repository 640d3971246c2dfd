package upstream

import "context"

// Client is the contract the sync core needs from an upstream light
// controller: a full poll-read and an imperative write. Implementations
// own transport, auth, and any retry policy.
type Client interface {
	// FetchAll returns the raw payload of every light the controller
	// currently reports. Transport failures wrap ErrUnavailable.
	FetchAll(ctx context.Context) ([]Device, error)

	// WriteState applies the rendered state change to one light,
	// addressed by the controller-assigned id.
	WriteState(ctx context.Context, id string, req WriteRequest) error
}

// Device is the raw per-light payload as the controller reports it.
type Device struct {
	// ID is the controller-assigned identifier, used for writes.
	ID string `json:"id"`

	// UniqueID is the stable hardware identifier. Some controllers omit
	// it; the core falls back to ID as the identity key.
	UniqueID string `json:"uid"`

	// Label is the human-assigned name, mutable on the controller.
	Label string `json:"label"`

	// Power is "on" or "off".
	Power string `json:"power"`

	// Brightness is the output level, 0..1.
	Brightness float64 `json:"brightness"`

	// Color holds the hue/saturation/kelvin components.
	Color Color `json:"color"`

	// Connected reports whether the controller can currently reach the light.
	Connected bool `json:"connected"`
}

// Color is the controller's color representation.
type Color struct {
	// Hue in degrees, 0..360.
	Hue float64 `json:"hue"`

	// Saturation 0..1.
	Saturation float64 `json:"saturation"`

	// Kelvin color temperature, meaningful when saturation is near zero.
	Kelvin int `json:"kelvin"`
}

// WriteRequest is a rendered state change for one light. Nil fields are
// left untouched by the controller.
type WriteRequest struct {
	Power      *string  `json:"power,omitempty"`
	Brightness *float64 `json:"brightness,omitempty"`
	Hue        *float64 `json:"hue,omitempty"`
	Saturation *float64 `json:"saturation,omitempty"`
	Kelvin     *int     `json:"kelvin,omitempty"`

	// Duration is the transition time in seconds. Zero means immediate.
	Duration float64 `json:"duration,omitempty"`
}

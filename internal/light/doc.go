// Package light is the per-device value object: it parses raw controller
// payloads into a canonical color/brightness representation, detects
// semantic changes between observations, renders consumer-facing
// projections, and builds write requests (including transition encoding).
//
// Everything here is pure; the hub package owns all state and timing.
package light

// Package upstream defines the controller client contract consumed by
// the sync core, plus the HTTP implementation.
//
// The controller exposes only a poll-based read (FetchAll) and an
// imperative write (WriteState) — no push notifications. Change
// detection and fan-out live in the hub package; this package is pure
// transport.
package upstream

package hub

import (
	"fmt"

	"github.com/lumesync/lumesync/internal/light"
)

// Status is the consumer-facing connection status of a device.
type Status string

// Status values.
const (
	// StatusUnknown: the device has never been seen by this hub.
	StatusUnknown Status = "unknown"

	// StatusOnline: the device is known and the controller reports it reachable.
	StatusOnline Status = "online"

	// StatusOffline: the device is known but the controller cannot reach it.
	StatusOffline Status = "offline"
)

// Update is what a consumer receives: the device's status and, for
// push-receiving consumers, the rendered state at the moment of dispatch.
type Update struct {
	ServerID string
	DeviceID string
	Status   Status

	// State is the rendered projection; nil for status-only deliveries
	// (unknown devices and write-only sinks).
	State map[string]any
}

// Event describes one state change produced by a reconciliation pass.
// Taps receive events; consumers receive Updates derived from them.
type Event struct {
	ServerID   string
	DeviceID   string
	UpstreamID string
	Label      string

	// Added marks a device's first sighting, dispatched like a change so
	// early subscribers catch up.
	Added bool

	State light.State

	// seq is the hub's state sequence at dispatch. Delivery gates use it
	// to drop stale pushes; consumers never see it.
	seq uint64
}

// statusOf maps a canonical state to the consumer-facing status.
func statusOf(s light.State) Status {
	if !s.Reachable {
		return StatusOffline
	}
	return StatusOnline
}

// dispatcher fans one change out to the subscribed consumers and the
// hub's taps. A failure delivering to one consumer is isolated: it is
// reported as a warning and never aborts the fan-out.
type dispatcher struct {
	warn func(Warning)
	taps []Tap
}

// Tap observes every dispatched change. Taps mirror changes into
// supporting infrastructure (MQTT, InfluxDB, the SQLite store, the
// WebSocket feed); they are not consumers and receive no status.
type Tap interface {
	StateChanged(Event)
}

// dispatch delivers one event to every subscriber exactly once, plus all taps.
func (d *dispatcher) dispatch(ev Event, subs []subscriber) {
	for _, t := range d.taps {
		d.tapSafely(t, ev)
	}

	for _, sub := range subs {
		u := Update{
			ServerID: ev.ServerID,
			DeviceID: ev.DeviceID,
			Status:   statusOf(ev.State),
		}
		if sub.receive {
			u.State = ev.State.Render()
		}
		d.deliver(sub, u, ev.seq)
	}
}

// deliver pushes one update to one consumer. The registration's gate
// serializes pushes and drops any update older than one already
// delivered, so a catch-up snapshot racing a reconciliation pass cannot
// end up as the consumer's last-seen state. Panics are converted into
// delivery warnings so a broken consumer cannot poison the pass.
func (d *dispatcher) deliver(sub subscriber, u Update, seq uint64) {
	sub.gate.mu.Lock()
	defer sub.gate.mu.Unlock()
	if seq < sub.gate.last {
		return
	}
	sub.gate.last = seq

	defer func() {
		if r := recover(); r != nil {
			d.warn(Warning{
				Kind:     WarnDelivery,
				DeviceID: u.DeviceID,
				Err:      fmt.Errorf("consumer %s panicked: %v", sub.id, r),
			})
		}
	}()
	sub.consumer.Push(u)
}

// tapSafely invokes one tap with the same isolation as a consumer.
func (d *dispatcher) tapSafely(t Tap, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			d.warn(Warning{
				Kind:     WarnDelivery,
				DeviceID: ev.DeviceID,
				Err:      fmt.Errorf("tap panicked: %v", r),
			})
		}
	}()
	t.StateChanged(ev)
}

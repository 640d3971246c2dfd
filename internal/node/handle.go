package node

import (
	"github.com/google/uuid"

	"github.com/lumesync/lumesync/internal/hub"
)

// Handle is one logical endpoint bound to a device: a read handle
// receives state pushes, a write handle only tracks its binding status.
// Each handle carries a unique consumer identity so several handles on
// the same process can subscribe to the same device independently.
type Handle struct {
	id      string
	receive bool
	push    func(hub.Update)
}

// NewReadHandle creates a handle that receives every state push for its
// bound device. fn runs on the hub's dispatch path and must return
// promptly.
func NewReadHandle(fn func(hub.Update)) *Handle {
	return &Handle{
		id:      uuid.NewString(),
		receive: true,
		push:    fn,
	}
}

// NewWriteHandle creates a handle that issues writes and only observes
// its device's binding status, never full state pushes.
func NewWriteHandle(fn func(hub.Update)) *Handle {
	return &Handle{
		id:      uuid.NewString(),
		receive: false,
		push:    fn,
	}
}

// ID returns the handle's consumer identity.
func (h *Handle) ID() string {
	return h.id
}

// Receive reports whether the handle wants state pushes.
func (h *Handle) Receive() bool {
	return h.receive
}

// Push implements hub.Consumer.
func (h *Handle) Push(u hub.Update) {
	if h.push != nil {
		h.push(u)
	}
}

// Bind subscribes the handle to a device on the given hub. The hub
// delivers the current status immediately, even when the device is not
// yet known.
func (h *Handle) Bind(target *hub.Hub, deviceID string) {
	target.Subscribe(deviceID, h.id, h, h.receive)
}

// Unbind removes the handle's subscription. Unbinding a handle that was
// never bound is a no-op.
func (h *Handle) Unbind(target *hub.Hub, deviceID string) {
	target.Unsubscribe(deviceID, h.id)
}

package hub

import "sync"

// Consumer is the delivery capability of one subscriber. Push must not
// retain the Update's State map beyond the call unless it copies it.
type Consumer interface {
	Push(Update)
}

// subscriber pairs a consumer with its registration details.
type subscriber struct {
	id       string
	consumer Consumer

	// receive distinguishes push-receiving consumers from sinks that
	// only want their bound status (write-only nodes).
	receive bool

	// gate serializes deliveries to this registration. Shared by every
	// copy of the entry handed out by forDevice.
	gate *deliveryGate
}

// deliveryGate serializes pushes to one registration and remembers the
// newest state sequence it has let through. A push carrying an older
// sequence is dropped: a snapshot captured before a reconciliation pass
// must never land after the pass's own dispatch.
type deliveryGate struct {
	mu   sync.Mutex
	last uint64
}

func newSubscriber(id string, c Consumer, receive bool) subscriber {
	return subscriber{id: id, consumer: c, receive: receive, gate: &deliveryGate{}}
}

// subscriptions maps device identity to the set of interested consumers.
//
// A consumer may register for a device before that device is known; the
// mapping is independent of the record set. Not safe for concurrent use
// on its own — the hub's mutex guards all access.
type subscriptions struct {
	byDevice map[string]map[string]subscriber
}

func newSubscriptions() *subscriptions {
	return &subscriptions{
		byDevice: make(map[string]map[string]subscriber),
	}
}

// add registers a consumer for a device, replacing any previous
// registration under the same consumer id. The returned entry carries
// the registration's delivery gate for the caller's catch-up push.
func (s *subscriptions) add(deviceID, consumerID string, c Consumer, receive bool) subscriber {
	m, ok := s.byDevice[deviceID]
	if !ok {
		m = make(map[string]subscriber)
		s.byDevice[deviceID] = m
	}
	sub := newSubscriber(consumerID, c, receive)
	m[consumerID] = sub
	return sub
}

// remove drops a registration. Removing an absent mapping is a no-op.
func (s *subscriptions) remove(deviceID, consumerID string) {
	m, ok := s.byDevice[deviceID]
	if !ok {
		return
	}
	delete(m, consumerID)
	if len(m) == 0 {
		delete(s.byDevice, deviceID)
	}
}

// forDevice returns a copy of the subscriber set for one device.
// The copy lets the hub release its mutex before delivering.
func (s *subscriptions) forDevice(deviceID string) []subscriber {
	m := s.byDevice[deviceID]
	if len(m) == 0 {
		return nil
	}
	out := make([]subscriber, 0, len(m))
	for _, sub := range m {
		out = append(out, sub)
	}
	return out
}

// count returns the number of registrations for one device.
func (s *subscriptions) count(deviceID string) int {
	return len(s.byDevice[deviceID])
}

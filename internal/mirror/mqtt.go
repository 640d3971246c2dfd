package mirror

import (
	"encoding/json"

	"github.com/lumesync/lumesync/internal/hub"
	"github.com/lumesync/lumesync/internal/infrastructure/logging"
	"github.com/lumesync/lumesync/internal/infrastructure/mqtt"
)

// MQTT mirrors every dispatched light change onto the broker as a
// retained state message. Publish failures are logged and dropped;
// the broker is an observer, never a dependency of dispatch.
type MQTT struct {
	client *mqtt.Client
	logger *logging.Logger
}

// NewMQTT creates a mirror over a connected broker client.
func NewMQTT(client *mqtt.Client, logger *logging.Logger) *MQTT {
	return &MQTT{
		client: client,
		logger: logger.With("component", "mqtt_mirror"),
	}
}

// StateChanged implements hub.Tap.
func (m *MQTT) StateChanged(ev hub.Event) {
	payload, err := json.Marshal(statePayload(ev))
	if err != nil {
		m.logger.Warn("encoding state payload", "device", ev.DeviceID, "error", err)
		return
	}

	topic := mqtt.Topics{}.LightState(ev.ServerID, ev.DeviceID)
	if err := m.client.PublishRetained(topic, payload); err != nil {
		m.logger.Warn("publishing state", "topic", topic, "error", err)
	}
}

// statePayload builds the wire payload for one change.
func statePayload(ev hub.Event) map[string]any {
	p := ev.State.Render()
	p["server"] = ev.ServerID
	p["device"] = ev.DeviceID
	return p
}

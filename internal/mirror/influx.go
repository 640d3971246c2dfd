package mirror

import (
	"github.com/lumesync/lumesync/internal/hub"
	"github.com/lumesync/lumesync/internal/infrastructure/influxdb"
)

// Influx records every dispatched light change as a time-series point.
// The underlying write API batches asynchronously, so recording never
// blocks dispatch.
type Influx struct {
	client *influxdb.Client
}

// NewInflux creates a recorder over a connected InfluxDB client.
func NewInflux(client *influxdb.Client) *Influx {
	return &Influx{client: client}
}

// StateChanged implements hub.Tap.
func (r *Influx) StateChanged(ev hub.Event) {
	r.client.WriteLightState(ev.ServerID, ev.DeviceID, map[string]interface{}{
		"on":         ev.State.On,
		"hue":        ev.State.Hue,
		"saturation": ev.State.Saturation,
		"brightness": ev.State.Brightness,
		"kelvin":     ev.State.Kelvin,
		"reachable":  ev.State.Reachable,
	})
}

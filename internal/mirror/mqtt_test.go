package mirror

import (
	"testing"

	"github.com/lumesync/lumesync/internal/hub"
	"github.com/lumesync/lumesync/internal/light"
)

func TestStatePayload(t *testing.T) {
	ev := hub.Event{
		ServerID: "loft",
		DeviceID: "d073d5123456",
		Label:    "Desk",
		State: light.State{
			On:         true,
			Brightness: 75,
			Kelvin:     3500,
			Reachable:  true,
			Label:      "Desk",
		},
	}

	p := statePayload(ev)
	if p["server"] != "loft" || p["device"] != "d073d5123456" {
		t.Errorf("payload identities = %v/%v", p["server"], p["device"])
	}
	if p["on"] != true || p["brightness"] != 75.0 || p["kelvin"] != 3500 {
		t.Errorf("payload state = %+v", p)
	}
	if p["label"] != "Desk" {
		t.Errorf("payload label = %v, want Desk", p["label"])
	}
}

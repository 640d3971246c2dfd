package node

import (
	"testing"

	"github.com/lumesync/lumesync/internal/hub"
)

func TestHandleIdentitiesAreUnique(t *testing.T) {
	a := NewReadHandle(nil)
	b := NewReadHandle(nil)
	if a.ID() == b.ID() {
		t.Fatalf("two handles share id %q", a.ID())
	}
}

func TestReadHandleReceivesPushes(t *testing.T) {
	var got []hub.Update
	h := NewReadHandle(func(u hub.Update) { got = append(got, u) })

	if !h.Receive() {
		t.Error("read handle should want state pushes")
	}

	h.Push(hub.Update{DeviceID: "d1", Status: hub.StatusOnline})
	if len(got) != 1 || got[0].DeviceID != "d1" {
		t.Fatalf("pushes = %+v, want one for d1", got)
	}
}

func TestWriteHandleTracksStatusOnly(t *testing.T) {
	h := NewWriteHandle(nil)
	if h.Receive() {
		t.Error("write handle should not want state pushes")
	}

	// A nil callback is legal; Push must not panic.
	h.Push(hub.Update{DeviceID: "d1", Status: hub.StatusUnknown})
}

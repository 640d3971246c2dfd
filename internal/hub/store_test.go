package hub

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lumesync/lumesync/internal/infrastructure/database"
	"github.com/lumesync/lumesync/internal/light"
	_ "github.com/lumesync/lumesync/migrations"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return NewStore(db.DB, quietLogger())
}

func TestStoreUpsertAndList(t *testing.T) {
	store := testStore(t)

	ev := Event{
		ServerID:   "loft",
		DeviceID:   "d1",
		UpstreamID: "ctrl-1",
		Label:      "Desk",
		State:      light.State{On: true, Brightness: 75, Reachable: true, Label: "Desk"},
	}
	store.StateChanged(ev)

	// A second change for the same device replaces the row.
	ev.State.Brightness = 20
	ev.Label = "Desk Lamp"
	store.StateChanged(ev)

	devices, err := store.Devices(context.Background(), "loft")
	if err != nil {
		t.Fatalf("Devices() error: %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("devices = %+v, want exactly 1", devices)
	}

	d := devices[0]
	if d.ID != "d1" || d.UpstreamID != "ctrl-1" || d.Label != "Desk Lamp" {
		t.Errorf("stored device = %+v", d)
	}
	if d.State["brightness"] != 20.0 {
		t.Errorf("stored brightness = %v, want 20", d.State["brightness"])
	}

	// Another server's listing is empty.
	other, err := store.Devices(context.Background(), "garage")
	if err != nil {
		t.Fatalf("Devices(garage) error: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("garage devices = %+v, want none", other)
	}
}

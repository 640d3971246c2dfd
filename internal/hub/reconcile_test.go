package hub

import (
	"testing"
	"time"

	"github.com/lumesync/lumesync/internal/light"
	"github.com/lumesync/lumesync/internal/upstream"
)

func fixedReconciler(now time.Time) reconciler {
	return reconciler{clock: func() time.Time { return now }}
}

func TestReconcileCreatesUnseenDevices(t *testing.T) {
	r := fixedReconciler(time.Now())
	records := make(map[string]*record)

	changes := r.reconcile(records, []upstream.Device{
		lightDevice("d1", 0.3),
		lightDevice("d2", 0.5),
	})

	if len(changes) != 2 {
		t.Fatalf("changes = %+v, want 2 added", changes)
	}
	for _, c := range changes {
		if !c.added {
			t.Errorf("change %+v should be marked added", c)
		}
	}
	if records["d1"] == nil || records["d1"].upstreamID != "ctrl-d1" {
		t.Errorf("record d1 = %+v, want upstream id ctrl-d1", records["d1"])
	}
}

func TestReconcileIdentityFallsBackToControllerID(t *testing.T) {
	r := fixedReconciler(time.Now())
	records := make(map[string]*record)

	d := lightDevice("ignored", 0.3)
	d.ID = "ctrl-7"
	d.UniqueID = ""
	r.reconcile(records, []upstream.Device{d})

	if records["ctrl-7"] == nil {
		t.Fatalf("device without a hardware id should key on the controller id; records = %v", records)
	}
}

func TestReconcileReportsOnlySemanticChanges(t *testing.T) {
	r := fixedReconciler(time.Now())
	records := make(map[string]*record)
	r.reconcile(records, []upstream.Device{lightDevice("d1", 0.3)})

	// Same state again: no change event.
	changes := r.reconcile(records, []upstream.Device{lightDevice("d1", 0.3)})
	if len(changes) != 0 {
		t.Fatalf("identical snapshot produced %+v", changes)
	}

	// A sub-epsilon wobble is not a change.
	changes = r.reconcile(records, []upstream.Device{lightDevice("d1", 0.30001)})
	if len(changes) != 0 {
		t.Fatalf("sub-epsilon wobble produced %+v", changes)
	}

	// A real change is.
	changes = r.reconcile(records, []upstream.Device{lightDevice("d1", 0.9)})
	if len(changes) != 1 || changes[0].added {
		t.Fatalf("changes = %+v, want one non-added change", changes)
	}
	if records["d1"].state.Brightness != 90 {
		t.Errorf("record brightness = %v, want 90", records["d1"].state.Brightness)
	}
}

func TestReconcileLeavesAbsentDevicesUntouched(t *testing.T) {
	r := fixedReconciler(time.Now())
	records := make(map[string]*record)
	r.reconcile(records, []upstream.Device{
		lightDevice("d1", 0.3),
		lightDevice("d2", 0.5),
	})

	// d2 drops out of the snapshot: it stays registered with its last state.
	changes := r.reconcile(records, []upstream.Device{lightDevice("d1", 0.3)})
	if len(changes) != 0 {
		t.Fatalf("absence produced %+v", changes)
	}
	if records["d2"] == nil || records["d2"].state.Brightness != 50 {
		t.Errorf("absent device record = %+v, want retained", records["d2"])
	}
}

func TestReconcileHonorsSuppressionWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := fixedReconciler(now)
	records := make(map[string]*record)
	r.reconcile(records, []upstream.Device{lightDevice("d1", 0.3)})

	records["d1"].state.Brightness = 80 // optimistic local write
	records["d1"].suppressUntil = now.Add(4 * time.Second)

	// Inside the window: the pre-write echo is ignored and the optimistic
	// state stands.
	changes := r.reconcile(records, []upstream.Device{lightDevice("d1", 0.3)})
	if len(changes) != 0 {
		t.Fatalf("suppressed echo produced %+v", changes)
	}
	if records["d1"].state.Brightness != 80 {
		t.Errorf("suppressed record brightness = %v, want 80", records["d1"].state.Brightness)
	}

	// At the deadline the window is over (strictly-before comparison).
	r = fixedReconciler(now.Add(4 * time.Second))
	changes = r.reconcile(records, []upstream.Device{lightDevice("d1", 0.5)})
	if len(changes) != 1 {
		t.Fatalf("post-window change produced %+v, want 1", changes)
	}
	if records["d1"].state.Brightness != 50 {
		t.Errorf("post-window brightness = %v, want 50", records["d1"].state.Brightness)
	}
}

func TestReconcileRefreshesControllerID(t *testing.T) {
	r := fixedReconciler(time.Now())
	records := make(map[string]*record)
	r.reconcile(records, []upstream.Device{lightDevice("d1", 0.3)})

	// Controller restart reassigns its id; the hardware key is stable.
	d := lightDevice("d1", 0.3)
	d.ID = "ctrl-99"
	changes := r.reconcile(records, []upstream.Device{d})

	if len(changes) != 0 {
		t.Fatalf("id refresh produced %+v, want none", changes)
	}
	if records["d1"].upstreamID != "ctrl-99" {
		t.Errorf("upstreamID = %q, want refreshed ctrl-99", records["d1"].upstreamID)
	}
}

func TestReconcileRefreshesControllerIDEvenWhileSuppressed(t *testing.T) {
	now := time.Now()
	r := fixedReconciler(now)
	records := make(map[string]*record)
	r.reconcile(records, []upstream.Device{lightDevice("d1", 0.3)})
	records["d1"].suppressUntil = now.Add(time.Minute)

	d := lightDevice("d1", 0.9)
	d.ID = "ctrl-99"
	r.reconcile(records, []upstream.Device{d})

	if records["d1"].upstreamID != "ctrl-99" {
		t.Errorf("upstreamID = %q, want ctrl-99 despite suppression", records["d1"].upstreamID)
	}
	if records["d1"].state.Brightness != 30 {
		t.Errorf("state mutated during suppression: %+v", records["d1"].state)
	}
}

func TestReconcileReachabilityChange(t *testing.T) {
	r := fixedReconciler(time.Now())
	records := make(map[string]*record)
	r.reconcile(records, []upstream.Device{lightDevice("d1", 0.3)})

	d := lightDevice("d1", 0.3)
	d.Connected = false
	changes := r.reconcile(records, []upstream.Device{d})

	if len(changes) != 1 {
		t.Fatalf("reachability flip produced %+v, want 1", changes)
	}
	if records["d1"].state.Reachable {
		t.Error("record should be unreachable after flip")
	}
	if statusOf(records["d1"].state) != StatusOffline {
		t.Errorf("status = %s, want offline", statusOf(records["d1"].state))
	}
}

func TestReconcileLabelChange(t *testing.T) {
	r := fixedReconciler(time.Now())
	records := make(map[string]*record)
	r.reconcile(records, []upstream.Device{lightDevice("d1", 0.3)})

	d := lightDevice("d1", 0.3)
	d.Label = "Renamed"
	changes := r.reconcile(records, []upstream.Device{d})

	if len(changes) != 1 {
		t.Fatalf("rename produced %+v, want 1", changes)
	}
	if records["d1"].state.Label != "Renamed" {
		t.Errorf("label = %q, want Renamed", records["d1"].state.Label)
	}
}

func TestRenderRoundsForDisplay(t *testing.T) {
	s := light.State{On: true, Brightness: 33.333333, Reachable: true, Label: "L"}
	m := s.Render()
	if m["brightness"] != 33.33 {
		t.Errorf("rendered brightness = %v, want 33.33", m["brightness"])
	}
}

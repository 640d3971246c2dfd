package hub

import (
	"time"

	"github.com/lumesync/lumesync/internal/light"
	"github.com/lumesync/lumesync/internal/upstream"
)

// changeEvent is one reconciliation result: a device whose canonical
// state changed this pass.
type changeEvent struct {
	deviceID string
	added    bool
}

// reconciler merges upstream snapshots into the record set.
//
// Policy, in order, for each device in the snapshot:
//   - unseen id: create a record and report it as added (dispatched like
//     a change so fresh subscribers catch up)
//   - known id inside its suppression window: leave the record alone —
//     the poll result is an expected echo of our own write
//   - known id with a semantic diff: update the record, report a change
//
// Devices present before but absent from this snapshot are left
// untouched: outages are treated as transient, and the controller
// reports reachability explicitly.
type reconciler struct {
	clock func() time.Time
}

// reconcile merges one snapshot. The caller holds the hub mutex.
func (r *reconciler) reconcile(records map[string]*record, snapshot []upstream.Device) []changeEvent {
	now := r.clock()
	var changes []changeEvent

	for _, d := range snapshot {
		key := identityKey(d)
		incoming := light.FromUpstream(d)

		rec, ok := records[key]
		if !ok {
			records[key] = &record{
				id:         key,
				upstreamID: d.ID,
				state:      incoming,
			}
			changes = append(changes, changeEvent{deviceID: key, added: true})
			continue
		}

		// The controller may reassign its own id across restarts; the
		// hardware identity key stays stable.
		rec.upstreamID = d.ID

		if now.Before(rec.suppressUntil) {
			continue
		}

		if light.Diff(rec.state, incoming) {
			rec.state = incoming
			changes = append(changes, changeEvent{deviceID: key})
		}
	}

	return changes
}

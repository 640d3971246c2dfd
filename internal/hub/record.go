package hub

import (
	"time"

	"github.com/lumesync/lumesync/internal/light"
	"github.com/lumesync/lumesync/internal/upstream"
)

// record is the canonical known state of one device. Records are created
// on first sighting, mutated by reconciliation and local writes, and
// never deleted while the hub runs — a device missing from a poll is
// treated as a transient outage, not a removal.
//
// All access is guarded by the hub's mutex.
type record struct {
	// id is the stable identity key: the hardware unique identifier when
	// the controller reports one, the controller-assigned id otherwise.
	id string

	// upstreamID is the controller-assigned id, used to address writes.
	// Refreshed on every reconciliation in case the controller reassigns it.
	upstreamID string

	// state is the last-known canonical state, either reconciled from a
	// poll or optimistically applied by a local write.
	state light.State

	// suppressUntil marks the end of the self-echo window after a local
	// write. Polls arriving before this instant are expected echoes of
	// our own write and do not re-trigger dispatch.
	suppressUntil time.Time

	// seq is the hub sequence stamped on the last state mutation. A
	// catch-up push captured at seq n is stale once a dispatch at n+1
	// exists; delivery gates compare against it.
	seq uint64
}

// identityKey derives the registry key for a raw upstream payload.
func identityKey(d upstream.Device) string {
	if d.UniqueID != "" {
		return d.UniqueID
	}
	return d.ID
}

// DeviceInfo is the read-only listing projection of one record.
type DeviceInfo struct {
	ID         string `json:"id"`
	UpstreamID string `json:"info"`
	Label      string `json:"name"`
}

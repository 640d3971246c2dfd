package hub

// WarningKind classifies a hub warning.
type WarningKind string

// Warning kinds.
const (
	// WarnUpstreamFetch: a poll fetch failed; the pass was skipped.
	WarnUpstreamFetch WarningKind = "upstream_fetch"

	// WarnUpstreamWrite: an upstream write failed; the optimistic local
	// state stands and the next poll corrects any drift.
	WarnUpstreamWrite WarningKind = "upstream_write"

	// WarnDelivery: pushing an update to one consumer failed; other
	// consumers were unaffected.
	WarnDelivery WarningKind = "delivery"
)

// Warning is a non-fatal fault report. Nothing that produces a warning is
// allowed to stop the poll timer or abort a reconciliation pass.
type Warning struct {
	Kind     WarningKind
	ServerID string
	DeviceID string
	Err      error
}

// warningBufferSize is the capacity of the hub's warning channel.
// Warnings beyond a full buffer are dropped (they are always logged).
const warningBufferSize = 64

// Warnings returns the hub's warning channel. Warnings are advisory:
// the channel is buffered and never blocks hub operation, so a slow or
// absent reader only loses warnings, never updates.
func (h *Hub) Warnings() <-chan Warning {
	return h.warnings
}

// warn logs a warning and offers it to the warning channel without blocking.
func (h *Hub) warn(w Warning) {
	w.ServerID = h.cfg.ServerID
	h.logger.Warn("hub warning",
		"kind", string(w.Kind),
		"device", w.DeviceID,
		"error", w.Err,
	)
	select {
	case h.warnings <- w:
	default:
	}
}

// Package hub is the synchronization core: it keeps a local model of an
// upstream controller's lights current via periodic polling and fans
// real changes out to subscribed consumers.
//
// # Architecture
//
//	                ┌──────────────────────────────────────────────┐
//	 upstream ───▶  │ Hub                                          │
//	 FetchAll       │  reconciler ──▶ records ──▶ dispatcher ──────┼──▶ consumers
//	                │      │                          │            │
//	 WriteState ◀───┼── Write (optimistic apply +     └─▶ taps     │
//	                │     suppression window)     (mqtt/influx/db) │
//	                └──────────────────────────────────────────────┘
//
// One mutex serializes all mutations of the record set and subscription
// registry; upstream I/O is the only work allowed in flight concurrently
// with hub activity, and its results are applied back under the mutex
// (or discarded after Stop). The poll goroutine is the sole source of
// reconciliation dispatches, which makes per-device delivery ordering
// across passes auditable.
//
// # Self-echo suppression
//
// A local write updates the record optimistically and stamps a
// suppression deadline covering the write's transition plus slack.
// Polls arriving before the deadline see the device as "expected echo"
// and do not re-dispatch; a genuinely external change after the deadline
// is detected normally. The window is whole-record, matching the
// upstream controllers' behavior of reporting transitional states during
// a fade.
//
// # Failure policy
//
// Nothing non-fatal may stop the poll timer: fetch errors skip the pass,
// write errors leave the optimistic state in place, and per-consumer
// delivery failures are isolated. All of these surface as Warnings on
// the hub's channel and in the log.
package hub

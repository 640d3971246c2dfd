// Package mqtt provides the broker client for the state mirror.
//
// lumesync publishes every dispatched light change as a retained message
// under lumesync/{server}/lights/{device}/state, plus its own liveness
// under lumesync/system/status (with an LWT for crash detection). The
// client is publish-only; nothing in lumesync consumes broker traffic.
package mqtt

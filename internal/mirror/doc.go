// Package mirror contains the outbound change observers: taps that copy
// every dispatched light change into supporting infrastructure. The
// MQTT mirror publishes retained state messages; the Influx recorder
// appends state history. Both are fire-and-forget so failures in a
// mirror never affect consumers.
package mirror

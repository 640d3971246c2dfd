// Package influxdb provides the time-series backend for light state
// history. Every dispatched change is recorded as a point in the
// light_state measurement, tagged by server and device. Writes are
// batched and non-blocking so history never slows dispatch.
package influxdb

// Package config loads and validates lumesync configuration.
//
// Configuration is YAML-based with hardcoded defaults and environment
// variable overrides (LUMESYNC_* pattern). The servers section lists the
// upstream light controllers to poll; everything else configures the
// ambient infrastructure (API, MQTT mirror, InfluxDB history, SQLite
// store, logging).
package config

// Package logging provides structured logging for lumesync.
//
// It wraps log/slog with configuration-driven output format and level,
// and attaches service/version attributes to every record. Components
// derive their own loggers via With:
//
//	log := logging.New(cfg.Logging, version)
//	hubLog := log.With("component", "hub", "server", "office")
package logging

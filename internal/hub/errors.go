package hub

import "errors"

// Domain errors for the hub package.
//
// Check with errors.Is():
//
//	if errors.Is(err, hub.ErrDeviceNotFound) {
//	    // handle unknown device
//	}
var (
	// ErrPollInterval is returned by Start when the configured poll
	// interval is missing or below MinPollInterval. The floor bounds the
	// request rate against the upstream controller.
	ErrPollInterval = errors.New("hub: poll interval below minimum")

	// ErrUpstreamUnavailable is returned by Start when the initial fetch
	// fails. The hub stays inert; the caller may retry Start.
	ErrUpstreamUnavailable = errors.New("hub: upstream unavailable")

	// ErrDeviceNotFound is returned by Write for an unregistered device id.
	ErrDeviceNotFound = errors.New("hub: device not found")

	// ErrRunning is returned by Start when the hub is already running.
	ErrRunning = errors.New("hub: already running")
)

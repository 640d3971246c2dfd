package upstream

import "errors"

// Domain errors for the upstream package. Check with errors.Is().
var (
	// ErrUnavailable is returned when the controller cannot be reached.
	ErrUnavailable = errors.New("upstream: controller unavailable")

	// ErrRequestFailed is returned when the controller rejects a request.
	ErrRequestFailed = errors.New("upstream: request failed")
)

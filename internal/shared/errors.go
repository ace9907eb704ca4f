package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Provider and data errors
	ErrAPIRequest          = fmt.Errorf("API request failed")
	ErrNotFound            = fmt.Errorf("resource not found")
	ErrMatchNotFound       = fmt.Errorf("match not found")
	ErrTrackingUnavailable = fmt.Errorf("tracking data unavailable")
	ErrMalformedPayload    = fmt.Errorf("malformed provider payload")
	ErrTimeout             = fmt.Errorf("operation timed out")

	// Cache errors
	ErrCacheMiss = fmt.Errorf("cache miss")

	// Replay errors
	ErrIndexOutOfRange = fmt.Errorf("frame index out of range")
	ErrNoFrames        = fmt.Errorf("replay has no frames")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

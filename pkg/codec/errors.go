package codec

import "errors"

var (
	// ErrMultiplexSetup wraps a failure to build the VP9 configuration
	// a multiplex codec is based on.
	ErrMultiplexSetup = errors.New("failed to build associated encoder configuration")
)

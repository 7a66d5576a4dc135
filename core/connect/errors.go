package connect

import "errors"

var (
	// ErrInvalidActionTarget is returned by Mount when an action map entry
	// is neither nil, a function, nor a channel-like value with a Next
	// operation.
	ErrInvalidActionTarget = errors.New("invalid action map target")
)

package anticheat

import "errors"

var (
	// ErrBanRegistryIsNotDefined is returned if you are going to create a
	// guard without a ban registry.
	ErrBanRegistryIsNotDefined = errors.New("ban registry is not defined")

	// ErrEventStreamIsNotDefined is returned if you are going to create a
	// guard without an event stream.
	ErrEventStreamIsNotDefined = errors.New("event stream is not defined")

	// ErrLoggerIsNotDefined is returned if you are going to create a guard
	// without a logger.
	ErrLoggerIsNotDefined = errors.New("logger is not defined")
)

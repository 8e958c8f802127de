// Package gateway is a websocket session layer in front of the anticheat
// guard. It terminates player connections, runs every inbound gameplay
// message through the guard validators and forwards accepted ones to the
// game backend.
package gateway

import (
	"errors"
	"time"
)

const (
	// DefaultConcurrency is a default size of the session worker pool.
	DefaultConcurrency = 4096

	// DefaultReadLimit caps a size of a single inbound websocket message.
	DefaultReadLimit = 4096

	// DefaultWriteTimeout is a default deadline for outbound writes.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultPongTimeout is how long we tolerate a silent peer before the
	// read loop gives up.
	DefaultPongTimeout = 60 * time.Second

	// DefaultPingPeriod is an interval between keepalive pings. Has to be
	// smaller than DefaultPongTimeout.
	DefaultPingPeriod = 25 * time.Second

	// defaultAdminLogsLimit is how many audit records /admin/logs returns
	// when the caller does not pass an explicit limit.
	defaultAdminLogsLimit = 100
)

var (
	ErrGuardIsNotDefined   = errors.New("guard is not defined")
	ErrBackendIsNotDefined = errors.New("backend is not defined")
	ErrLoggerIsNotDefined  = errors.New("logger is not defined")
)

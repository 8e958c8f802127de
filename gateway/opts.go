package gateway

import (
	"time"

	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/banlist"
)

// ServerOpts is a structure with settings of the gateway server.
//
// Guard, Backend and Logger are mandatory. The rest can be left empty,
// sensible defaults are applied.
type ServerOpts struct {
	// Guard validates every inbound gameplay message.
	Guard *anticheat.Guard

	// Backend receives messages the guard accepted.
	Backend Backend

	// Logger is a logger instance.
	Logger anticheat.Logger

	// Firewall is an optional CIDR blocklist consulted before the
	// websocket upgrade.
	Firewall *banlist.Firewall

	// Concurrency is a size of the session worker pool.
	Concurrency int

	// ReadLimit caps a size of a single inbound message in bytes.
	ReadLimit int64

	// WriteTimeout is a deadline for outbound writes.
	WriteTimeout time.Duration

	// PingPeriod is an interval between keepalive pings.
	PingPeriod time.Duration

	// PongTimeout is how long a peer may stay silent.
	PongTimeout time.Duration
}

func (s ServerOpts) valid() error {
	switch {
	case s.Guard == nil:
		return ErrGuardIsNotDefined
	case s.Backend == nil:
		return ErrBackendIsNotDefined
	case s.Logger == nil:
		return ErrLoggerIsNotDefined
	}

	return nil
}

func (s ServerOpts) getLogger(name string) anticheat.Logger {
	return s.Logger.Named(name)
}

func (s ServerOpts) getConcurrency() int {
	if s.Concurrency > 0 {
		return s.Concurrency
	}

	return DefaultConcurrency
}

func (s ServerOpts) getReadLimit() int64 {
	if s.ReadLimit > 0 {
		return s.ReadLimit
	}

	return DefaultReadLimit
}

func (s ServerOpts) getWriteTimeout() time.Duration {
	if s.WriteTimeout > 0 {
		return s.WriteTimeout
	}

	return DefaultWriteTimeout
}

func (s ServerOpts) getPingPeriod() time.Duration {
	if s.PingPeriod > 0 {
		return s.PingPeriod
	}

	return DefaultPingPeriod
}

func (s ServerOpts) getPongTimeout() time.Duration {
	if s.PongTimeout > 0 {
		return s.PongTimeout
	}

	return DefaultPongTimeout
}

package anticheat

import (
	"context"
	"time"
)

// Event is a data structure which is emitted by a guard during important
// moments of the player lifecycle: violations, threshold crossings, bans,
// session starts and finishes.
type Event interface {
	// PlayerID returns an id of the player this event belongs to. Some
	// events, like audit log pruning, are not bound to any player. In that
	// case this method returns an empty string.
	PlayerID() string

	// Timestamp returns a time when this event was generated.
	Timestamp() time.Time
}

// EventStream is an abstraction which receives events and routes them to
// consumers: logging, metric exporters and so on.
//
// All events for the same player id are guaranteed to be routed to the same
// consumer in their emission order.
type EventStream interface {
	// Send delivers an event to consumers. It blocks until the event is
	// accepted or any of the given contexts is closed.
	Send(ctx context.Context, evt Event)
}

// Logger defines a logging interface of the guard.
//
// Loggers are builders as well: Named and Bind* return new instances with
// bound fields which are appended to each message.
type Logger interface {
	// Named returns a logger with a given name, appended to the parent one.
	Named(name string) Logger

	// BindStr returns a logger with a bound string parameter.
	BindStr(name, value string) Logger

	// BindInt returns a logger with a bound int parameter.
	BindInt(name string, value int) Logger

	// Printf is required to support libraries which want a stdlib-style
	// logger.
	Printf(format string, args ...interface{})

	// Info puts a message on INFO level.
	Info(msg string)

	// InfoError puts a message with a bound error on INFO level.
	InfoError(msg string, err error)

	// Warning puts a message on WARNING level.
	Warning(msg string)

	// WarningError puts a message with a bound error on WARNING level.
	WarningError(msg string, err error)

	// Debug puts a message on DEBUG level.
	Debug(msg string)

	// DebugError puts a message with a bound error on DEBUG level.
	DebugError(msg string, err error)
}

// BanRegistry is an authoritative set of banned player ids. It outlives
// per-player tracking state: an entry stays after the player disconnects and
// the metrics are discarded.
type BanRegistry interface {
	// Ban puts a player id into the registry with a human-readable reason.
	// Duplicate calls are fine, the first reason wins.
	Ban(playerID, reason string)

	// IsBanned checks if a given player id is present in the registry.
	IsBanned(playerID string) bool

	// Len returns a number of banned player ids.
	Len() int
}

// ReplayCache remembers transaction ids it has seen to catch resubmission of
// the same economic operation. Given the volume, implementations are allowed
// to be probabilistic: a false positive rejects a legit transaction, so the
// probability has to be chosen carefully.
type ReplayCache interface {
	// SeenBefore checks if this transaction digest was already processed and
	// remembers it.
	SeenBefore(digest []byte) bool
}

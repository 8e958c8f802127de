package anticheat

import "time"

type eventBase struct {
	playerID  string
	timestamp time.Time
}

// PlayerID returns an id of the player this event belongs to.
func (e eventBase) PlayerID() string {
	return e.playerID
}

// Timestamp returns a time when this event was generated.
func (e eventBase) Timestamp() time.Time {
	return e.timestamp
}

// EventSessionStart is emitted when a player passes the connection gate and
// starts to be tracked.
type EventSessionStart struct {
	eventBase
}

// EventSessionFinish is emitted when a player disconnects and its tracking
// state is discarded.
type EventSessionFinish struct {
	eventBase
}

// EventConnectionRejected is emitted when a connection attempt is declined
// at the gate: the player is banned, rate limited or firewalled.
type EventConnectionRejected struct {
	eventBase

	// Reason is a machine-readable cause of the rejection.
	Reason string
}

// EventViolation is emitted every time a validator adds suspicion to a
// player, whether or not the triggering operation was rejected.
type EventViolation struct {
	eventBase

	// Reason is a violation tag: speed_hack, damage_hack and so on.
	Reason string

	// Points is the suspicion weight of this violation.
	Points int

	// Score is the player's total suspicion score after this violation.
	Score int

	// Rejected tells if the triggering operation was refused, as opposed
	// to corrected or merely flagged.
	Rejected bool
}

// EventWarningReached is emitted once per climb when a player's suspicion
// score crosses the warning threshold. It carries no enforcement, it exists
// so operators can review the player before the auto-ban fires.
type EventWarningReached struct {
	eventBase

	// Score is the suspicion score at the moment of crossing.
	Score int
}

// EventBan is emitted when a player is added to the ban registry.
type EventBan struct {
	eventBase

	// Reason is a human-readable ban reason.
	Reason string

	// Auto distinguishes threshold-triggered bans from manual ones.
	Auto bool
}

// EventReplay is emitted when a duplicate transaction id is detected.
type EventReplay struct {
	eventBase
}

// EventAuditPruned is emitted after an audit log pruning run.
type EventAuditPruned struct {
	eventBase

	// Removed is a number of records dropped by this run.
	Removed int

	// Size is the audit log size after the run.
	Size int
}

// NewEventSessionStart creates a new EventSessionStart event.
func NewEventSessionStart(playerID string) EventSessionStart {
	return EventSessionStart{
		eventBase: eventBase{
			playerID:  playerID,
			timestamp: time.Now(),
		},
	}
}

// NewEventSessionFinish creates a new EventSessionFinish event.
func NewEventSessionFinish(playerID string) EventSessionFinish {
	return EventSessionFinish{
		eventBase: eventBase{
			playerID:  playerID,
			timestamp: time.Now(),
		},
	}
}

// NewEventConnectionRejected creates a new EventConnectionRejected event.
func NewEventConnectionRejected(playerID, reason string) EventConnectionRejected {
	return EventConnectionRejected{
		eventBase: eventBase{
			playerID:  playerID,
			timestamp: time.Now(),
		},
		Reason: reason,
	}
}

// NewEventViolation creates a new EventViolation event.
func NewEventViolation(playerID, reason string, points, score int, rejected bool) EventViolation {
	return EventViolation{
		eventBase: eventBase{
			playerID:  playerID,
			timestamp: time.Now(),
		},
		Reason:   reason,
		Points:   points,
		Score:    score,
		Rejected: rejected,
	}
}

// NewEventWarningReached creates a new EventWarningReached event.
func NewEventWarningReached(playerID string, score int) EventWarningReached {
	return EventWarningReached{
		eventBase: eventBase{
			playerID:  playerID,
			timestamp: time.Now(),
		},
		Score: score,
	}
}

// NewEventBan creates a new EventBan event.
func NewEventBan(playerID, reason string, auto bool) EventBan {
	return EventBan{
		eventBase: eventBase{
			playerID:  playerID,
			timestamp: time.Now(),
		},
		Reason: reason,
		Auto:   auto,
	}
}

// NewEventReplay creates a new EventReplay event.
func NewEventReplay(playerID string) EventReplay {
	return EventReplay{
		eventBase: eventBase{
			playerID:  playerID,
			timestamp: time.Now(),
		},
	}
}

// NewEventAuditPruned creates a new EventAuditPruned event.
func NewEventAuditPruned(removed, size int) EventAuditPruned {
	return EventAuditPruned{
		eventBase: eventBase{
			timestamp: time.Now(),
		},
		Removed: removed,
		Size:    size,
	}
}

package events

import (
	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
)

// Observer is an instance that processes a stream of events routed to
// it. Each observer has a method per event type plus Shutdown, which is
// called when the owning event stream terminates.
type Observer interface {
	// EventSessionStart is called when a player session is registered
	// with the guard.
	EventSessionStart(anticheat.EventSessionStart)

	// EventSessionFinish is called when a player session is discarded.
	EventSessionFinish(anticheat.EventSessionFinish)

	// EventConnectionRejected is called when a connection attempt is
	// turned away at the gate (ban or connect flood).
	EventConnectionRejected(anticheat.EventConnectionRejected)

	// EventViolation is called for every recorded cheat violation.
	EventViolation(anticheat.EventViolation)

	// EventWarningReached is called once when a player's suspicion
	// score crosses the warning threshold.
	EventWarningReached(anticheat.EventWarningReached)

	// EventBan is called when a player is banned, manually or
	// automatically.
	EventBan(anticheat.EventBan)

	// EventReplay is called when a duplicate transaction is detected.
	EventReplay(anticheat.EventReplay)

	// EventAuditPruned is called after an audit log maintenance pass.
	EventAuditPruned(anticheat.EventAuditPruned)

	// Shutdown is called when the owning event stream stops.
	Shutdown()
}

// ObserverFactory creates a new observer. Event stream spawns an
// observer per worker goroutine, so factories must produce independent
// instances.
type ObserverFactory func() Observer

type multiObserver struct {
	observers []Observer
}

func (m multiObserver) EventSessionStart(evt anticheat.EventSessionStart) {
	for _, v := range m.observers {
		v.EventSessionStart(evt)
	}
}

func (m multiObserver) EventSessionFinish(evt anticheat.EventSessionFinish) {
	for _, v := range m.observers {
		v.EventSessionFinish(evt)
	}
}

func (m multiObserver) EventConnectionRejected(evt anticheat.EventConnectionRejected) {
	for _, v := range m.observers {
		v.EventConnectionRejected(evt)
	}
}

func (m multiObserver) EventViolation(evt anticheat.EventViolation) {
	for _, v := range m.observers {
		v.EventViolation(evt)
	}
}

func (m multiObserver) EventWarningReached(evt anticheat.EventWarningReached) {
	for _, v := range m.observers {
		v.EventWarningReached(evt)
	}
}

func (m multiObserver) EventBan(evt anticheat.EventBan) {
	for _, v := range m.observers {
		v.EventBan(evt)
	}
}

func (m multiObserver) EventReplay(evt anticheat.EventReplay) {
	for _, v := range m.observers {
		v.EventReplay(evt)
	}
}

func (m multiObserver) EventAuditPruned(evt anticheat.EventAuditPruned) {
	for _, v := range m.observers {
		v.EventAuditPruned(evt)
	}
}

func (m multiObserver) Shutdown() {
	for _, v := range m.observers {
		v.Shutdown()
	}
}

func newMultiObserver(factories []ObserverFactory) multiObserver {
	observers := make([]Observer, len(factories))

	for i, v := range factories {
		observers[i] = v()
	}

	return multiObserver{observers: observers}
}

package events

import (
	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
)

// NoopObserver is an observer that does nothing. It is useful to embed
// into your own observers so you implement only the events you care
// about.
type NoopObserver struct{}

func (n NoopObserver) EventSessionStart(_ anticheat.EventSessionStart) {}

func (n NoopObserver) EventSessionFinish(_ anticheat.EventSessionFinish) {}

func (n NoopObserver) EventConnectionRejected(_ anticheat.EventConnectionRejected) {}

func (n NoopObserver) EventViolation(_ anticheat.EventViolation) {}

func (n NoopObserver) EventWarningReached(_ anticheat.EventWarningReached) {}

func (n NoopObserver) EventBan(_ anticheat.EventBan) {}

func (n NoopObserver) EventReplay(_ anticheat.EventReplay) {}

func (n NoopObserver) EventAuditPruned(_ anticheat.EventAuditPruned) {}

func (n NoopObserver) Shutdown() {}

// NewNoopObserver builds a NoopObserver.
func NewNoopObserver() Observer {
	return NoopObserver{}
}

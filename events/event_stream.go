package events

import (
	"context"
	"math/rand"
	"runtime"
	"sync/atomic"

	"github.com/OneOfOne/xxhash"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
)

// EventStream is a default implementation of the [anticheat.EventStream]
// interface.
//
// EventStream manages a set of goroutines, observers. Main
// responsibility of the event stream is to route an event to a relevant
// observer based on some hash so each observer will see all events
// which belong to some player id.
//
// Thus, EventStream can spawn many observers.
type EventStream struct {
	ctx       context.Context
	ctxCancel context.CancelFunc
	chans     []chan anticheat.Event

	// dropped counts events lost on channel overflow. A pointer because
	// EventStream uses value receivers and atomic.Uint64 contains noCopy.
	dropped *atomic.Uint64
}

// Send routes an event to an observer goroutine.
//
// EventViolation fires on the validator hot path (every move, hit and
// action of a cheating client goes through it), so it is delivered
// non-blocking and dropped on overflow: a slow metrics consumer must
// never stall gameplay validation. The remaining events (session
// lifecycle, bans, audit maintenance) are rare and matter for
// accounting, so they are delivered blocking.
func (e EventStream) Send(ctx context.Context, evt anticheat.Event) {
	var chanNo uint32

	if playerID := evt.PlayerID(); playerID != "" {
		chanNo = xxhash.ChecksumString32(playerID)
	} else {
		chanNo = rand.Uint32()
	}

	ch := e.chans[int(chanNo)%len(e.chans)]

	if _, isViolation := evt.(anticheat.EventViolation); isViolation {
		select {
		case <-ctx.Done():
		case <-e.ctx.Done():
		case ch <- evt:
		default:
			e.dropped.Add(1)
		}

		return
	}

	select {
	case <-ctx.Done():
	case <-e.ctx.Done():
	case ch <- evt:
	}
}

// Dropped returns a number of events discarded on overflow since start.
func (e EventStream) Dropped() uint64 {
	return e.dropped.Load()
}

// Shutdown stops an event stream pipeline.
func (e EventStream) Shutdown() {
	e.ctxCancel()
}

// NewEventStream builds a new default event stream.
//
// If you give an empty array of observers, then NoopObserver is going
// to be used. If you give many observers, then they will process a
// message concurrently.
func NewEventStream(observerFactories []ObserverFactory) EventStream {
	if len(observerFactories) == 0 {
		observerFactories = append(observerFactories, NewNoopObserver)
	}

	ctx, cancel := context.WithCancel(context.Background())
	rv := EventStream{
		ctx:       ctx,
		ctxCancel: cancel,
		chans:     make([]chan anticheat.Event, runtime.NumCPU()),
		dropped:   &atomic.Uint64{},
	}

	for i := 0; i < runtime.NumCPU(); i++ {
		rv.chans[i] = make(chan anticheat.Event, 64)

		if len(observerFactories) == 1 {
			go eventStreamProcessor(ctx, rv.chans[i], observerFactories[0]())
		} else {
			go eventStreamProcessor(ctx, rv.chans[i], newMultiObserver(observerFactories))
		}
	}

	return rv
}

func eventStreamProcessor(ctx context.Context, eventChan <-chan anticheat.Event, observer Observer) {
	defer observer.Shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-eventChan:
			switch typedEvt := evt.(type) {
			case anticheat.EventSessionStart:
				observer.EventSessionStart(typedEvt)
			case anticheat.EventSessionFinish:
				observer.EventSessionFinish(typedEvt)
			case anticheat.EventConnectionRejected:
				observer.EventConnectionRejected(typedEvt)
			case anticheat.EventViolation:
				observer.EventViolation(typedEvt)
			case anticheat.EventWarningReached:
				observer.EventWarningReached(typedEvt)
			case anticheat.EventBan:
				observer.EventBan(typedEvt)
			case anticheat.EventReplay:
				observer.EventReplay(typedEvt)
			case anticheat.EventAuditPruned:
				observer.EventAuditPruned(typedEvt)
			}
		}
	}
}

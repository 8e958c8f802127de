package gateway

import (
	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
)

// Backend is a game simulation the gateway forwards validated messages
// to. The gateway never applies a message the guard rejected.
type Backend interface {
	// ExpectedTransactionValue returns a server-computed value of an
	// economic operation. It is compared against the client-reported
	// amount by the guard.
	ExpectedTransactionValue(playerID, kind string) float64

	// ApplyMove commits a validated position update.
	ApplyMove(playerID string, position anticheat.Position)

	// ApplyDamage commits a validated (possibly clamped) hit.
	ApplyDamage(playerID, targetID string, damage float64)

	// ApplyAction commits a validated action.
	ApplyAction(playerID, actionType string)

	// ApplyTransaction commits a validated economic operation.
	ApplyTransaction(playerID, kind string, amount float64)
}

// NopBackend is a backend that does nothing. It is used when the
// gateway runs standalone, purely as a validation tier in front of a
// game server which consumes verdicts elsewhere. With no economy
// anchor ExpectedTransactionValue returns 0, so value checks accept
// everything and only replay detection applies to transactions.
type NopBackend struct{}

func (n NopBackend) ExpectedTransactionValue(_, _ string) float64 { return 0 }

func (n NopBackend) ApplyMove(_ string, _ anticheat.Position) {}

func (n NopBackend) ApplyDamage(_, _ string, _ float64) {}

func (n NopBackend) ApplyAction(_, _ string) {}

func (n NopBackend) ApplyTransaction(_, _ string, _ float64) {}

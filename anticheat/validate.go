package anticheat

import (
	"math"
	"time"
)

// ValidateMove checks a movement sample against the speed cap.
//
// The first sample of an unknown player is accepted unconditionally: there
// is no previous position to measure against. Samples closer than 10ms to
// the previous one are accepted without updating state, otherwise network
// jitter would turn a tiny displacement into an absurd implied speed.
//
// A speed above the cap adds suspicion but the move still goes through
// flagged; only a speed above three times the cap rejects it. In that case
// the tracked position stays put, so the caller can snap the player back.
func (g *Guard) ValidateMove(playerID string, x, y float64) Verdict {
	entry, tracked := g.track(playerID)
	if !tracked {
		return Verdict{Valid: true}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastMoveTime).Seconds()

	if elapsed < minMoveElapsed.Seconds() {
		return Verdict{Valid: true}
	}

	distance := math.Hypot(x-entry.lastPosition.X, y-entry.lastPosition.Y)
	speed := distance / elapsed

	if speed > g.config.MaxMoveSpeed {
		extreme := speed > g.config.MaxMoveSpeed*3

		g.addSuspicion(playerID, entry, pointsSpeedHack, ReasonSpeedHack,
			map[string]interface{}{
				"speed":    speed,
				"maxSpeed": g.config.MaxMoveSpeed,
			}, extreme)

		if extreme {
			return Verdict{Valid: false, Reason: MessageMoveRejected}
		}
	}

	entry.lastMoveTime = now
	entry.lastPosition = Position{X: x, Y: y}
	entry.moveCount++

	return Verdict{Valid: true}
}

// ValidateDamage checks a single hit against the per-hit cap and the
// per-minute damage budget.
//
// An over-cap hit is corrected, not rejected: the window accumulates the cap
// and the caller applies the clamped amount. One bad sample should not
// disrupt a fight. Exhausting the minute budget is a different story: the
// crossing hit is rejected entirely.
func (g *Guard) ValidateDamage(playerID string, damage float64, targetID string) DamageVerdict {
	entry, tracked := g.track(playerID)
	if !tracked {
		return DamageVerdict{Valid: true, AdjustedDamage: damage}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()

	// Tumbling window: reset and restart, not slide.
	if now.Sub(entry.damageWindowStart) > damageWindow {
		entry.damageDealt = 0
		entry.damageWindowStart = now
	}

	if damage > g.config.MaxDamagePerHit {
		g.addSuspicion(playerID, entry, pointsDamageHack, ReasonDamageHack,
			map[string]interface{}{
				"damage":    damage,
				"maxDamage": g.config.MaxDamagePerHit,
				"target":    targetID,
			}, false)

		entry.damageDealt += g.config.MaxDamagePerHit

		return DamageVerdict{
			Valid:          true,
			AdjustedDamage: g.config.MaxDamagePerHit,
			Reason:         MessageDamageClamped,
		}
	}

	entry.damageDealt += damage

	if entry.damageDealt > g.config.MaxDamagePerMinute {
		g.addSuspicion(playerID, entry, pointsDPSHack, ReasonDPSHack,
			map[string]interface{}{
				"totalDamage": entry.damageDealt,
				"maxDamage":   g.config.MaxDamagePerMinute,
			}, true)

		return DamageVerdict{Valid: false, AdjustedDamage: 0, Reason: MessageDPSExceeded}
	}

	return DamageVerdict{Valid: true, AdjustedDamage: damage}
}

// ValidateAction checks the per-second action rate: ability casts, clicks
// and similar. The window tumbles every second; the call which pushes the
// count over the cap is rejected.
func (g *Guard) ValidateAction(playerID, actionType string) Verdict {
	entry, tracked := g.track(playerID)
	if !tracked {
		return Verdict{Valid: true}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()

	if now.Sub(entry.actionWindowStart) > actionWindow {
		entry.actionCount = 0
		entry.actionWindowStart = now
	}

	entry.actionCount++

	if entry.actionCount > g.config.MaxActionsPerSecond {
		g.addSuspicion(playerID, entry, pointsActionSpam, ReasonActionSpam,
			map[string]interface{}{
				"actionType": actionType,
				"count":      entry.actionCount,
			}, true)

		return Verdict{Valid: false, Reason: MessageActionSpam}
	}

	return Verdict{Valid: true}
}

// ValidateTransaction compares a client-reported economic delta against the
// server-computed expected value with a 10% relative tolerance.
//
// When the expected value is zero the transaction is accepted whatever the
// client claims. This is a known gap kept on purpose: with a zero
// denominator there is no relative difference to judge, and rejecting would
// break legitimate zero-value operations. Do not "fix" it here without a
// product decision.
func (g *Guard) ValidateTransaction(playerID, kind string, clientAmount, serverExpected float64) Verdict {
	// Unlike movement and damage, this check needs no player history: the
	// comparison is against the server-computed value, so an unknown player
	// gets no free first transaction.
	entry, _ := g.track(playerID)

	if serverExpected <= 0 {
		return Verdict{Valid: true}
	}

	diff := math.Abs(clientAmount-serverExpected) / serverExpected

	if diff > transactionTolerance {
		entry.mu.Lock()
		defer entry.mu.Unlock()

		g.addSuspicion(playerID, entry, pointsValueManipulation, ReasonValueManipulation,
			map[string]interface{}{
				"type":        kind,
				"clientValue": clientAmount,
				"serverValue": serverExpected,
				"difference":  diff * 100,
			}, true)

		return Verdict{Valid: false, Reason: MessageValueMismatch}
	}

	return Verdict{Valid: true}
}

// CheckReplay rejects a transaction id which was already submitted by this
// player. Economy handlers call it before ValidateTransaction when the
// client supplies a transaction id. With no replay cache configured
// everything passes.
func (g *Guard) CheckReplay(playerID, transactionID string) Verdict {
	if g.replayCache == nil || transactionID == "" {
		return Verdict{Valid: true}
	}

	if !g.replayCache.SeenBefore([]byte(playerID + ":" + transactionID)) {
		return Verdict{Valid: true}
	}

	g.eventStream.Send(g.ctx, NewEventReplay(playerID))

	entry, tracked := g.track(playerID)
	if tracked {
		entry.mu.Lock()
		g.addSuspicion(playerID, entry, pointsTransactionReplay, ReasonTransactionReplay,
			map[string]interface{}{
				"transactionId": transactionID,
			}, true)
		entry.mu.Unlock()
	}

	return Verdict{Valid: false, Reason: MessageReplayDetected}
}

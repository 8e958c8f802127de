package anticheat

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Guard is the server-side anti-cheat core. The session layer calls its
// validate methods inline on every relevant client message; the guard keeps
// per-player tracking state, accumulates suspicion and escalates repeated or
// severe violations into an automatic ban.
//
// A guard owns two background tasks: suspicion decay and audit log pruning.
// Call Shutdown to stop them.
type Guard struct {
	ctx           context.Context
	ctxCancel     context.CancelFunc
	loopWaitGroup sync.WaitGroup

	config Config
	store  *metricsStore
	audit  *auditLog

	bans        BanRegistry
	replayCache ReplayCache
	connLimiter *connLimiter
	eventStream EventStream
	logger      Logger

	auditMaxAge time.Duration
}

// Verdict is a result of a validate call. A failed verdict carries a
// player-facing reason; the caller decides whether to surface it.
type Verdict struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// DamageVerdict is a result of a damage validation. AdjustedDamage is the
// amount the caller should actually apply: the raw damage when everything is
// fine, the per-hit cap when the hit was clamped, zero when it was rejected.
type DamageVerdict struct {
	Valid          bool    `json:"valid"`
	AdjustedDamage float64 `json:"adjustedDamage"`
	Reason         string  `json:"reason,omitempty"`
}

// InitPlayer starts tracking a player. It is called by the connection gate
// and lazily by validators which see an unknown player id.
func (g *Guard) InitPlayer(playerID string) {
	_, existed := g.store.init(playerID, time.Now())

	if !existed {
		g.eventStream.Send(g.ctx, NewEventSessionStart(playerID))
	}
}

// RemovePlayer discards the player's tracking state. The suspicion score and
// warnings go away with it; only a ban registry entry, if any, survives. A
// player below the ban threshold therefore resets its score by reconnecting.
// This leniency is deliberate and kept as-is.
func (g *Guard) RemovePlayer(playerID string) {
	if g.store.remove(playerID) {
		g.eventStream.Send(g.ctx, NewEventSessionFinish(playerID))
	}
}

// IsBanned checks if a player id is present in the ban registry.
func (g *Guard) IsBanned(playerID string) bool {
	return g.bans.IsBanned(playerID)
}

// OnConnect is the connection gate. A banned or flooding player is rejected;
// the returned reason is the payload of the `banned` message the session
// layer sends before force-disconnecting. Everyone else starts being
// tracked.
func (g *Guard) OnConnect(playerID string) Verdict {
	logger := g.logger.BindStr("player", playerID)

	if g.bans.IsBanned(playerID) {
		logger.Info("banned player rejected at gate")
		g.eventStream.Send(g.ctx, NewEventConnectionRejected(playerID, "banned"))

		return Verdict{Valid: false, Reason: MessageBanned}
	}

	if g.connLimiter != nil && !g.connLimiter.allow(playerID) {
		logger.Info("connection attempt was rate limited")
		g.eventStream.Send(g.ctx, NewEventConnectionRejected(playerID, "rate_limited"))

		return Verdict{Valid: false, Reason: MessageConnectFlood}
	}

	g.InitPlayer(playerID)

	return Verdict{Valid: true}
}

// OnDisconnect tears down tracking for a disconnected player.
func (g *Guard) OnDisconnect(playerID string) {
	g.RemovePlayer(playerID)
}

// BanPlayer is the manual/admin ban path. It does not disconnect an already
// connected session: enforcement happens at the next connection attempt.
func (g *Guard) BanPlayer(playerID, reason string) {
	if entry := g.store.get(playerID); entry != nil {
		entry.mu.Lock()
		if entry.banned {
			entry.mu.Unlock()

			return
		}
		entry.banned = true
		entry.mu.Unlock()
	}

	g.ban(playerID, reason, false)
}

// PlayerStatus returns a snapshot of the player's tracking state, or nil if
// the player is not tracked.
func (g *Guard) PlayerStatus(playerID string) *PlayerStatus {
	entry := g.store.get(playerID)
	if entry == nil {
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	warnings := make([]string, len(entry.warnings))
	copy(warnings, entry.warnings)

	return &PlayerStatus{
		PlayerID:       playerID,
		SuspicionScore: entry.suspicionScore,
		Warnings:       warnings,
		Banned:         entry.banned,
		MoveCount:      entry.moveCount,
		LastMoveTime:   entry.lastMoveTime,
		LastPosition:   entry.lastPosition,
	}
}

// SuspiciousLogs returns the most recent limit audit records, oldest first.
func (g *Guard) SuspiciousLogs(limit int) []SuspicionRecord {
	return g.audit.recent(limit)
}

// CleanupLogs drops audit records older than maxAge and returns the number
// of dropped records. The guard runs this periodically on its own; the
// method is exported for the admin path.
func (g *Guard) CleanupLogs(maxAge time.Duration) int {
	removed := g.audit.prune(maxAge)
	g.eventStream.Send(g.ctx, NewEventAuditPruned(removed, g.audit.size()))

	return removed
}

// DecaySuspicion reduces every tracked player's suspicion score by one
// point, never below zero. An isolated violation should not brand a player
// forever; sustained abuse accumulates much faster than this removes.
func (g *Guard) DecaySuspicion() {
	g.store.each(func(_ string, entry *playerMetrics) {
		if entry.suspicionScore > 0 {
			entry.suspicionScore--
		}
	})
}

// TrackedPlayers returns the number of currently tracked players.
func (g *Guard) TrackedPlayers() int {
	return g.store.size()
}

// AuditLogSize returns the current number of audit records.
func (g *Guard) AuditLogSize() int {
	return g.audit.size()
}

// ConnLimiterSize returns the number of player ids tracked by the
// connection rate limiter. Returns 0 if rate limiting is disabled.
func (g *Guard) ConnLimiterSize() int {
	if g.connLimiter == nil {
		return 0
	}

	return g.connLimiter.size()
}

// Shutdown stops the background tasks. Validate calls issued after Shutdown
// still work, they just no longer decay.
func (g *Guard) Shutdown() {
	g.ctxCancel()
	g.loopWaitGroup.Wait()

	if g.connLimiter != nil {
		g.connLimiter.stop()
	}
}

// track returns the entry for a player, creating one if needed. The boolean
// tells if the entry existed before: validators accept the first sample of
// an unknown player unconditionally because there is nothing to compare it
// against yet.
func (g *Guard) track(playerID string) (*playerMetrics, bool) {
	if entry := g.store.get(playerID); entry != nil {
		return entry, true
	}

	g.InitPlayer(playerID)

	return g.store.get(playerID), false
}

// addSuspicion records a violation on an entry the caller has locked. It
// updates the score and warnings, appends an audit record, emits an event
// and escalates when a threshold is crossed.
func (g *Guard) addSuspicion(
	playerID string,
	entry *playerMetrics,
	points int,
	reason string,
	data map[string]interface{},
	rejected bool,
) {
	previous := entry.suspicionScore
	entry.suspicionScore += points
	entry.warnings = append(entry.warnings,
		fmt.Sprintf("[%s] %s", time.Now().Format(time.RFC3339), reason))

	g.audit.append(SuspicionRecord{
		PlayerID:  playerID,
		Reason:    reason,
		Timestamp: time.Now(),
		Data:      data,
	})

	g.eventStream.Send(g.ctx,
		NewEventViolation(playerID, reason, points, entry.suspicionScore, rejected))

	g.logger.
		BindStr("player", playerID).
		BindStr("reason", reason).
		BindInt("points", points).
		BindInt("score", entry.suspicionScore).
		Warning("suspicion added")

	if previous < g.config.WarningThreshold &&
		entry.suspicionScore >= g.config.WarningThreshold {
		g.eventStream.Send(g.ctx,
			NewEventWarningReached(playerID, entry.suspicionScore))
	}

	if entry.suspicionScore >= g.config.SuspicionThreshold && !entry.banned {
		entry.banned = true
		g.ban(playerID, MessageAutoBan, true)
	}
}

// ban puts the player into the registry. Marking the metrics entry is the
// caller's job because the caller knows the entry's lock state.
func (g *Guard) ban(playerID, reason string, auto bool) {
	g.bans.Ban(playerID, reason)
	g.eventStream.Send(g.ctx, NewEventBan(playerID, reason, auto))

	g.logger.
		BindStr("player", playerID).
		BindStr("reason", reason).
		Warning("player banned")
}

func (g *Guard) decayLoop(interval time.Duration) {
	defer g.loopWaitGroup.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-g.ctx.Done():
			return
		case <-ticker.C:
			g.DecaySuspicion()
		}
	}
}

func (g *Guard) auditPruneLoop(interval time.Duration) {
	defer g.loopWaitGroup.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-g.ctx.Done():
			return
		case <-ticker.C:
			removed := g.CleanupLogs(g.auditMaxAge)
			g.logger.
				BindInt("removed", removed).
				BindStr("max_age", g.auditMaxAge.String()).
				Debug("audit log pruned")
		}
	}
}

// NewGuard makes a new anti-cheat guard instance.
func NewGuard(opts GuardOpts) (*Guard, error) {
	if err := opts.valid(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var limiter *connLimiter
	if opts.getConnectRate() > 0 {
		limiter = newConnLimiter(
			opts.getConnectRate(),
			opts.getConnectBurst(),
			time.Minute, // cleanup every minute
		)
	}

	guard := &Guard{
		ctx:         ctx,
		ctxCancel:   cancel,
		config:      opts.getConfig(),
		store:       newMetricsStore(),
		audit:       newAuditLog(opts.getAuditMaxEntries()),
		bans:        opts.BanRegistry,
		replayCache: opts.ReplayCache,
		connLimiter: limiter,
		eventStream: opts.EventStream,
		logger:      opts.getLogger("guard"),
		auditMaxAge: opts.getAuditMaxAge(),
	}

	guard.loopWaitGroup.Add(2)
	go guard.decayLoop(opts.getDecayInterval())
	go guard.auditPruneLoop(opts.getAuditPruneInterval())

	return guard, nil
}

package anticheat

import "time"

const (
	// DefaultDecayInterval is a default interval between suspicion decay
	// runs.
	DefaultDecayInterval = time.Minute

	// DefaultAuditPruneInterval is a default interval between audit log
	// pruning runs.
	DefaultAuditPruneInterval = 24 * time.Hour

	// DefaultAuditMaxAge is a default age after which audit records are
	// pruned.
	DefaultAuditMaxAge = 24 * time.Hour

	// DefaultAuditMaxEntries is a default hard cap of the audit log size.
	DefaultAuditMaxEntries = 10000

	// DefaultConnectBurst is a default burst of the connection rate
	// limiter.
	DefaultConnectBurst = 20

	// damageWindow is the length of the tumbling damage accounting window.
	damageWindow = time.Minute

	// actionWindow is the length of the tumbling action accounting window.
	actionWindow = time.Second

	// minMoveElapsed guards the speed computation against near-zero time
	// deltas. Two samples closer than this are treated as packet jitter and
	// are not evaluated: dividing by such a delta would amplify a pixel of
	// movement into an absurd speed value.
	minMoveElapsed = 10 * time.Millisecond
)

// Violation weights and reasons. Weights reflect how hard the observed
// behavior is to produce by accident: a single fast move sample is cheap,
// a mismatching transaction value is not.
const (
	ReasonSpeedHack         = "speed_hack"
	ReasonDamageHack        = "damage_hack"
	ReasonDPSHack           = "dps_hack"
	ReasonActionSpam        = "action_spam"
	ReasonValueManipulation = "value_manipulation"
	ReasonTransactionReplay = "transaction_replay"

	pointsSpeedHack         = 5
	pointsDamageHack        = 20
	pointsDPSHack           = 15
	pointsActionSpam        = 3
	pointsValueManipulation = 30
	pointsTransactionReplay = 10
)

// transactionTolerance is a relative difference between a client-reported
// and a server-computed economic delta we accept without complaints. Network
// delays make the client value slightly stale, so exact matching would flag
// honest players.
const transactionTolerance = 0.1

// Player-facing messages. The game serves a Turkish audience, so the only
// strings which ever reach a client are kept in Turkish.
const (
	MessageMoveRejected    = "Hareket hızı çok yüksek (hile tespit edildi)"
	MessageDamageClamped   = "Hasar sınırlandı"
	MessageDPSExceeded     = "Dakikalık hasar limiti aşıldı"
	MessageActionSpam      = "Çok fazla aksiyon (yavaşlayın)"
	MessageValueMismatch   = "Değer uyuşmazlığı tespit edildi"
	MessageReplayDetected  = "Tekrarlanan işlem tespit edildi"
	MessageBanned          = "Hesabınız yasaklandı"
	MessageConnectFlood    = "Çok fazla bağlantı denemesi"
	MessageAutoBan         = "Otomatik yasak: Şüpheli aktivite eşik değeri aşıldı"
)

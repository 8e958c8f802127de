package anticheat

import (
	"time"

	"golang.org/x/time/rate"
)

// GuardOpts is a structure with settings for the guard.
//
// This is not required per se, but this is to shorten the constructor
// signature and give an ability to conveniently provide default values.
type GuardOpts struct {
	// BanRegistry defines an authoritative set of banned player ids.
	//
	// This is a mandatory setting.
	BanRegistry BanRegistry

	// EventStream defines an instance of the event stream.
	//
	// This is a mandatory setting.
	EventStream EventStream

	// Logger defines an instance of the logger.
	//
	// This is a mandatory setting.
	Logger Logger

	// ReplayCache defines an instance of the duplicate-transaction cache.
	//
	// This is an optional setting. If not given, replay checks accept
	// everything.
	ReplayCache ReplayCache

	// Config contains the validator thresholds.
	//
	// This is an optional setting. If not provided, default values will be
	// used.
	Config *Config

	// ConnectRatePerSecond defines the maximum number of connection
	// attempts per second per player id.
	//
	// Set to 0 to disable connection rate limiting.
	//
	// This is an optional setting. Default: 0 (disabled)
	ConnectRatePerSecond float64

	// ConnectBurst defines the maximum burst for the connection rate
	// limiter.
	//
	// This is an optional setting. Default: 20
	ConnectBurst int

	// DecayInterval is how often every tracked player's suspicion score is
	// reduced by one point.
	//
	// This is an optional setting. Default: 1 minute
	DecayInterval time.Duration

	// AuditPruneInterval is how often old audit records are dropped.
	//
	// This is an optional setting. Default: 24 hours
	AuditPruneInterval time.Duration

	// AuditMaxAge is the age after which an audit record is dropped by a
	// pruning run.
	//
	// This is an optional setting. Default: 24 hours
	AuditMaxAge time.Duration

	// AuditMaxEntries is a hard cap of the audit log size, enforced on
	// every append independently of pruning.
	//
	// This is an optional setting. Default: 10000
	AuditMaxEntries int
}

func (g GuardOpts) valid() error {
	switch {
	case g.BanRegistry == nil:
		return ErrBanRegistryIsNotDefined
	case g.EventStream == nil:
		return ErrEventStreamIsNotDefined
	case g.Logger == nil:
		return ErrLoggerIsNotDefined
	}

	return nil
}

func (g GuardOpts) getConfig() Config {
	if g.Config != nil {
		return *g.Config
	}

	return DefaultConfig()
}

func (g GuardOpts) getLogger(name string) Logger {
	return g.Logger.Named(name)
}

func (g GuardOpts) getConnectRate() rate.Limit {
	return rate.Limit(g.ConnectRatePerSecond)
}

func (g GuardOpts) getConnectBurst() int {
	if g.ConnectBurst == 0 {
		return DefaultConnectBurst
	}

	return g.ConnectBurst
}

func (g GuardOpts) getDecayInterval() time.Duration {
	if g.DecayInterval == 0 {
		return DefaultDecayInterval
	}

	return g.DecayInterval
}

func (g GuardOpts) getAuditPruneInterval() time.Duration {
	if g.AuditPruneInterval == 0 {
		return DefaultAuditPruneInterval
	}

	return g.AuditPruneInterval
}

func (g GuardOpts) getAuditMaxAge() time.Duration {
	if g.AuditMaxAge == 0 {
		return DefaultAuditMaxAge
	}

	return g.AuditMaxAge
}

func (g GuardOpts) getAuditMaxEntries() int {
	if g.AuditMaxEntries == 0 {
		return DefaultAuditMaxEntries
	}

	return g.AuditMaxEntries
}

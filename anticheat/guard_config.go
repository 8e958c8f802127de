package anticheat

// Config contains the thresholds which drive the validators. It is read
// once on guard construction and never changes afterwards.
type Config struct {
	// MaxMoveSpeed is the highest plausible movement speed in world units
	// per second. Default: 50.
	MaxMoveSpeed float64

	// MaxDamagePerHit is the highest damage a single hit may carry.
	// Anything above is clamped down to this value. Default: 10000.
	MaxDamagePerHit float64

	// MaxActionsPerSecond is the cap of the 1 second action window.
	// Default: 20.
	MaxActionsPerSecond int

	// MaxDamagePerMinute is the cap of the 60 second damage window.
	// Default: 500000.
	MaxDamagePerMinute float64

	// SuspicionThreshold is the score at which a player is banned
	// automatically. Default: 100.
	SuspicionThreshold int

	// WarningThreshold is the score at which a player is flagged for
	// operator review. Nothing is enforced at this level, the guard only
	// emits an event. Default: 50.
	WarningThreshold int
}

// DefaultConfig returns the thresholds tuned for production gameplay. The
// per-hit cap is high on purpose: endgame builds legitimately hit five
// digits.
func DefaultConfig() Config {
	return Config{
		MaxMoveSpeed:        50,
		MaxDamagePerHit:     10000,
		MaxActionsPerSecond: 20,
		MaxDamagePerMinute:  500000,
		SuspicionThreshold:  100,
		WarningThreshold:    50,
	}
}

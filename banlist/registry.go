// Package banlist provides the authoritative deny sets of the anti-cheat
// subsystem: a player-id ban registry and a network-level CIDR firewall.
//
// Both are in-memory and per-process. Nothing here survives a restart; a
// durable backing store is a deliberate extension point, not something this
// package pretends to do.
package banlist

import "sync"

// Registry is an in-memory set of banned player ids. It implements
// anticheat.BanRegistry.
//
// There is no unban path: entries only accumulate for the process lifetime.
type Registry struct {
	mu      sync.RWMutex
	reasons map[string]string
}

// NewRegistry creates an empty ban registry.
func NewRegistry() *Registry {
	return &Registry{
		reasons: make(map[string]string),
	}
}

// Ban adds a player id with a reason. The first reason wins; repeated calls
// for the same id are no-ops.
func (r *Registry) Ban(playerID, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reasons[playerID]; !ok {
		r.reasons[playerID] = reason
	}
}

// IsBanned checks set membership.
func (r *Registry) IsBanned(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.reasons[playerID]

	return ok
}

// Reason returns the recorded ban reason, if any.
func (r *Registry) Reason(playerID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reason, ok := r.reasons[playerID]

	return reason, ok
}

// Len returns the number of banned player ids.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.reasons)
}

package anticheat

import (
	"sync"
	"time"

	"github.com/OneOfOne/xxhash"
)

// metricsShardCount is a number of independent buckets the player map is
// split into. Validators for different players land on different shards and
// never contend; within one player everything is serialized by the entry
// mutex.
const metricsShardCount = 16

// Position is a point on the 2D game plane.
type Position struct {
	X float64
	Y float64
}

// playerMetrics is mutable per-player tracking state. It exists only while
// the player is connected; a disconnect discards it along with the suspicion
// score and warnings. The ban registry is the only thing which survives.
//
// All fields are protected by mu. Callers lock an entry for the whole
// duration of a validator call so that two sequential events of the same
// player observe each other's updates.
type playerMetrics struct {
	mu sync.Mutex

	lastMoveTime time.Time
	lastPosition Position
	moveCount    int

	// damageDealt accumulates within a tumbling window which starts at
	// damageWindowStart and is reset, not slid, every damageWindow.
	damageDealt       float64
	damageWindowStart time.Time

	// actionCount works the same way on an actionWindow scale.
	actionCount       int
	actionWindowStart time.Time

	suspicionScore int
	warnings       []string
	banned         bool
}

// PlayerStatus is a read-only snapshot of per-player tracking state, served
// on the operator path.
type PlayerStatus struct {
	PlayerID       string    `json:"playerId"`
	SuspicionScore int       `json:"suspicionScore"`
	Warnings       []string  `json:"warnings"`
	Banned         bool      `json:"banned"`
	MoveCount      int       `json:"moveCount"`
	LastMoveTime   time.Time `json:"lastMoveTime"`
	LastPosition   Position  `json:"lastPosition"`
}

type metricsShard struct {
	mu      sync.RWMutex
	players map[string]*playerMetrics
}

type metricsStore struct {
	shards [metricsShardCount]*metricsShard
}

func newMetricsStore() *metricsStore {
	store := &metricsStore{}

	for i := range store.shards {
		store.shards[i] = &metricsShard{
			players: make(map[string]*playerMetrics),
		}
	}

	return store
}

func (m *metricsStore) shardFor(playerID string) *metricsShard {
	return m.shards[int(xxhash.ChecksumString32(playerID))%metricsShardCount]
}

func (m *metricsStore) get(playerID string) *playerMetrics {
	shard := m.shardFor(playerID)

	shard.mu.RLock()
	defer shard.mu.RUnlock()

	return shard.players[playerID]
}

// init creates a fresh entry for a player, replacing any existing one. The
// window anchors start at now so the first samples are measured against the
// connect time. The second return value tells if an entry already was there.
func (m *metricsStore) init(playerID string, now time.Time) (*playerMetrics, bool) {
	entry := &playerMetrics{
		lastMoveTime:      now,
		damageWindowStart: now,
		actionWindowStart: now,
	}

	shard := m.shardFor(playerID)

	shard.mu.Lock()
	_, existed := shard.players[playerID]
	shard.players[playerID] = entry
	shard.mu.Unlock()

	return entry, existed
}

func (m *metricsStore) remove(playerID string) bool {
	shard := m.shardFor(playerID)

	shard.mu.Lock()
	_, existed := shard.players[playerID]
	delete(shard.players, playerID)
	shard.mu.Unlock()

	return existed
}

func (m *metricsStore) size() int {
	count := 0

	for _, shard := range m.shards {
		shard.mu.RLock()
		count += len(shard.players)
		shard.mu.RUnlock()
	}

	return count
}

// each visits every tracked player with its entry locked. The shard lock is
// not held while fn runs, so fn may take as long as it wants without
// stalling validators of unrelated players on the same shard.
func (m *metricsStore) each(fn func(playerID string, entry *playerMetrics)) {
	for _, shard := range m.shards {
		shard.mu.RLock()
		entries := make(map[string]*playerMetrics, len(shard.players))
		for id, entry := range shard.players {
			entries[id] = entry
		}
		shard.mu.RUnlock()

		for id, entry := range entries {
			entry.mu.Lock()
			fn(id, entry)
			entry.mu.Unlock()
		}
	}
}

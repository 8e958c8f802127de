package antireplay

import (
	"sync"
	"sync/atomic"

	"github.com/OneOfOne/xxhash"
	boom "github.com/tylertreat/BoomFilters"

	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
)

const (
	// DefaultMaxSize is the default filter memory budget, in bytes.
	DefaultMaxSize = 1024 * 1024

	// DefaultErrorRate is the default false positive rate. A false
	// positive here means a legitimate transaction gets rejected, so the
	// default is deliberately tight.
	DefaultErrorRate = 0.001
)

// StableBloomFilter is an anticheat.ReplayCache backed by a stable bloom
// filter with atomic instrumentation counters.
type StableBloomFilter struct {
	filter boom.StableBloomFilter
	mutex  sync.Mutex

	totalChecks    uint64
	replayDetected uint64
	uniqueDigests  uint64
}

// SeenBefore checks if this transaction digest was already processed and
// remembers it.
func (s *StableBloomFilter) SeenBefore(digest []byte) bool {
	atomic.AddUint64(&s.totalChecks, 1)

	s.mutex.Lock()
	duplicate := s.filter.TestAndAdd(digest)
	s.mutex.Unlock()

	if duplicate {
		atomic.AddUint64(&s.replayDetected, 1)
	} else {
		atomic.AddUint64(&s.uniqueDigests, 1)
	}

	return duplicate
}

// Metrics is a snapshot of filter statistics for monitoring.
type Metrics struct {
	TotalChecks     uint64
	ReplayDetected  uint64
	UniqueDigests   uint64
	ReplayRate      float64
	EstimatedFPRate float64
}

// GetMetrics returns current statistics.
func (s *StableBloomFilter) GetMetrics() Metrics {
	totalChecks := atomic.LoadUint64(&s.totalChecks)
	replayDetected := atomic.LoadUint64(&s.replayDetected)
	uniqueDigests := atomic.LoadUint64(&s.uniqueDigests)

	var replayRate float64
	if totalChecks > 0 {
		replayRate = float64(replayDetected) / float64(totalChecks) * 100.0
	}

	s.mutex.Lock()
	estimatedFPRate := s.filter.FalsePositiveRate()
	s.mutex.Unlock()

	return Metrics{
		TotalChecks:     totalChecks,
		ReplayDetected:  replayDetected,
		UniqueDigests:   uniqueDigests,
		ReplayRate:      replayRate,
		EstimatedFPRate: estimatedFPRate,
	}
}

// NewStableBloomFilter creates a replay cache with the given memory budget
// in bytes and false positive rate. Zero byteSize and a negative errorRate
// select the defaults.
func NewStableBloomFilter(byteSize uint, errorRate float64) *StableBloomFilter {
	if byteSize == 0 {
		byteSize = DefaultMaxSize
	}

	if errorRate < 0 {
		errorRate = DefaultErrorRate
	}

	filter := boom.NewDefaultStableBloomFilter(byteSize*8, errorRate)
	filter.SetHash(xxhash.New64())

	return &StableBloomFilter{
		filter: *filter,
	}
}

var _ anticheat.ReplayCache = (*StableBloomFilter)(nil)

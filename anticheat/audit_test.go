package anticheat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLog(t *testing.T) {
	t.Run("RecentReturnsMostRecent", func(t *testing.T) {
		log := newAuditLog(100)

		for i := 0; i < 10; i++ {
			log.append(SuspicionRecord{
				PlayerID:  fmt.Sprintf("player-%d", i),
				Reason:    ReasonActionSpam,
				Timestamp: time.Now(),
			})
		}

		recent := log.recent(3)
		require.Len(t, recent, 3)
		assert.Equal(t, "player-7", recent[0].PlayerID)
		assert.Equal(t, "player-9", recent[2].PlayerID)
	})

	t.Run("RecentWithOversizedLimit", func(t *testing.T) {
		log := newAuditLog(100)
		log.append(SuspicionRecord{PlayerID: "only", Timestamp: time.Now()})

		assert.Len(t, log.recent(1000), 1)
		assert.Len(t, log.recent(0), 1)
	})

	t.Run("SizeCapDropsOldest", func(t *testing.T) {
		log := newAuditLog(5)

		for i := 0; i < 8; i++ {
			log.append(SuspicionRecord{
				PlayerID:  fmt.Sprintf("player-%d", i),
				Timestamp: time.Now(),
			})
		}

		assert.Equal(t, 5, log.size())

		recent := log.recent(5)
		assert.Equal(t, "player-3", recent[0].PlayerID)
		assert.Equal(t, "player-7", recent[4].PlayerID)
	})

	t.Run("PruneDropsOnlyStaleRecords", func(t *testing.T) {
		log := newAuditLog(100)

		log.append(SuspicionRecord{
			PlayerID:  "stale",
			Timestamp: time.Now().Add(-25 * time.Hour),
		})
		log.append(SuspicionRecord{
			PlayerID:  "fresh",
			Timestamp: time.Now(),
		})

		removed := log.prune(24 * time.Hour)
		assert.Equal(t, 1, removed)
		assert.Equal(t, 1, log.size())
		assert.Equal(t, "fresh", log.recent(1)[0].PlayerID)
	})

	t.Run("PruneOnEmptyLog", func(t *testing.T) {
		log := newAuditLog(100)
		assert.Equal(t, 0, log.prune(time.Hour))
	})
}

func TestGuardAuditPath(t *testing.T) {
	t.Run("ViolationsLandInAuditLog", func(t *testing.T) {
		guard, _, _ := newTestGuard(t, nil)

		guard.OnConnect("bruiser")
		guard.ValidateDamage("bruiser", 15000, "mob-1")

		records := guard.SuspiciousLogs(10)
		require.Len(t, records, 1)
		assert.Equal(t, "bruiser", records[0].PlayerID)
		assert.Equal(t, ReasonDamageHack, records[0].Reason)
		assert.Equal(t, 15000.0, records[0].Data["damage"])
	})

	t.Run("CleanupLogsReportsRemovedCount", func(t *testing.T) {
		guard, _, _ := newTestGuard(t, nil)

		guard.OnConnect("bruiser")
		guard.ValidateDamage("bruiser", 15000, "mob-1")

		assert.Equal(t, 0, guard.CleanupLogs(24*time.Hour))
		assert.Equal(t, 1, guard.CleanupLogs(0))
		assert.Equal(t, 0, guard.AuditLogSize())
	})
}

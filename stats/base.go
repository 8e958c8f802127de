// Package stats contains implementations of event observers which
// export guard activity to monitoring systems: Prometheus and statsd.
package stats

const (
	MetricPlayersTracked      = "players_tracked"
	MetricViolations          = "violations"
	MetricConnectionsRejected = "connections_rejected"
	MetricBans                = "bans"
	MetricWarnings            = "warnings"
	MetricReplays             = "replays"
	MetricAuditLogSize        = "audit_log_size"
	MetricAuditPruned         = "audit_records_pruned"
	MetricSuspicionScore      = "suspicion_score"

	TagReason = "reason"
	TagKind   = "kind"

	TagKindAuto   = "auto"
	TagKindManual = "manual"
)

func banKind(auto bool) string {
	if auto {
		return TagKindAuto
	}

	return TagKindManual
}

package stats

import (
	"fmt"
	"strings"

	statsd "github.com/smira/go-statsd"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/events"
)

type statsdProcessor struct {
	client *statsd.Client
}

func (s statsdProcessor) EventSessionStart(_ anticheat.EventSessionStart) {
	s.client.GaugeDelta(MetricPlayersTracked, 1)
}

func (s statsdProcessor) EventSessionFinish(_ anticheat.EventSessionFinish) {
	s.client.GaugeDelta(MetricPlayersTracked, -1)
}

func (s statsdProcessor) EventConnectionRejected(evt anticheat.EventConnectionRejected) {
	s.client.Incr(MetricConnectionsRejected, 1,
		statsd.StringTag(TagReason, evt.Reason))
}

func (s statsdProcessor) EventViolation(evt anticheat.EventViolation) {
	s.client.Incr(MetricViolations, 1,
		statsd.StringTag(TagReason, evt.Reason))
}

func (s statsdProcessor) EventWarningReached(_ anticheat.EventWarningReached) {
	s.client.Incr(MetricWarnings, 1)
}

func (s statsdProcessor) EventBan(evt anticheat.EventBan) {
	s.client.Incr(MetricBans, 1,
		statsd.StringTag(TagKind, banKind(evt.Auto)))
}

func (s statsdProcessor) EventReplay(_ anticheat.EventReplay) {
	s.client.Incr(MetricReplays, 1)
}

func (s statsdProcessor) EventAuditPruned(evt anticheat.EventAuditPruned) {
	s.client.Incr(MetricAuditPruned, int64(evt.Removed))
	s.client.Gauge(MetricAuditLogSize, int64(evt.Size))
}

func (s statsdProcessor) Shutdown() {}

// StatsdFactory is a factory of observers which send metrics to
// statsd.
type StatsdFactory struct {
	client *statsd.Client
}

// Close stops sending requests to statsd.
func (s StatsdFactory) Close() error {
	return s.client.Close() //nolint: wrapcheck
}

// Make builds a new observer.
func (s StatsdFactory) Make() events.Observer {
	return statsdProcessor{
		client: s.client,
	}
}

// NewStatsd build a new factory of statsd observers.
//
// tagFormat is either 'datadog', 'influxdb' or 'graphite'.
func NewStatsd(address string, log anticheat.Logger,
	metricPrefix, tagFormat string,
) (StatsdFactory, error) {
	options := []statsd.Option{
		statsd.MetricPrefix(metricPrefix),
		statsd.Logger(log),
	}

	switch strings.ToLower(tagFormat) {
	case "datadog":
		options = append(options, statsd.TagStyle(statsd.TagFormatDatadog))
	case "influxdb":
		options = append(options, statsd.TagStyle(statsd.TagFormatInfluxDB))
	case "graphite":
		options = append(options, statsd.TagStyle(statsd.TagFormatGraphite))
	default:
		return StatsdFactory{}, fmt.Errorf("unknown tag format %s", tagFormat)
	}

	return StatsdFactory{
		client: statsd.NewClient(address, options...),
	}, nil
}

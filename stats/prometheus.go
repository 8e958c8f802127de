package stats

import (
	"context"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/events"
)

type prometheusProcessor struct {
	factory *PrometheusFactory
}

func (p prometheusProcessor) EventSessionStart(_ anticheat.EventSessionStart) {
	p.factory.metricPlayersTracked.Inc()
}

func (p prometheusProcessor) EventSessionFinish(_ anticheat.EventSessionFinish) {
	p.factory.metricPlayersTracked.Dec()
}

func (p prometheusProcessor) EventConnectionRejected(evt anticheat.EventConnectionRejected) {
	p.factory.metricConnectionsRejected.
		WithLabelValues(evt.Reason).
		Inc()
}

func (p prometheusProcessor) EventViolation(evt anticheat.EventViolation) {
	p.factory.metricViolations.
		WithLabelValues(evt.Reason).
		Inc()
	p.factory.metricSuspicionScore.Observe(float64(evt.Score))
}

func (p prometheusProcessor) EventWarningReached(_ anticheat.EventWarningReached) {
	p.factory.metricWarnings.Inc()
}

func (p prometheusProcessor) EventBan(evt anticheat.EventBan) {
	p.factory.metricBans.
		WithLabelValues(banKind(evt.Auto)).
		Inc()
}

func (p prometheusProcessor) EventReplay(_ anticheat.EventReplay) {
	p.factory.metricReplays.Inc()
}

func (p prometheusProcessor) EventAuditPruned(evt anticheat.EventAuditPruned) {
	p.factory.metricAuditPruned.Add(float64(evt.Removed))
	p.factory.metricAuditLogSize.Set(float64(evt.Size))
}

func (p prometheusProcessor) Shutdown() {}

// PrometheusFactory is a factory of [events.Observer] which collect
// information in a format suitable for Prometheus.
//
// This factory can also serve on a given listener. In that case it starts HTTP
// server with a single endpoint - a Prometheus-compatible scrape output.
type PrometheusFactory struct {
	httpServer *http.Server

	metricPlayersTracked prometheus.Gauge
	metricAuditLogSize   prometheus.Gauge

	metricViolations          *prometheus.CounterVec
	metricConnectionsRejected *prometheus.CounterVec
	metricBans                *prometheus.CounterVec

	metricWarnings    prometheus.Counter
	metricReplays     prometheus.Counter
	metricAuditPruned prometheus.Counter

	metricSuspicionScore prometheus.Histogram

	metricBuildInfo *prometheus.GaugeVec
}

// Make builds a new observer.
func (p *PrometheusFactory) Make() events.Observer {
	return prometheusProcessor{
		factory: p,
	}
}

// Serve starts an HTTP server on a given listener.
func (p *PrometheusFactory) Serve(listener net.Listener) error {
	return p.httpServer.Serve(listener) //nolint: wrapcheck
}

// Close stops a factory. Please pay attention that underlying listener
// is not closed.
func (p *PrometheusFactory) Close() error {
	return p.httpServer.Shutdown(context.Background()) //nolint: wrapcheck
}

// NewPrometheus builds an events.ObserverFactory which can serve HTTP
// endpoint with Prometheus scrape data.
func NewPrometheus(metricPrefix, httpPath, version string) *PrometheusFactory {
	registry := prometheus.NewPedanticRegistry()
	httpHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	mux := http.NewServeMux()

	mux.Handle(httpPath, httpHandler)

	factory := &PrometheusFactory{
		httpServer: &http.Server{
			Handler: mux,
		},

		metricPlayersTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricPrefix,
			Name:      MetricPlayersTracked,
			Help:      "A number of players with active tracking state.",
		}),
		metricAuditLogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricPrefix,
			Name:      MetricAuditLogSize,
			Help:      "A number of records in the audit log after the last prune.",
		}),

		metricViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricViolations,
			Help:      "A number of recorded cheat violations.",
		}, []string{TagReason}),
		metricConnectionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricConnectionsRejected,
			Help:      "A number of connection attempts rejected at the gate.",
		}, []string{TagReason}),
		metricBans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricBans,
			Help:      "A number of issued bans.",
		}, []string{TagKind}),

		metricWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricWarnings,
			Help:      "A number of players which crossed the warning threshold.",
		}),
		metricReplays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricReplays,
			Help:      "A number of detected transaction replays.",
		}),
		metricAuditPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricAuditPruned,
			Help:      "A number of audit records removed by maintenance.",
		}),

		metricSuspicionScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricPrefix,
			Name:      MetricSuspicionScore,
			Help:      "Suspicion score of a player at the moment of a violation.",
			Buckets:   []float64{5, 10, 25, 50, 75, 100, 150, 200},
		}),

		metricBuildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricPrefix,
			Name:      "build_info",
			Help:      "Build information about the guard.",
		}, []string{"version"}),
	}

	registry.MustRegister(factory.metricPlayersTracked)
	registry.MustRegister(factory.metricAuditLogSize)

	registry.MustRegister(factory.metricViolations)
	registry.MustRegister(factory.metricConnectionsRejected)
	registry.MustRegister(factory.metricBans)

	registry.MustRegister(factory.metricWarnings)
	registry.MustRegister(factory.metricReplays)
	registry.MustRegister(factory.metricAuditPruned)

	registry.MustRegister(factory.metricSuspicionScore)

	registry.MustRegister(factory.metricBuildInfo)
	factory.metricBuildInfo.WithLabelValues(version).Set(1)

	return factory
}

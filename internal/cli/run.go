package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/yunusemregokdag/kadim-savaslar-sub002/anticheat"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/antireplay"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/banlist"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/events"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/gateway"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/internal/config"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/internal/utils"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/logger"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/stats"
)

const (
	defaultMetricPrefix = "anticheat"
	defaultHTTPPath     = "/metrics"
)

type Run struct {
	ConfigPath string `kong:"arg,required,type='existingfile',help='Path to config file.',name='config-path'"`
}

func (r Run) Run(_ *CLI, version string) error {
	conf, err := utils.ReadConfig(r.ConfigPath)
	if err != nil {
		return fmt.Errorf("cannot parse config: %w", err)
	}

	return runGateway(conf, version)
}

func runGateway(conf *config.Config, version string) error { //nolint: funlen, cyclop
	log := logger.NewStderr(conf.Debug.Get(false))
	log.BindStr("version", version).Info("starting gateway")

	observerFactories := []events.ObserverFactory{}

	if conf.Stats.Prometheus.Enabled.Get(false) {
		promFactory := stats.NewPrometheus(
			conf.Stats.Prometheus.MetricPrefix.Get(defaultMetricPrefix),
			conf.Stats.Prometheus.HTTPPath.Get(defaultHTTPPath),
			version)

		promListener, err := utils.NewListener(conf.Stats.Prometheus.BindTo.Get(""))
		if err != nil {
			return fmt.Errorf("cannot build prometheus listener: %w", err)
		}

		go promFactory.Serve(promListener) //nolint: errcheck

		defer promFactory.Close()

		observerFactories = append(observerFactories, promFactory.Make)
	}

	if conf.Stats.StatsD.Enabled.Get(false) {
		statsdFactory, err := stats.NewStatsd(
			conf.Stats.StatsD.Address.Get(""),
			log.Named("statsd"),
			conf.Stats.StatsD.MetricPrefix.Get(defaultMetricPrefix),
			conf.Stats.StatsD.TagFormat.Get(config.TypeStatsdTagFormatDatadog))
		if err != nil {
			return fmt.Errorf("cannot build statsd factory: %w", err)
		}

		defer statsdFactory.Close()

		observerFactories = append(observerFactories, statsdFactory.Make)
	}

	eventStream := events.NewEventStream(observerFactories)
	defer eventStream.Shutdown()

	var replayCache anticheat.ReplayCache

	if conf.Defense.AntiReplay.Enabled.Get(false) {
		replayCache = antireplay.NewStableBloomFilter(
			uint(conf.Defense.AntiReplay.MaxSize.Get(antireplay.DefaultMaxSize)),
			conf.Defense.AntiReplay.ErrorRate.Get(antireplay.DefaultErrorRate))
	}

	guardConfig := anticheat.DefaultConfig()
	guardConfig.MaxMoveSpeed = conf.AntiCheat.MaxMoveSpeed.Get(guardConfig.MaxMoveSpeed)
	guardConfig.MaxDamagePerHit = conf.AntiCheat.MaxDamagePerHit.Get(guardConfig.MaxDamagePerHit)
	guardConfig.MaxActionsPerSecond = int(conf.AntiCheat.MaxActionsPerSecond.Get(
		uint(guardConfig.MaxActionsPerSecond)))
	guardConfig.MaxDamagePerMinute = conf.AntiCheat.MaxDamagePerMinute.Get(guardConfig.MaxDamagePerMinute)
	guardConfig.SuspicionThreshold = int(conf.AntiCheat.SuspicionThreshold.Get(
		uint(guardConfig.SuspicionThreshold)))
	guardConfig.WarningThreshold = int(conf.AntiCheat.WarningThreshold.Get(
		uint(guardConfig.WarningThreshold)))

	connectRate := 0.0
	if conf.RateLimit.Enabled.Get(false) {
		connectRate = float64(conf.RateLimit.PerSecond.Get(0))
	}

	guard, err := anticheat.NewGuard(anticheat.GuardOpts{
		BanRegistry:          banlist.NewRegistry(),
		EventStream:          eventStream,
		Logger:               log,
		ReplayCache:          replayCache,
		Config:               &guardConfig,
		ConnectRatePerSecond: connectRate,
		ConnectBurst:         int(conf.RateLimit.Burst.Get(anticheat.DefaultConnectBurst)),
		DecayInterval:        conf.AntiCheat.DecayInterval.Get(anticheat.DefaultDecayInterval),
		AuditPruneInterval:   conf.Audit.PruneInterval.Get(anticheat.DefaultAuditPruneInterval),
		AuditMaxAge:          conf.Audit.MaxAge.Get(anticheat.DefaultAuditMaxAge),
		AuditMaxEntries:      int(conf.Audit.MaxEntries.Get(anticheat.DefaultAuditMaxEntries)),
	})
	if err != nil {
		return fmt.Errorf("cannot build a guard: %w", err)
	}

	defer guard.Shutdown()

	var firewall *banlist.Firewall

	if conf.Defense.Firewall.Enabled.Get(false) {
		cidrs := make([]string, 0, len(conf.Defense.Firewall.CIDRs))
		for _, v := range conf.Defense.Firewall.CIDRs {
			cidrs = append(cidrs, v.Value)
		}

		firewall, err = banlist.NewFirewall(cidrs)
		if err != nil {
			return fmt.Errorf("cannot build a firewall: %w", err)
		}
	}

	srv, err := gateway.NewServer(gateway.ServerOpts{
		Guard:       guard,
		Backend:     gateway.NopBackend{},
		Logger:      log,
		Firewall:    firewall,
		Concurrency: int(conf.Concurrency.Get(0)),
	})
	if err != nil {
		return fmt.Errorf("cannot build a gateway: %w", err)
	}

	listener, err := utils.NewListener(conf.BindTo.Get(""))
	if err != nil {
		return fmt.Errorf("cannot build a listener: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received")
		srv.Shutdown()
	}()

	log.BindStr("bind_to", conf.BindTo.Get("")).Info("gateway is listening")

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("gateway has failed: %w", err)
	}

	return nil
}

package config

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

type Optional struct {
	Enabled TypeBool `json:"enabled"`
}

type Config struct {
	Debug       TypeBool        `json:"debug"`
	BindTo      TypeHostPort    `json:"bindTo"`
	Concurrency TypeConcurrency `json:"concurrency"`
	AntiCheat   struct {
		MaxMoveSpeed        TypeFloat       `json:"maxMoveSpeed"`
		MaxDamagePerHit     TypeFloat       `json:"maxDamagePerHit"`
		MaxActionsPerSecond TypeConcurrency `json:"maxActionsPerSecond"`
		MaxDamagePerMinute  TypeFloat       `json:"maxDamagePerMinute"`
		SuspicionThreshold  TypeConcurrency `json:"suspicionThreshold"`
		WarningThreshold    TypeConcurrency `json:"warningThreshold"`
		DecayInterval       TypeDuration    `json:"decayInterval"`
	} `json:"antiCheat"`
	Audit struct {
		PruneInterval TypeDuration    `json:"pruneInterval"`
		MaxAge        TypeDuration    `json:"maxAge"`
		MaxEntries    TypeConcurrency `json:"maxEntries"`
	} `json:"audit"`
	Defense struct {
		AntiReplay struct {
			Optional

			MaxSize   TypeBytes     `json:"maxSize"`
			ErrorRate TypeErrorRate `json:"errorRate"`
		} `json:"antiReplay"`
		Firewall struct {
			Optional

			CIDRs []TypeCIDR `json:"cidrs"`
		} `json:"firewall"`
	} `json:"defense"`
	RateLimit struct {
		Optional

		PerSecond TypeRateLimit   `json:"perSecond"`
		Burst     TypeConcurrency `json:"burst"`
	} `json:"rateLimit"`
	Stats struct {
		StatsD struct {
			Optional

			Address      TypeHostPort        `json:"address"`
			MetricPrefix TypeMetricPrefix    `json:"metricPrefix"`
			TagFormat    TypeStatsdTagFormat `json:"tagFormat"`
		} `json:"statsd"`
		Prometheus struct {
			Optional

			BindTo       TypeHostPort     `json:"bindTo"`
			HTTPPath     TypeHTTPPath     `json:"httpPath"`
			MetricPrefix TypeMetricPrefix `json:"metricPrefix"`
		} `json:"prometheus"`
	} `json:"stats"`
}

func (c *Config) Validate() error {
	if c.BindTo.Get("") == "" {
		return fmt.Errorf("incorrect bind-to parameter %s", c.BindTo.String())
	}

	if c.RateLimit.Enabled.Get(false) && c.RateLimit.PerSecond.Value == 0 {
		return fmt.Errorf("rateLimit.perSecond must be > 0 when rate limiting is enabled")
	}

	if c.Defense.Firewall.Enabled.Get(false) && len(c.Defense.Firewall.CIDRs) == 0 {
		return fmt.Errorf("firewall.cidrs are required when firewall is enabled")
	}

	if c.Stats.Prometheus.Enabled.Get(false) {
		if c.Stats.Prometheus.BindTo.Get("") == "" {
			return fmt.Errorf("prometheus.bindTo is required when prometheus is enabled")
		}
	}

	if c.Stats.StatsD.Enabled.Get(false) {
		if c.Stats.StatsD.Address.Get("") == "" {
			return fmt.Errorf("statsd.address is required when statsd is enabled")
		}
	}

	return nil
}

func (c *Config) String() string {
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)

	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(c); err != nil {
		return "{}"
	}

	return buf.String()
}

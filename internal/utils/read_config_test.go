package utils

import (
	"testing"
	"time"

	"github.com/alecthomas/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
debug = true
bindTo = "0.0.0.0:4000"
concurrency = 1024

[antiCheat]
maxMoveSpeed = 75.5
maxActionsPerSecond = 25
decayInterval = "30s"

[audit]
maxEntries = 500
maxAge = "12h"

[defense.antiReplay]
enabled = true
maxSize = "1MiB"
errorRate = 0.001

[defense.firewall]
enabled = true
cidrs = ["10.0.0.0/8", "192.168.1.1"]

[rateLimit]
enabled = true
perSecond = 5
burst = 10

[stats.prometheus]
enabled = true
bindTo = "127.0.0.1:9400"
httpPath = "metrics"
metricPrefix = "anticheat"

[stats.statsd]
enabled = true
address = "127.0.0.1:8125"
metricPrefix = "anticheat"
tagFormat = "datadog"
`

func TestParseConfig(t *testing.T) {
	conf, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.True(t, conf.Debug.Get(false))
	assert.Equal(t, "0.0.0.0:4000", conf.BindTo.Get(""))
	assert.EqualValues(t, 1024, conf.Concurrency.Get(0))

	assert.EqualValues(t, 75.5, conf.AntiCheat.MaxMoveSpeed.Get(0))
	assert.EqualValues(t, 25, conf.AntiCheat.MaxActionsPerSecond.Get(0))
	assert.Equal(t, 30*time.Second, conf.AntiCheat.DecayInterval.Get(0))

	// thresholds not present in the file fall back to defaults
	assert.EqualValues(t, 100, conf.AntiCheat.SuspicionThreshold.Get(100))

	assert.EqualValues(t, 500, conf.Audit.MaxEntries.Get(0))
	assert.Equal(t, 12*time.Hour, conf.Audit.MaxAge.Get(0))

	assert.True(t, conf.Defense.AntiReplay.Enabled.Get(false))
	assert.Equal(t, units.Mebibyte, conf.Defense.AntiReplay.MaxSize.Get(0))
	assert.EqualValues(t, 0.001, conf.Defense.AntiReplay.ErrorRate.Get(0))

	assert.True(t, conf.Defense.Firewall.Enabled.Get(false))
	require.Len(t, conf.Defense.Firewall.CIDRs, 2)
	assert.Equal(t, "10.0.0.0/8", conf.Defense.Firewall.CIDRs[0].Value)

	assert.True(t, conf.RateLimit.Enabled.Get(false))
	assert.EqualValues(t, 5, conf.RateLimit.PerSecond.Get(0))
	assert.EqualValues(t, 10, conf.RateLimit.Burst.Get(0))

	assert.Equal(t, "127.0.0.1:9400", conf.Stats.Prometheus.BindTo.Get(""))
	assert.Equal(t, "/metrics", conf.Stats.Prometheus.HTTPPath.Get(""))
	assert.Equal(t, "datadog", conf.Stats.StatsD.TagFormat.Get(""))
}

func TestParseConfigErrors(t *testing.T) {
	testData := map[string]string{
		"NoBindTo":           `debug = true`,
		"BadBindTo":          `bindTo = "not-a-host-port"`,
		"BadDuration":        "bindTo = \"0.0.0.0:4000\"\n[antiCheat]\ndecayInterval = \"sixty\"",
		"BadCIDR":            "bindTo = \"0.0.0.0:4000\"\n[defense.firewall]\nenabled = true\ncidrs = [\"garbage\"]",
		"RateLimitNoRate":    "bindTo = \"0.0.0.0:4000\"\n[rateLimit]\nenabled = true",
		"PrometheusNoBindTo": "bindTo = \"0.0.0.0:4000\"\n[stats.prometheus]\nenabled = true",
		"BadTagFormat":       "bindTo = \"0.0.0.0:4000\"\n[stats.statsd]\nenabled = true\naddress = \"127.0.0.1:8125\"\ntagFormat = \"unknown\"",
		"NotTOML":            `{{{`,
	}

	for name, raw := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestParseConfigEmptySectionsUseDefaults(t *testing.T) {
	conf, err := ParseConfig([]byte(`bindTo = "127.0.0.1:4000"`))
	require.NoError(t, err)

	assert.False(t, conf.Debug.Get(false))
	assert.False(t, conf.RateLimit.Enabled.Get(false))
	assert.False(t, conf.Stats.Prometheus.Enabled.Get(false))
	assert.Equal(t, time.Minute, conf.AntiCheat.DecayInterval.Get(time.Minute))
}

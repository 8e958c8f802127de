package cli

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/yunusemregokdag/kadim-savaslar-sub002/internal/utils"
)

// healthCheckTimeout bounds the probe. Five seconds is enough to tell a
// stuck gateway from a slow one without making docker flag the
// container unhealthy on a random delay.
const healthCheckTimeout = 5 * time.Second

// Health probes a running gateway. Meant for Dockerfile HEALTHCHECK and
// docker-compose healthcheck stanzas.
//
// If the Prometheus endpoint is enabled in the config, it is probed
// with an HTTP GET. Otherwise the check falls back to a TCP connect to
// the gateway port.
type Health struct {
	ConfigPath string `kong:"arg,required,type='existingfile',help='Path to config file.',name='config-path'"`
}

func (h Health) Run(_ *CLI, _ string) error {
	conf, err := utils.ReadConfig(h.ConfigPath)
	if err != nil {
		return fmt.Errorf("cannot parse config: %w", err)
	}

	if conf.Stats.Prometheus.Enabled.Get(false) {
		bindTo := conf.Stats.Prometheus.BindTo.Get("")
		httpPath := conf.Stats.Prometheus.HTTPPath.Get(defaultHTTPPath)

		// the probe always talks to localhost, whatever the bind address
		_, port, err := net.SplitHostPort(bindTo)
		if err != nil {
			return fmt.Errorf("incorrect prometheus bind address: %w", err)
		}

		return checkHTTP(fmt.Sprintf("http://127.0.0.1:%s%s", port, httpPath))
	}

	bindTo := conf.BindTo.Get("")
	if bindTo == "" {
		return fmt.Errorf("prometheus not enabled and no bind address configured")
	}

	return checkTCP(bindTo)
}

func checkHTTP(url string) error {
	client := &http.Client{
		Timeout: healthCheckTimeout,
	}

	resp, err := client.Get(url) //nolint: noctx
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body) //nolint: errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: status %d", resp.StatusCode)
	}

	return nil
}

func checkTCP(addr string) error {
	conn, err := net.DialTimeout("tcp", addr, healthCheckTimeout)
	if err != nil {
		return fmt.Errorf("health check TCP connect failed: %w", err)
	}

	conn.Close()

	return nil
}

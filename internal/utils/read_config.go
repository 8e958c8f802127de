package utils

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml"
	"github.com/yunusemregokdag/kadim-savaslar-sub002/internal/config"
)

// ReadConfig reads and validates a TOML config file. The TOML tree is
// bridged through JSON so the config package keeps a single set of
// UnmarshalJSON implementations for its typed wrappers.
func ReadConfig(path string) (*config.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	return ParseConfig(raw)
}

// ParseConfig parses raw TOML bytes into a validated config.
func ParseConfig(raw []byte) (*config.Config, error) {
	tree, err := toml.LoadBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("cannot parse toml: %w", err)
	}

	bridged, err := json.Marshal(tree.ToMap())
	if err != nil {
		return nil, fmt.Errorf("cannot bridge toml to json: %w", err)
	}

	conf := &config.Config{}

	if err := json.Unmarshal(bridged, conf); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return conf, nil
}

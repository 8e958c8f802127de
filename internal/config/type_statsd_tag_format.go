package config

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	TypeStatsdTagFormatDatadog  = "datadog"
	TypeStatsdTagFormatInfluxdb = "influxdb"
	TypeStatsdTagFormatGraphite = "graphite"
)

type TypeStatsdTagFormat struct {
	Value string
}

func (t *TypeStatsdTagFormat) Set(value string) error {
	lowered := strings.ToLower(value)

	switch lowered {
	case TypeStatsdTagFormatDatadog, TypeStatsdTagFormatInfluxdb, TypeStatsdTagFormatGraphite:
		t.Value = lowered

		return nil
	}

	return fmt.Errorf("unknown statsd tag format (%s)", value)
}

func (t TypeStatsdTagFormat) Get(defaultValue string) string {
	if t.Value == "" {
		return defaultValue
	}

	return t.Value
}

func (t *TypeStatsdTagFormat) UnmarshalJSON(data []byte) error {
	unquoted, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("incorrect tag format string (%s): %w", string(data), err)
	}

	return t.Set(unquoted)
}

func (t TypeStatsdTagFormat) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.Value)), nil
}

func (t TypeStatsdTagFormat) String() string {
	return t.Value
}

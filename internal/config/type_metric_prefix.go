package config

import (
	"fmt"
	"regexp"
	"strconv"
)

var typeMetricPrefixRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

type TypeMetricPrefix struct {
	Value string
}

func (t *TypeMetricPrefix) Set(value string) error {
	if !typeMetricPrefixRegexp.MatchString(value) {
		return fmt.Errorf("incorrect metric prefix (%s)", value)
	}

	t.Value = value

	return nil
}

func (t TypeMetricPrefix) Get(defaultValue string) string {
	if t.Value == "" {
		return defaultValue
	}

	return t.Value
}

func (t *TypeMetricPrefix) UnmarshalJSON(data []byte) error {
	unquoted, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("incorrect metric prefix string (%s): %w", string(data), err)
	}

	return t.Set(unquoted)
}

func (t TypeMetricPrefix) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.Value)), nil
}

func (t TypeMetricPrefix) String() string {
	return t.Value
}

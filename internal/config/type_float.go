package config

import (
	"fmt"
	"strconv"
)

// TypeFloat is a non-negative float used by validator thresholds.
type TypeFloat struct {
	Value float64
}

func (t *TypeFloat) Set(value string) error {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("value is not float (%s): %w", value, err)
	}

	if parsed < 0 {
		return fmt.Errorf("value has to be non-negative (%s)", value)
	}

	t.Value = parsed

	return nil
}

func (t TypeFloat) Get(defaultValue float64) float64 {
	if t.Value == 0 {
		return defaultValue
	}

	return t.Value
}

func (t *TypeFloat) UnmarshalJSON(data []byte) error {
	return t.Set(string(data))
}

func (t TypeFloat) MarshalJSON() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t TypeFloat) String() string {
	return strconv.FormatFloat(t.Value, 'f', -1, 64)
}

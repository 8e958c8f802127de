package config

import (
	"fmt"
	"strconv"
	"time"
)

type TypeDuration struct {
	Value time.Duration
}

func (t *TypeDuration) Set(value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("value is not duration (%s): %w", value, err)
	}

	if parsed < 0 {
		return fmt.Errorf("duration has to be positive (%s)", value)
	}

	t.Value = parsed

	return nil
}

func (t TypeDuration) Get(defaultValue time.Duration) time.Duration {
	if t.Value == 0 {
		return defaultValue
	}

	return t.Value
}

func (t *TypeDuration) UnmarshalJSON(data []byte) error {
	unquoted, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("incorrect duration string (%s): %w", string(data), err)
	}

	return t.Set(unquoted)
}

func (t TypeDuration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t TypeDuration) String() string {
	return t.Value.String()
}

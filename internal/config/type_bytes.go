package config

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/units"
)

type TypeBytes struct {
	Value units.Base2Bytes
}

func (t *TypeBytes) Set(value string) error {
	parsed, err := units.ParseBase2Bytes(value)
	if err != nil {
		return fmt.Errorf("value is not a byte size (%s): %w", value, err)
	}

	if parsed < 0 {
		return fmt.Errorf("byte size has to be positive (%s)", value)
	}

	t.Value = parsed

	return nil
}

func (t TypeBytes) Get(defaultValue units.Base2Bytes) units.Base2Bytes {
	if t.Value == 0 {
		return defaultValue
	}

	return t.Value
}

func (t *TypeBytes) UnmarshalJSON(data []byte) error {
	unquoted, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("incorrect byte size string (%s): %w", string(data), err)
	}

	return t.Set(unquoted)
}

func (t TypeBytes) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t TypeBytes) String() string {
	return t.Value.String()
}

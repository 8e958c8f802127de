package config

import (
	"fmt"
	"strconv"
	"strings"
)

type TypeHTTPPath struct {
	Value string
}

func (t *TypeHTTPPath) Set(value string) error {
	if value == "" {
		return fmt.Errorf("http path cannot be empty")
	}

	t.Value = "/" + strings.Trim(value, "/")

	return nil
}

func (t TypeHTTPPath) Get(defaultValue string) string {
	if t.Value == "" {
		return defaultValue
	}

	return t.Value
}

func (t *TypeHTTPPath) UnmarshalJSON(data []byte) error {
	unquoted, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("incorrect http path string (%s): %w", string(data), err)
	}

	return t.Set(unquoted)
}

func (t TypeHTTPPath) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.Value)), nil
}

func (t TypeHTTPPath) String() string {
	return t.Value
}

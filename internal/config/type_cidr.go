package config

import (
	"fmt"
	"net"
	"strconv"
)

// TypeCIDR is a network in CIDR notation. A bare IP is accepted and
// treated as a host route.
type TypeCIDR struct {
	Value string
}

func (t *TypeCIDR) Set(value string) error {
	if _, _, err := net.ParseCIDR(value); err != nil {
		if net.ParseIP(value) == nil {
			return fmt.Errorf("value is not a CIDR or IP (%s)", value)
		}
	}

	t.Value = value

	return nil
}

func (t *TypeCIDR) UnmarshalJSON(data []byte) error {
	unquoted, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("incorrect cidr string (%s): %w", string(data), err)
	}

	return t.Set(unquoted)
}

func (t TypeCIDR) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.Value)), nil
}

func (t TypeCIDR) String() string {
	return t.Value
}

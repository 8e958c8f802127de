package utils

import (
	"fmt"
	"net"
)

// NewListener builds a TCP listener on a given address.
func NewListener(bindTo string) (net.Listener, error) {
	listener, err := net.Listen("tcp", bindTo)
	if err != nil {
		return nil, fmt.Errorf("cannot build a base listener: %w", err)
	}

	return listener, nil
}

package banlist

import (
	"fmt"
	"net"
	"sync"

	"github.com/yl2chen/cidranger"
)

// Firewall is a CIDR-based network blocklist consulted by the session layer
// at accept time, before any player id is known. Operators use it to cut
// off VPN exits and bot farms wholesale; it is independent of the per-player
// ban registry.
type Firewall struct {
	mu     sync.RWMutex
	ranger cidranger.Ranger
}

// NewFirewall builds a firewall from a list of CIDR strings. Bare IPs are
// accepted too and treated as host routes.
func NewFirewall(cidrs []string) (*Firewall, error) {
	firewall := &Firewall{
		ranger: cidranger.NewPCTrieRanger(),
	}

	for _, cidr := range cidrs {
		if err := firewall.Add(cidr); err != nil {
			return nil, err
		}
	}

	return firewall, nil
}

// Add inserts a CIDR (or a bare IP) into the blocklist.
func (f *Firewall) Add(cidr string) error {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		ip := net.ParseIP(cidr)
		if ip == nil {
			return fmt.Errorf("incorrect subnet %s: %w", cidr, err)
		}

		prefix := "/32"
		if ip.To4() == nil {
			prefix = "/128"
		}

		if _, network, err = net.ParseCIDR(cidr + prefix); err != nil {
			return fmt.Errorf("incorrect subnet %s: %w", cidr, err)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ranger.Insert(cidranger.NewBasicRangerEntry(*network)); err != nil {
		return fmt.Errorf("cannot insert %s: %w", cidr, err)
	}

	return nil
}

// Contains checks if a given IP is covered by any blocked range.
func (f *Firewall) Contains(ip net.IP) bool {
	if ip == nil {
		return false
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	contains, err := f.ranger.Contains(ip)

	return err == nil && contains
}

// Size returns the number of blocked ranges.
func (f *Firewall) Size() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.ranger.Len()
}

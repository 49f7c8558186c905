package alpinelib

import (
	"errors"
	"fmt"
	"net"
)

// resolveEndpoint parses a host:port endpoint into an IPv4 UDP address. The
// protocol addresses devices over IPv4 only, so resolution is pinned to the
// udp4 network.
func resolveEndpoint(s string) (*net.UDPAddr, error) {
	if s == "" {
		return nil, errors.New("alpinelib: empty endpoint")
	}
	addr, err := net.ResolveUDPAddr("udp4", s)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", s, err)
	}
	return addr, nil
}

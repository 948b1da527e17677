// Package privacy masks client addresses before they reach request logs.
package privacy

import (
	"net"
	"net/netip"
)

// AnonymizeAddr reduces a "host:port" or bare IP to its network prefix:
// /24 for IPv4 and /48 for IPv6. It returns "unknown" for an empty input
// and "invalid" when no IP can be parsed.
func AnonymizeAddr(addr string) string {
	if addr == "" {
		return "unknown"
	}
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return "invalid"
	}
	ip = ip.Unmap()

	bits := 48
	if ip.Is4() {
		bits = 24
	}
	prefix, err := ip.WithZone("").Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return prefix.String()
}

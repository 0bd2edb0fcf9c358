// Package machine provides local host identity helpers for outbound
// deliveries.
package machine

import (
	"net"
	"os"
	"strings"
)

// Hostname returns the raw OS hostname, or "unknown" when it cannot be read.
func Hostname() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "unknown"
	}

	return hostname
}

// LocalHostname returns the hostname in mDNS form: a ".local" suffix is
// appended unless the name already carries one or is an IPv4 literal.
func LocalHostname() string {
	hostname := Hostname()

	if strings.HasSuffix(hostname, ".local") || isIPv4(hostname) {
		return hostname
	}

	return hostname + ".local"
}

func isIPv4(s string) bool {
	ip := net.ParseIP(s)

	return ip != nil && ip.To4() != nil
}

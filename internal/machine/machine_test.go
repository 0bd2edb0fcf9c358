package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIPv4(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"192.168.1.10", true},
		{"10.0.0.1", true},
		{"::1", false},
		{"scanner-01", false},
		{"", false},
		{"256.1.1.1", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, isIPv4(tc.input))
		})
	}
}

func TestLocalHostname(t *testing.T) {
	hostname := LocalHostname()

	assert.NotEmpty(t, hostname)

	// Either already an IPv4 literal or carrying the .local suffix.
	if !isIPv4(hostname) {
		assert.Contains(t, hostname, ".local")
	}
}

package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchSettings(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected bool
	}{
		{"token update", "piscanner://settings?TOKEN=xyz", true},
		{"multiple params", "piscanner://settings?A=1&B=2", true},
		{"no params", "piscanner://settings", true},
		{"wrong scheme", "https://settings?TOKEN=xyz", false},
		{"wrong namespace", "piscanner://config?TOKEN=xyz", false},
		{"order barcode", "42Xabc123", false},
		{"garbage", "!!!invalid!!!", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, matchSettings(tc.value))
		})
	}
}

func TestMatchOrder(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		expected bool
	}{
		{"numeric prefix before letter", "42Xabc123", true},
		{"plain number", "12345", true},
		{"single digit", "4", true},
		{"letter first", "X42", false},
		{"garbage", "!!!invalid!!!", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, matchOrder(tc.value))
		})
	}
}

func TestParseSettingsBarcode(t *testing.T) {
	params, ok := parseSettingsBarcode("piscanner://settings?TOKEN=xyz&STEP=2")
	require.True(t, ok)
	assert.Equal(t, "xyz", params.Get("TOKEN"))
	assert.Equal(t, "2", params.Get("STEP"))

	_, ok = parseSettingsBarcode("not a uri at all :::")
	assert.False(t, ok)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable("ConnectionError"))
	assert.True(t, IsRetryable("InvalidResponse"))
	assert.True(t, IsRetryable("HTTPError503"))
	assert.False(t, IsRetryable("Accepted"))
	assert.False(t, IsRetryable("InvalidBarcode"))
	assert.False(t, IsRetryable("SettingsChanged"))
}

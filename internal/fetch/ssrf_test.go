package fetch

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlockedIP(t *testing.T) {
	cases := []struct {
		ip      string
		blocked bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"192.168.1.1", true},
		{"169.254.169.254", true}, // cloud metadata endpoint
		{"::1", true},
		{"fe80::1", true},
		{"8.8.8.8", false},
		{"93.184.216.34", false},
	}
	for _, tc := range cases {
		ip := net.ParseIP(tc.ip)
		assert.Equal(t, tc.blocked, isBlockedIP(ip), tc.ip)
	}
}

func TestCharsetFromContentType(t *testing.T) {
	assert.Equal(t, "iso-8859-1", charsetFromContentType("text/html; charset=iso-8859-1"))
	assert.Equal(t, "utf-8", charsetFromContentType(`text/html; charset="utf-8"`))
	assert.Equal(t, "", charsetFromContentType("text/html"))
}

func TestDecodeToUTF8Passthrough(t *testing.T) {
	s, err := decodeToUTF8([]byte("hello"), "text/plain")
	assert.NoError(t, err)
	assert.Equal(t, "hello", s)
}

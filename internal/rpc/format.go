package rpc

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Uint64ToHex encodes n as a 0x-prefixed lowercase hex quantity with no
// leading zeros, the form eth_getBlockByNumber expects.
func Uint64ToHex(n uint64) string {
	return fmt.Sprintf("0x%x", n)
}

// ParseHexUint64 decodes a hex quantity (with or without 0x prefix) into
// uint64. An empty string decodes to zero.
func ParseHexUint64(hex string) (uint64, error) {
	hex = strings.TrimPrefix(strings.ToLower(hex), "0x")
	if hex == "" {
		return 0, nil
	}

	n, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hex %q", hex)
	}
	return n, nil
}

// ValidBlockHash reports whether s is a 66-character 0x-prefixed block hash
// (32 bytes of hex). Case is not significant.
func ValidBlockHash(s string) bool {
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for i := 2; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// HostLabel trims an endpoint URL to its host for display and log fields.
func HostLabel(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}

// Package notation parses compact block-count strings such as "500000",
// "100K", "5M", and "0.5M" into exact block numbers.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNotation reports a block-count string that cannot be parsed.
var ErrInvalidNotation = errors.New("invalid block notation")

const (
	thousand = 1_000
	million  = 1_000_000

	// maxFractionDigits bounds M fractions at one whole block (10^-6 M).
	maxFractionDigits = 6
)

// Parse converts a block-count notation into an exact block number.
//
// Accepted forms:
//   - plain unsigned integer: "500000"
//   - K/k suffix, thousands: "100K" -> 100000. A fractional remainder is
//     truncated to a whole integer before scaling, so "1.5K" -> 1000 and
//     "0.5K" -> 0; the K branch carries no fractional scaling.
//   - M/m suffix, millions: "5M" -> 5000000. A fractional remainder scales
//     as a true decimal fraction, so "0.5M" -> 500000 and "0.25M" -> 250000.
//
// All arithmetic is exact integer scaling; there is no rounding.
func Parse(input string) (uint64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidNotation)
	}

	switch {
	case strings.HasSuffix(s, "K"), strings.HasSuffix(s, "k"):
		return parseThousands(s[:len(s)-1], input)
	case strings.HasSuffix(s, "M"), strings.HasSuffix(s, "m"):
		return parseMillions(s[:len(s)-1], input)
	default:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a block count", ErrInvalidNotation, input)
		}
		return n, nil
	}
}

// parseThousands scales a K-suffixed remainder by 1000, truncating any
// fraction to a whole integer first.
func parseThousands(s, input string) (uint64, error) {
	whole := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole = s[:i]
		if whole == "" {
			whole = "0"
		}
		if !isDigits(s[i+1:]) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, input)
		}
	}

	n, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, input)
	}
	return n * thousand, nil
}

// parseMillions scales an M-suffixed remainder by 1,000,000 with exact
// decimal-fraction arithmetic: "3.2M" = 3*10^6 + 2*10^5. Fractions finer
// than a single block are rejected.
func parseMillions(s, input string) (uint64, error) {
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if whole == "" {
			whole = "0"
		}
	}

	n, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, input)
	}
	result := n * million

	if frac != "" {
		if len(frac) > maxFractionDigits || !isDigits(frac) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, input)
		}
		f, err := strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNotation, input)
		}
		scale := uint64(1)
		for i := len(frac); i < maxFractionDigits; i++ {
			scale *= 10
		}
		result += f * scale
	}

	return result, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

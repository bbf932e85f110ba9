package format

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	Green  = color.New(color.FgGreen).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Bold   = color.New(color.Bold).SprintFunc()
	Dim    = color.New(color.Faint).SprintFunc()
)

// Latency renders a round-trip time with thresholds tuned for public RPC
// endpoints.
func Latency(d time.Duration) string {
	if d == 0 {
		return Dim("—")
	}
	ms := d.Milliseconds()
	switch {
	case ms < 100:
		return Green(fmt.Sprintf("%dms", ms))
	case ms < 300:
		return Yellow(fmt.Sprintf("%dms", ms))
	default:
		return Red(fmt.Sprintf("%dms", ms))
	}
}

// Success renders "n/m" samples colored by outcome.
func Success(success, total int) string {
	str := fmt.Sprintf("%d/%d", success, total)
	switch {
	case total > 0 && success == total:
		return Green(str)
	case success > 0:
		return Yellow(str)
	default:
		return Red(str)
	}
}

// Number renders n with comma separators for readability.
func Number(n uint64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	// Insert commas every 3 digits from right to left
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// Duration renders d rounded to whole seconds. Sync runs last minutes or
// hours, so sub-second precision is noise.
func Duration(d time.Duration) string {
	return d.Round(time.Second).String()
}

// TruncateHash shortens a block hash for table display.
func TruncateHash(hash string) string {
	if len(hash) <= 14 {
		return hash
	}
	return hash[:6] + "..." + hash[len(hash)-4:]
}

// DisableColors turns off color output (for non-TTY or JSON mode).
func DisableColors() {
	color.NoColor = true
}

package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousand separators into a decimal string.
// A leading '-' is preserved.
func FormatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	first := n % 3
	if first == 0 {
		first = 3
	}
	builder.WriteString(s[:first])
	for i := first; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}

// FormatInt groups the digits of n with thousand separators.
func FormatInt(n int) string {
	return FormatNumberString(fmt.Sprintf("%d", n))
}

// DigitCount returns the number of decimal digits of a canonical decimal
// string, ignoring its sign.
func DigitCount(s string) int {
	if strings.HasPrefix(s, "-") {
		return len(s) - 1
	}
	return len(s)
}

// TruncateDigits shortens a decimal string longer than limit digits to its
// first and last edge digits joined by "...". The sign is kept.
func TruncateDigits(s string, limit, edge int) (string, bool) {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= limit || 2*edge >= len(s) {
		return sign + s, false
	}
	return sign + s[:edge] + "..." + s[len(s)-edge:], true
}

// FormatBytes renders a byte count with binary units.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

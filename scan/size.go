package scan

import (
	"strconv"
	"strings"
)

// ParseSize converts a human-readable size string to bytes. Suffixes K, M,
// G and T are powers of 1024 and case-insensitive; a fractional prefix is
// allowed ("1.5G"). Unsuffixed input is parsed as a plain number. Anything
// unparseable yields 0 rather than an error, so a bad threshold degrades to
// "no minimum" instead of aborting the query.
func ParseSize(s string) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0
	}

	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'K':
		multiplier = 1 << 10
		s = s[:len(s)-1]
	case 'M':
		multiplier = 1 << 20
		s = s[:len(s)-1]
	case 'G':
		multiplier = 1 << 30
		s = s[:len(s)-1]
	case 'T':
		multiplier = 1 << 40
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || value < 0 {
		return 0
	}
	return int64(value * float64(multiplier))
}

package configstring

import (
	"fmt"
	"strconv"
	"strings"
)

// bitCharValue decodes a single character in 0-9A-V into its 5-bit value.
func bitCharValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'V':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// takeLeadingInt reads one or more leading decimal digits.
func takeLeadingInt(s string) (int, string, error) {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return 0, s, fmt.Errorf("expected a decimal integer in %q", s)
	}
	v, err := strconv.Atoi(s[:n])
	if err != nil {
		return 0, s, err
	}
	return v, s[n:], nil
}

// takeLeadingIntOptional is takeLeadingInt but reports whether a digit was
// present instead of erroring when it wasn't.
func takeLeadingIntOptional(s string) (int, string, bool) {
	v, rest, err := takeLeadingInt(s)
	if err != nil {
		return 0, s, false
	}
	return v, rest, true
}

// takeBitIndex parses a status_bit_index: "[n]" (decimal) or a single
// 0-9A-V character.
func takeBitIndex(s string) (int, string, error) {
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return 0, s, fmt.Errorf("unterminated bracketed index in %q", s)
		}
		inner := s[1:end]
		v, err := strconv.Atoi(inner)
		if err != nil {
			return 0, s, fmt.Errorf("bracketed index %q: %w", inner, err)
		}
		return v, s[end+1:], nil
	}
	if s == "" {
		return 0, s, fmt.Errorf("expected a bit index, got empty string")
	}
	v, ok := bitCharValue(s[0])
	if !ok {
		return 0, s, fmt.Errorf("invalid bit index character %q", s[0])
	}
	return v, s[1:], nil
}

// takeBitRange parses a status_bit_range: "[n]" or "[lo:hi]" (inclusive,
// normalized to half-open), two single 0-9A-V characters (lo, hi
// inclusive), or one such character (a single-bit range).
func takeBitRange(s string) (lo, hi int, rest string, err error) {
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return 0, 0, s, fmt.Errorf("unterminated bracketed range in %q", s)
		}
		inner := s[1:end]
		rest = s[end+1:]
		if colon := strings.IndexByte(inner, ':'); colon >= 0 {
			lo, err = strconv.Atoi(inner[:colon])
			if err != nil {
				return 0, 0, s, fmt.Errorf("range low %q: %w", inner[:colon], err)
			}
			var hiIncl int
			hiIncl, err = strconv.Atoi(inner[colon+1:])
			if err != nil {
				return 0, 0, s, fmt.Errorf("range high %q: %w", inner[colon+1:], err)
			}
			return lo, hiIncl + 1, rest, nil
		}
		n, err := strconv.Atoi(inner)
		if err != nil {
			return 0, 0, s, fmt.Errorf("bracketed range %q: %w", inner, err)
		}
		return n, n + 1, rest, nil
	}

	if len(s) >= 2 {
		if v1, ok1 := bitCharValue(s[0]); ok1 {
			if v2, ok2 := bitCharValue(s[1]); ok2 {
				return v1, v2 + 1, s[2:], nil
			}
		}
	}
	if len(s) >= 1 {
		if v, ok := bitCharValue(s[0]); ok {
			return v, v + 1, s[1:], nil
		}
	}
	return 0, 0, s, fmt.Errorf("invalid bit range in %q", s)
}

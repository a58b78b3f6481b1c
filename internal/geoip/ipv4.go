package geoip

import "strings"

// ValidIPv4 reports whether s is a dotted-quad IPv4 address: exactly four
// dot-separated decimal groups, each 1-3 digits with a value in [0,255],
// with no sign, whitespace or surrounding characters.
func ValidIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		if len(part) == 0 || len(part) > 3 {
			return false
		}
		n := 0
		for i := 0; i < len(part); i++ {
			ch := part[i]
			if ch < '0' || ch > '9' {
				return false
			}
			n = n*10 + int(ch-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}

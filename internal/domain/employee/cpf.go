package employee

import (
	"regexp"
	"strings"
)

var formattedCPF = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)

// NormalizeCPF formats an 11 digit CPF as ###.###.###-##. Anything else is returned trimmed and unchanged.
func NormalizeCPF(raw string) string {
	raw = strings.TrimSpace(raw)
	digits := make([]byte, 0, 11)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		case c == '.' || c == '-' || c == ' ':
		default:
			return raw
		}
	}
	if len(digits) != 11 {
		return raw
	}
	d := string(digits)
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// ValidCPFFormat reports whether s is a canonical CPF. Check digits are not verified.
func ValidCPFFormat(s string) bool {
	return formattedCPF.MatchString(s)
}

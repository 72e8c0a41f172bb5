package policy

import (
	"strconv"
	"strings"
)

// FormatMoney renders an amount as "$1,234.56".
func FormatMoney(amount float64) string {
	return "$" + groupThousands(strconv.FormatFloat(amount, 'f', 2, 64))
}

// FormatSignedMoney renders an amount with an explicit sign: "$+12.00",
// "$-3.50". Zero renders as "$+0.00" to match the difference column.
func FormatSignedMoney(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	sign := s[:1]
	return "$" + sign + groupThousands(s[1:])
}

// FormatCount renders an integer count for display.
func FormatCount(n int) string {
	return strconv.Itoa(n)
}

// ParseAmount attempts to parse a display string as a number after
// stripping currency symbols, thousands separators, and sign characters.
// Returns the parsed value (negative values keep their sign) and whether
// the string was numeric at all. Empty strings are not numeric.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	negative := false
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '$', ',', '+':
			// stripped
		case '-':
			negative = true
		default:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// groupThousands inserts comma separators into the integer part of a
// plain decimal string ("1234.56" → "1,234.56").
func groupThousands(s string) string {
	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return intPart + frac
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + frac
}

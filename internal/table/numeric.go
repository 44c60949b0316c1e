package table

import (
	"strconv"
	"strings"
)

// ParseFloat parses a non-missing cell as a plain decimal number.
func ParseFloat(s string) (float64, bool) {
	if IsMissing(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsNumeric reports whether every non-missing cell parses as a number.
// An all-missing column counts as numeric.
func IsNumeric(vals []string) bool {
	for _, v := range vals {
		if IsMissing(v) {
			continue
		}
		if _, ok := ParseFloat(v); !ok {
			return false
		}
	}
	return true
}

// FormatFloat renders a computed value with the shortest exact representation.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

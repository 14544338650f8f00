package report

import (
	"fmt"
	"strconv"
	"strings"
)

// CoerceInt converts a decoded JSON value into an int, truncating toward zero.
// Numeric-like strings ("42", "87.5") are accepted.
func CoerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
	}
	return 0, false
}

// CoerceString converts a decoded JSON value into a string.
func CoerceString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64, bool:
		return fmt.Sprint(s), true
	}
	return "", false
}

// CoerceStringList converts a decoded JSON value into a list of strings.
// A bare scalar becomes a single-item list; non-string elements are dropped.
func CoerceStringList(v any) ([]string, bool) {
	switch l := v.(type) {
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			if s, ok := CoerceString(item); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, true
	case string:
		if strings.TrimSpace(l) == "" {
			return nil, false
		}
		return []string{l}, true
	}
	return nil, false
}

// Package formatter turns stored values into the display strings used in API responses.
package formatter

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	DateLayout     = "Jan 2, 2006"
	DateTimeLayout = "Jan 2, 2006 3:04 PM"

	UnknownStudent  = "Unknown Student"
	UnspecifiedItem = "Equipment request (details not specified)"
	SystemReporter  = "System"
)

// Date formats t as "Mar 5, 2025". Nil and zero times render as "".
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// DateTime formats t as "Mar 5, 2025 2:30 PM".
func DateTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}

// OrDefault returns the trimmed value or fallback when it is nil or blank.
func OrDefault(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	if trimmed := strings.TrimSpace(*value); trimmed != "" {
		return trimmed
	}
	return fallback
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// DesiredCulturalGroup extracts the group name from "<category>: <group>". Values without a colon are returned as is.
func DesiredCulturalGroup(performanceType string) string {
	_, group, found := strings.Cut(performanceType, ":")
	if !found {
		return performanceType
	}
	return strings.TrimSpace(group)
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FullName joins name parts, skipping empty ones.
func FullName(first string, middle *string, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, OrDefault(middle, ""), last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

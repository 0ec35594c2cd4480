// Package dateutil resolves the generation-date stamp written into the
// vault README.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxFormatLength limits format string length.
const MaxFormatLength = 50

// DefaultFormat is used when "auto" is given without a format.
const DefaultFormat = "YYYY-MM-DD"

// dateTokens maps user-friendly tokens to Go time format components,
// longest first for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"D", "2"},
}

// ParseFormat converts a user-friendly format string (YYYY, MM, DD…) to
// Go's time layout. Non-token characters pass through as literals.
func ParseFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxFormatLength)
	}

	var out strings.Builder
	i := 0
	for i < len(format) {
		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				out.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte(format[i])
			i++
		}
	}
	return out.String(), nil
}

// Resolve handles "auto" and "auto:FORMAT" date values; anything else
// passes through unchanged. The time parameter lets tests pin the clock.
func Resolve(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}
	format := DefaultFormat
	if lower != "auto" {
		rest, ok := strings.CutPrefix(value, value[:5])
		if !strings.HasPrefix(lower, "auto:") || !ok || rest == "" {
			return "", fmt.Errorf("%w: %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
		}
		format = rest
	}
	goFmt, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(goFmt), nil
}

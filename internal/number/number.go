// Package number renders decoded numeric values in the fixed textual form
// used for matching and highlighting.
package number

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Format returns the canonical text of a numeric value and whether the value
// is an integer. ok is false for non-numeric input.
func Format(value any) (text string, integer bool, ok bool) {
	switch current := value.(type) {
	case int:
		return strconv.FormatInt(int64(current), 10), true, true
	case int8:
		return strconv.FormatInt(int64(current), 10), true, true
	case int16:
		return strconv.FormatInt(int64(current), 10), true, true
	case int32:
		return strconv.FormatInt(int64(current), 10), true, true
	case int64:
		return strconv.FormatInt(current, 10), true, true
	case uint:
		return strconv.FormatUint(uint64(current), 10), true, true
	case uint8:
		return strconv.FormatUint(uint64(current), 10), true, true
	case uint16:
		return strconv.FormatUint(uint64(current), 10), true, true
	case uint32:
		return strconv.FormatUint(uint64(current), 10), true, true
	case uint64:
		return strconv.FormatUint(current, 10), true, true
	case float32:
		return FormatFloat(float64(current)), false, true
	case float64:
		return FormatFloat(current), false, true
	case json.Number:
		return formatJSONNumber(current)
	default:
		return "", false, false
	}
}

// FormatFloat renders f in its shortest round-trip form, keeping a fractional
// part on integral values so 2.0 does not collide with the integer 2.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	text := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}
	return text
}

func formatJSONNumber(n json.Number) (string, bool, bool) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return strconv.FormatInt(i, 10), true, true
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return strconv.FormatUint(u, 10), true, true
	}
	if isIntegerLiteral(n.String()) {
		// Wider than 64 bits: the literal is already canonical.
		return n.String(), true, true
	}

	f, err := n.Float64()
	if err != nil {
		// Out of range for float64: keep the literal, it is still deterministic.
		return n.String(), false, true
	}
	return FormatFloat(f), false, true
}

// isIntegerLiteral reports whether s is a JSON integer: optional minus,
// digits, no fraction or exponent.
func isIntegerLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

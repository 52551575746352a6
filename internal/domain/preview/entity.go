// internal/domain/preview/entity.go
package preview

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a code cannot be split into category and number
var ErrNotFound = errors.New("image not found for this item code")

// ImageDescriptor is the displayable result of resolving an item code
type ImageDescriptor struct {
	Path       string `json:"src"`
	AltText    string `json:"alt"`
	SourceCode string `json:"itemCode"`
}

// CategoryInfo describes a known category for listings
type CategoryInfo struct {
	Key       string `json:"key"`
	Directory string `json:"directory"`
	Example   string `json:"example"`
}

// Number is the parsed numeric suffix of an item code.
// Raw keeps the segment as typed; Digits holds the canonical decimal form
// when the segment starts with a number.
type Number struct {
	Raw    string
	Digits string
	Valid  bool
}

// ParseNumber reads the leading base-10 integer of s, ignoring leading
// whitespace and an optional plus sign. Trailing garbage is dropped, so
// "007abc" parses as 7. A segment without leading digits is invalid.
func ParseNumber(s string) Number {
	n := Number{Raw: s}

	rest := strings.TrimLeft(s, " \t\n\r")
	rest = strings.TrimPrefix(rest, "+")

	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return n
	}

	digits := strings.TrimLeft(rest[:end], "0")
	if digits == "" {
		digits = "0"
	}
	n.Digits = digits
	n.Valid = true
	return n
}

// Int returns the number as an int when it fits
func (n Number) Int() (int, bool) {
	if !n.Valid {
		return 0, false
	}
	v, err := strconv.Atoi(n.Digits)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Pad left-pads the number with zeros to width digits. An invalid number
// renders as "NaN" so a preview path is still produced.
func (n Number) Pad(width int) string {
	if !n.Valid {
		return "NaN"
	}
	if len(n.Digits) >= width {
		return n.Digits
	}
	return strings.Repeat("0", width-len(n.Digits)) + n.Digits
}

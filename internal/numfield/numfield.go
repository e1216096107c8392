// Package numfield sanitizes numeric text inputs as the user types.
package numfield

import (
	"regexp"
	"strconv"
	"strings"
)

// Policy configures Sanitize.
//
// AllowSign keeps an optional leading "-" and reads the first run of digits
// from the start of the input, ignoring the rest. Without it every non-digit
// is stripped and the remaining digits are joined.
//
// EmptyAsZero turns an input with no usable digits into "0" instead of "".
type Policy struct {
	AllowSign   bool
	EmptyAsZero bool
}

var (
	// Digits strips everything but digits and leaves blank input blank.
	// Bound to the chunk-size field.
	Digits = Policy{}

	// Signed accepts a leading sign and falls back to 0.
	// Bound to the chunk-count field.
	Signed = Policy{AllowSign: true, EmptyAsZero: true}
)

var leadingInt = regexp.MustCompile(`^-?[0-9]+`)

// Sanitize returns the cleaned field text.
func (p Policy) Sanitize(raw string) string {
	var candidate string
	if p.AllowSign {
		candidate = leadingInt.FindString(raw)
	} else {
		candidate = strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, raw)
	}

	n, err := strconv.ParseInt(candidate, 10, 64)
	if err != nil {
		// Either no digits or too many to fit; both count as absent.
		if p.EmptyAsZero {
			return "0"
		}
		return ""
	}
	return strconv.FormatInt(n, 10)
}

// Typing is Sanitize for text that is still being edited. A signed field
// keeps "" and a lone "-" so a negative number can be typed; Sanitize turns
// them into "0" once the value is committed.
func (p Policy) Typing(raw string) string {
	if p.AllowSign && (raw == "" || raw == "-") {
		return raw
	}
	return p.Sanitize(raw)
}

// Int parses a sanitized field. ok is false when the field is blank.
func (p Policy) Int(raw string) (n int, ok bool) {
	v, err := strconv.Atoi(p.Sanitize(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

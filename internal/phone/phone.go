// Package phone normalizes Kazakhstan phone numbers typed free-form
// into a canonical display string and a digit string.
package phone

import "strings"

const (
	countryDigit = '7'
	// Country prefix plus a 10-digit subscriber number.
	fullDigits = 11
)

// Digits strips raw input down to its normalized digit form: non-digit
// characters removed, a leading 8 replaced by the country digit 7, the
// country digit prepended when missing, truncated to 11 digits.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	if digits[0] == '8' {
		digits = string(countryDigit) + digits[1:]
	} else if digits[0] != byte(countryDigit) {
		digits = string(countryDigit) + digits
	}

	if len(digits) > fullDigits {
		digits = digits[:fullDigits]
	}
	return digits
}

// Format re-renders raw input as a progressively filled display
// string: +7, then (area), then exchange-line groups. Applying Format
// to its own output yields the same string.
func Format(raw string) string {
	digits := Digits(raw)
	if digits == "" {
		return "+7"
	}

	var b strings.Builder
	b.WriteString("+7")
	if len(digits) > 1 {
		b.WriteString(" (")
		b.WriteString(digits[1:min(4, len(digits))])
	}
	if len(digits) > 4 {
		b.WriteString(") ")
		b.WriteString(digits[4:min(7, len(digits))])
	}
	if len(digits) > 7 {
		b.WriteString("-")
		b.WriteString(digits[7:min(9, len(digits))])
	}
	if len(digits) > 9 {
		b.WriteString("-")
		b.WriteString(digits[9:])
	}
	return b.String()
}

// Valid reports whether raw input carries a complete subscriber
// number. Shorter inputs are rejected for submission.
func Valid(raw string) bool {
	return len(Digits(raw)) == fullDigits
}

// Package validate normalizes identifiers accepted over the API. One
// canonical rule set applies everywhere: card numbers are 3-6 digit short
// cards or 8-20 digit long cards, mobiles are exactly 10 digits, barcodes
// are free-form up to 128 characters.
package validate

import (
	"errors"
	"regexp"
	"strings"
)

const (
	cardNumberShortMin = 3
	cardNumberShortMax = 6
	cardNumberLongMin  = 8
	cardNumberLongMax  = 20
	barcodeMaxLen      = 128
	mobileLen          = 10
)

var (
	ErrCardNumberDigits = errors.New("cardNumber must be digits only")
	ErrCardNumberLength = errors.New("cardNumber must be 3-6 or 8-20 digits")
	ErrMobileDigits     = errors.New("mobile must be digits only")
	ErrMobileLength     = errors.New("mobile must be 10 digits")
	ErrBarcodeLength    = errors.New("barcode must be 1-128 characters")
)

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CardNumber trims and validates a loyalty-card number.
func CardNumber(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if !digitsOnly(trimmed) {
		return "", ErrCardNumberDigits
	}
	length := len(trimmed)
	isShort := length >= cardNumberShortMin && length <= cardNumberShortMax
	isLong := length >= cardNumberLongMin && length <= cardNumberLongMax
	if !isShort && !isLong {
		return "", ErrCardNumberLength
	}
	return trimmed, nil
}

// Mobile trims and validates an optional mobile number. Empty input is
// allowed and normalizes to the empty string.
func Mobile(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", nil
	}
	if !digitsOnly(trimmed) {
		return "", ErrMobileDigits
	}
	if len(trimmed) != mobileLen {
		return "", ErrMobileLength
	}
	return trimmed, nil
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var ErrEmailInvalid = errors.New("email is invalid")

// Email trims, lowercases and validates an admin email address.
func Email(input string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if !emailPattern.MatchString(trimmed) {
		return "", ErrEmailInvalid
	}
	return trimmed, nil
}

// Barcode trims and validates an optional customer barcode. Empty input
// normalizes to nil so the unique index ignores it.
func Barcode(input string) (*string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > barcodeMaxLen {
		return nil, ErrBarcodeLength
	}
	return &trimmed, nil
}

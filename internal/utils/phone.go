package utils

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidPhone signals a phone number that matches none of the accepted
// Uzbek formats.
var ErrInvalidPhone = errors.New("invalid phone number format")

var (
	phoneSpacedRe  = regexp.MustCompile(`^\+998 \d{2} \d{3} \d{2} \d{2}$`)
	phoneFullRe    = regexp.MustCompile(`^\+998\d{9}$`)
	phonePrefixRe  = regexp.MustCompile(`^998\d{9}$`)
	phoneShortRe   = regexp.MustCompile(`^\d{9}$`)
	phoneTenDigits = regexp.MustCompile(`^\d{10}$`)
)

// NormalizePhone converts an accepted Uzbek phone number to the canonical
// +998XXXXXXXXX form. Accepted inputs:
//
//	+998 XX XXX XX XX  (spaces removed)
//	+998XXXXXXXXX      (already canonical)
//	998XXXXXXXXX       ("+" prepended)
//	XXXXXXXXX          (9-digit national number, "+998" prepended)
//
// Normalization is idempotent: canonical input comes back unchanged.
func NormalizePhone(raw string) (string, error) {
	switch {
	case phoneSpacedRe.MatchString(raw):
		return strings.ReplaceAll(raw, " ", ""), nil
	case phoneFullRe.MatchString(raw):
		return raw, nil
	case phonePrefixRe.MatchString(raw):
		return "+" + raw, nil
	case phoneShortRe.MatchString(raw):
		return "+998" + raw, nil
	}
	return "", ErrInvalidPhone
}

// NormalizeBookingPhone is NormalizePhone plus the bare 10-digit shape some
// booking clients send, which only gains a "+" prefix.
func NormalizeBookingPhone(raw string) (string, error) {
	if phoneTenDigits.MatchString(raw) {
		return "+" + raw, nil
	}
	return NormalizePhone(raw)
}

// ValidDoctorPhone reports whether a doctor contact number is acceptable:
// empty (the field is optional), the spaced display format, or a bare
// 9-digit national number.
func ValidDoctorPhone(raw string) bool {
	return raw == "" || phoneSpacedRe.MatchString(raw) || phoneShortRe.MatchString(raw)
}

package onboarding

import (
	"errors"
	"regexp"
	"strings"
)

var (
	dialCodePattern = regexp.MustCompile(`^\+\d{1,4}$`)
	digitsPattern   = regexp.MustCompile(`^\d+$`)
	nonDigits       = regexp.MustCompile(`\D`)

	// ErrInvalidPhoneNumber is returned when a phone number is not "<dial code> <digits>".
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
)

// PhoneNumber is the compound phone field. It is only joined into a single
// space-separated string at the storage and wire boundary.
type PhoneNumber struct {
	DialCode    string
	LocalNumber string
}

// String joins the two parts with a single space. An empty part is left out.
func (p PhoneNumber) String() string {
	switch {
	case p.DialCode == "":
		return p.LocalNumber
	case p.LocalNumber == "":
		return p.DialCode
	default:
		return p.DialCode + " " + p.LocalNumber
	}
}

// IsZero reports whether neither part has been entered.
func (p PhoneNumber) IsZero() bool {
	return p.DialCode == "" && p.LocalNumber == ""
}

// SplitPhoneNumber is the lenient read used by form fields: the text before the first space is
// the dial code and the rest is the local number. It never fails.
func SplitPhoneNumber(s string) PhoneNumber {
	code, local, found := strings.Cut(s, " ")
	if !found {
		if strings.HasPrefix(code, "+") {
			return PhoneNumber{DialCode: code}
		}
		return PhoneNumber{LocalNumber: code}
	}
	return PhoneNumber{DialCode: code, LocalNumber: local}
}

// ParsePhoneNumber is the strict read: a "+" dial code of 1-4 digits, one space, then digits.
func ParsePhoneNumber(s string) (PhoneNumber, error) {
	p := SplitPhoneNumber(s)
	if !dialCodePattern.MatchString(p.DialCode) || !digitsPattern.MatchString(p.LocalNumber) {
		return PhoneNumber{}, ErrInvalidPhoneNumber
	}
	return p, nil
}

// DigitsOnly strips everything that is not a digit, as the local-number input does while typing.
func DigitsOnly(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

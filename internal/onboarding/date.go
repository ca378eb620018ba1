package onboarding

import (
	"errors"
	"regexp"
	"time"
)

// BirthDateLayout is the display format of dates of birth.
const BirthDateLayout = "02/01/2006"

// StorageDateLayout is how a calendar date is rendered once normalized.
const StorageDateLayout = "2006-01-02"

var (
	birthDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

	// ErrInvalidBirthDate is returned for text that is not a real DD/MM/YYYY calendar date.
	ErrInvalidBirthDate = errors.New("invalid date of birth")
)

const (
	minBirthYear = 1000
	maxBirthYear = 9999
)

// ParseBirthDate converts "DD/MM/YYYY" into a UTC midnight time. time.Parse already rejects days
// beyond the month's length, so "31/04/2000" and "29/02/2021" fail while "29/02/2020" passes.
func ParseBirthDate(s string) (time.Time, error) {
	if !birthDatePattern.MatchString(s) {
		return time.Time{}, ErrInvalidBirthDate
	}
	t, err := time.ParseInLocation(BirthDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidBirthDate
	}
	if t.Year() < minBirthYear || t.Year() > maxBirthYear {
		return time.Time{}, ErrInvalidBirthDate
	}
	return t, nil
}

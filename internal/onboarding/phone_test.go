package onboarding

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneNumber_String(t *testing.T) {
	assert.Equal(t, "+1 5551234567", PhoneNumber{DialCode: "+1", LocalNumber: "5551234567"}.String())
	assert.Equal(t, "+1", PhoneNumber{DialCode: "+1"}.String())
	assert.Equal(t, "5551234567", PhoneNumber{LocalNumber: "5551234567"}.String())
	assert.Equal(t, "", PhoneNumber{}.String())
	assert.True(t, PhoneNumber{}.IsZero())
}

func TestSplitPhoneNumber_RoundTrips(t *testing.T) {
	for _, p := range []PhoneNumber{
		{DialCode: "+254", LocalNumber: "712345678"},
		{DialCode: "+1"},
		{LocalNumber: "5551234567"},
		{},
	} {
		assert.Equal(t, p, SplitPhoneNumber(p.String()))
	}
}

func TestParsePhoneNumber(t *testing.T) {
	p, err := ParsePhoneNumber("+44 7911123456")
	require.NoError(t, err)
	assert.Equal(t, "+44", p.DialCode)
	assert.Equal(t, "7911123456", p.LocalNumber)

	for _, bad := range []string{"", "+44", "7911123456", "44 7911123456", "+44 79111 23456", "+44 79a1"} {
		_, err := ParsePhoneNumber(bad)
		assert.ErrorIs(t, err, ErrInvalidPhoneNumber, bad)
	}
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "5551234567", DigitsOnly("(555) 123-4567"))
	assert.Equal(t, "", DigitsOnly("abc"))
}

func TestParseBirthDate(t *testing.T) {
	d, err := ParseBirthDate("29/02/2020")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseBirthDate("30/02/2020")
	assert.ErrorIs(t, err, ErrInvalidBirthDate)
}

package onboarding

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@doe.com",
		Gender:      GenderFemale,
		PhoneNumber: "+1 5551234567",
		DateOfBirth: "15/06/1995",
	}
}

func requireFieldError(t *testing.T, err error, field, message string) {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %T", err)
	assert.Equal(t, message, ve.Message(field), "errors: %v", ve.Fields)
}

func TestValidate_ValidInputIsConverted(t *testing.T) {
	in := validInput()
	in.Email = "Jane@Doe.com"

	p, err := Validate(in)
	require.NoError(t, err)

	assert.Equal(t, "Jane", p.FirstName)
	assert.Equal(t, "Doe", p.LastName)
	assert.Equal(t, "Jane@Doe.com", p.Email, "email is stored as submitted")
	assert.Equal(t, GenderFemale, p.Gender)
	require.NotNil(t, p.PhoneNumber)
	assert.Equal(t, PhoneNumber{DialCode: "+1", LocalNumber: "5551234567"}, *p.PhoneNumber)
	require.NotNil(t, p.DateOfBirth)
	assert.Equal(t, time.Date(1995, time.June, 15, 0, 0, 0, 0, time.UTC), *p.DateOfBirth)
}

func TestValidate_OptionalFieldsMayBeAbsent(t *testing.T) {
	in := validInput()
	in.PhoneNumber = ""
	in.DateOfBirth = ""

	p, err := Validate(in)
	require.NoError(t, err)
	assert.Nil(t, p.PhoneNumber)
	assert.Nil(t, p.DateOfBirth)
}

func TestValidate_Names(t *testing.T) {
	for _, name := range []string{"", "J"} {
		in := validInput()
		in.FirstName = name
		_, err := Validate(in)
		requireFieldError(t, err, FieldFirstName, "First name must be at least 2 characters")

		in = validInput()
		in.LastName = name
		_, err = Validate(in)
		requireFieldError(t, err, FieldLastName, "Last name must be at least 2 characters")
	}

	in := validInput()
	in.FirstName = "Jo"
	in.LastName = "Li"
	_, err := Validate(in)
	assert.NoError(t, err)
}

func TestValidate_Email(t *testing.T) {
	for _, email := range []string{"", "jane", "jane@", "@doe.com", "jane doe@doe.com", "jane@@doe.com"} {
		t.Run(email, func(t *testing.T) {
			in := validInput()
			in.Email = email
			_, err := Validate(in)
			requireFieldError(t, err, FieldEmail, "Invalid email address")
		})
	}
}

func TestValidate_Gender(t *testing.T) {
	for _, g := range []Gender{GenderMale, GenderFemale} {
		in := validInput()
		in.Gender = g
		_, err := Validate(in)
		assert.NoError(t, err, "gender %q", g)
	}

	for _, g := range []Gender{"", "male", "Female", "OTHER", "M"} {
		in := validInput()
		in.Gender = g
		_, err := Validate(in)
		requireFieldError(t, err, FieldGender, "Please select a gender")
	}
}

func TestValidate_PhoneNumber(t *testing.T) {
	tests := []struct {
		phone   string
		wantMsg string
	}{
		{phone: "+1 555", wantMsg: "Phone number must be at least 10 characters"},
		{phone: "+44 12", wantMsg: "Phone number must be at least 10 characters"},
		{phone: "5551234567", wantMsg: "Phone number must be a country code followed by digits"},
		{phone: "+1 555-123-4567", wantMsg: "Phone number must be a country code followed by digits"},
		{phone: "+1  5551234567", wantMsg: "Phone number must be a country code followed by digits"},
		{phone: "+12345 5551234", wantMsg: "Phone number must be a country code followed by digits"},
		{phone: "+44 7911123456"},
		{phone: "+254 712345678"},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			in := validInput()
			in.PhoneNumber = tt.phone
			_, err := Validate(in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			requireFieldError(t, err, FieldPhoneNumber, tt.wantMsg)
		})
	}
}

func TestValidate_DateOfBirth(t *testing.T) {
	tests := []struct {
		dob   string
		valid bool
	}{
		{"15/06/1995", true},
		{"29/02/2020", true},
		{"31/12/1999", true},
		{"31/02/2000", false},
		{"29/02/2021", false},
		{"31/04/2000", false},
		{"00/01/2000", false},
		{"01/13/2000", false},
		{"1/6/1995", false},
		{"1995-06-15", false},
		{"15/06/95", false},
		{"15-06-1995", false},
		{"15/06/0995", false},
		{"aa/bb/cccc", false},
	}
	for _, tt := range tests {
		t.Run(tt.dob, func(t *testing.T) {
			in := validInput()
			in.DateOfBirth = tt.dob
			_, err := Validate(in)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			requireFieldError(t, err, FieldDateOfBirth, "Please enter a valid date in DD/MM/YYYY format")
		})
	}
}

func TestValidate_ReportsEveryFailingFieldInFormOrder(t *testing.T) {
	_, err := Validate(Input{DateOfBirth: "31/02/2000", PhoneNumber: "+1 1"})
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))

	fields := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{FieldFirstName, FieldLastName, FieldEmail, FieldGender, FieldPhoneNumber, FieldDateOfBirth}, fields)
	assert.True(t, strings.HasPrefix(ve.Error(), "validation failed: firstName:"))
	assert.Len(t, ve.Map(), 6)
}

func TestValidateFields_OnlyChecksNamedFields(t *testing.T) {
	in := Input{FirstName: "Jane", LastName: "Doe", Email: "jane@doe.com"}

	assert.NoError(t, ValidateFields(in, Step1Fields...), "step 2 fields must not be reported")

	err := ValidateFields(in, Step2Fields...)
	requireFieldError(t, err, FieldGender, "Please select a gender")

	in.Email = "nope"
	err = ValidateFields(in, Step1Fields...)
	requireFieldError(t, err, FieldEmail, "Invalid email address")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 1)
}

func TestFieldMessage(t *testing.T) {
	assert.Equal(t, "First name must be at least 2 characters", FieldMessage(FieldFirstName))
	assert.Equal(t, "Please select a gender", FieldMessage(FieldGender))
	assert.Equal(t, "Phone number must be a country code followed by digits", FieldMessage(FieldPhoneNumber))
	assert.Equal(t, "Invalid value", FieldMessage("nickname"))
}

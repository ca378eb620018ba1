// Package onboarding holds the onboarding form's validation schema. The same rules run in the
// wizard before anything is sent and in the user-creation handler on the trust boundary.
package onboarding

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Gender is the closed set of accepted gender values.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Field names as they appear on the wire.
const (
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldGender      = "gender"
	FieldPhoneNumber = "phoneNumber"
	FieldDateOfBirth = "dateOfBirth"
)

// Step1Fields are collected on the personal information step.
var Step1Fields = []string{FieldFirstName, FieldLastName, FieldEmail}

// Step2Fields are collected on the additional information step.
var Step2Fields = []string{FieldGender, FieldPhoneNumber, FieldDateOfBirth}

// Input is the candidate payload of the onboarding form. It is also the JSON body of POST /api/user.
type Input struct {
	FirstName   string `json:"firstName"             validate:"min=2"`
	LastName    string `json:"lastName"              validate:"min=2"`
	Email       string `json:"email"                 validate:"required,email"`
	Gender      Gender `json:"gender"                validate:"required,oneof=MALE FEMALE"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,min=10,dialphone"`
	DateOfBirth string `json:"dateOfBirth,omitempty" validate:"omitempty,ddmmyyyy"`
}

// Profile is a validated, normalized Input ready for persistence.
type Profile struct {
	FirstName   string
	LastName    string
	Email       string
	Gender      Gender
	PhoneNumber *PhoneNumber
	DateOfBirth *time.Time
}

var messages = map[string]string{
	FieldFirstName:   "First name must be at least 2 characters",
	FieldLastName:    "Last name must be at least 2 characters",
	FieldEmail:       "Invalid email address",
	FieldGender:      "Please select a gender",
	FieldDateOfBirth: "Please enter a valid date in DD/MM/YYYY format",
}

const (
	msgPhoneTooShort = "Phone number must be at least 10 characters"
	msgPhoneFormat   = "Phone number must be a country code followed by digits"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schemaValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Registration only fails on empty tags or nil funcs.
		_ = v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
			_, err := ParseBirthDate(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("dialphone", func(fl validator.FieldLevel) bool {
			_, err := ParsePhoneNumber(fl.Field().String())
			return err == nil
		})
		validate = v
	})
	return validate
}

// Validate checks every field of in and returns the normalized Profile, or a *ValidationError
// listing one message per failing field.
func Validate(in Input) (*Profile, error) {
	if err := validateFields(in, nil); err != nil {
		return nil, err
	}
	return normalize(in)
}

// ValidateFields runs the schema restricted to the named fields. The wizard uses it to check a
// single step without reporting errors for fields the user has not reached yet.
func ValidateFields(in Input, fields ...string) error {
	return validateFields(in, fields)
}

func validateFields(in Input, fields []string) error {
	var err error
	if fields == nil {
		err = schemaValidator().Struct(in)
	} else {
		err = schemaValidator().StructPartial(in, structFieldNames(fields)...)
	}
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	return fromValidatorErrors(ve)
}

func fromValidatorErrors(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{}
	seen := make(map[string]bool, len(errs))
	for _, e := range errs {
		field := e.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		out.Fields = append(out.Fields, FieldError{Field: field, Message: messageFor(field, e.Tag())})
	}
	out.sort()
	return out
}

// FieldMessage is the message shown for field when its value cannot be accepted at all, e.g. a
// number where text was expected.
func FieldMessage(field string) string {
	return messageFor(field, "")
}

func messageFor(field, tag string) string {
	if field == FieldPhoneNumber {
		if tag == "min" {
			return msgPhoneTooShort
		}
		return msgPhoneFormat
	}
	if msg, ok := messages[field]; ok {
		return msg
	}
	return "Invalid value"
}

// normalize converts the display representations into storage ones. Only called on valid input.
func normalize(in Input) (*Profile, error) {
	p := &Profile{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Gender:    in.Gender,
	}
	if in.PhoneNumber != "" {
		phone, err := ParsePhoneNumber(in.PhoneNumber)
		if err != nil {
			return nil, err
		}
		p.PhoneNumber = &phone
	}
	if in.DateOfBirth != "" {
		dob, err := ParseBirthDate(in.DateOfBirth)
		if err != nil {
			return nil, err
		}
		p.DateOfBirth = &dob
	}
	return p, nil
}

var structFieldByJSON = map[string]string{
	FieldFirstName:   "FirstName",
	FieldLastName:    "LastName",
	FieldEmail:       "Email",
	FieldGender:      "Gender",
	FieldPhoneNumber: "PhoneNumber",
	FieldDateOfBirth: "DateOfBirth",
}

func structFieldNames(fields []string) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if n, ok := structFieldByJSON[f]; ok {
			names = append(names, n)
		}
	}
	return names
}

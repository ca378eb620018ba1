// Package wizard implements the two-step onboarding form: which step is showing, what has been
// typed so far, and when the user may move on.
package wizard

import (
	"errors"
	"fmt"

	"onboarding_backend/internal/onboarding"
)

// Step identifies a page of the wizard.
type Step int

const (
	StepPersonalInfo   Step = 1
	StepAdditionalInfo Step = 2
)

func (s Step) Title() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Information"
	case StepAdditionalInfo:
		return "Additional Information"
	default:
		return fmt.Sprintf("Step %d", int(s))
	}
}

// StepState is how a step is drawn in the progress indicator.
type StepState string

const (
	StepComplete StepState = "complete"
	StepCurrent  StepState = "current"
	StepUpcoming StepState = "upcoming"
)

// StepInfo is one entry of the progress indicator.
type StepInfo struct {
	Number int
	Title  string
	State  StepState
}

// ErrWrongStep is returned when an action is not available on the current step.
var ErrWrongStep = errors.New("action not available on this step")

// Values is the in-progress form state. DateOfBirth stays in its DD/MM/YYYY display form until
// the form is submitted.
type Values struct {
	FirstName   string
	LastName    string
	Email       string
	Gender      onboarding.Gender
	Phone       onboarding.PhoneNumber
	DateOfBirth string
}

// Input converts the form state into the schema's candidate payload.
func (v Values) Input() onboarding.Input {
	return onboarding.Input{
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		Email:       v.Email,
		Gender:      v.Gender,
		PhoneNumber: v.Phone.String(),
		DateOfBirth: v.DateOfBirth,
	}
}

// Controller is the wizard state machine. It is not safe for concurrent use; a form belongs to
// one user interaction.
type Controller struct {
	step   Step
	values Values
	errs   map[string]string
}

// New starts a wizard on the personal information step, prefilled with defaults.
func New(defaults Values) *Controller {
	return &Controller{
		step:   StepPersonalInfo,
		values: defaults,
		errs:   map[string]string{},
	}
}

func (c *Controller) Step() Step { return c.step }

// Values returns a copy of the entered values.
func (c *Controller) Values() Values { return c.values }

// Steps returns the progress indicator for the current position.
func (c *Controller) Steps() []StepInfo {
	steps := []Step{StepPersonalInfo, StepAdditionalInfo}
	out := make([]StepInfo, 0, len(steps))
	for _, s := range steps {
		state := StepUpcoming
		switch {
		case s < c.step:
			state = StepComplete
		case s == c.step:
			state = StepCurrent
		}
		out = append(out, StepInfo{Number: int(s), Title: s.Title(), State: state})
	}
	return out
}

// FieldError returns the message currently shown under field, or "".
func (c *Controller) FieldError(field string) string { return c.errs[field] }

// Errors returns the messages currently shown, keyed by field.
func (c *Controller) Errors() map[string]string {
	out := make(map[string]string, len(c.errs))
	for k, v := range c.errs {
		out[k] = v
	}
	return out
}

// SetFirstName and the other setters clear the error shown under the edited field.
func (c *Controller) SetFirstName(v string) {
	c.values.FirstName = v
	c.clear(onboarding.FieldFirstName)
}

func (c *Controller) SetLastName(v string) {
	c.values.LastName = v
	c.clear(onboarding.FieldLastName)
}

func (c *Controller) SetEmail(v string) {
	c.values.Email = v
	c.clear(onboarding.FieldEmail)
}

func (c *Controller) SetDateOfBirth(v string) {
	c.values.DateOfBirth = v
	c.clear(onboarding.FieldDateOfBirth)
}

func (c *Controller) SetGender(g onboarding.Gender) {
	c.values.Gender = g
	c.clear(onboarding.FieldGender)
}

// SetDialCode replaces the country code part of the phone number.
func (c *Controller) SetDialCode(code string) {
	c.values.Phone.DialCode = code
	c.clear(onboarding.FieldPhoneNumber)
}

// SetLocalNumber replaces the digits part of the phone number. Non-digits are dropped.
func (c *Controller) SetLocalNumber(raw string) {
	c.values.Phone.LocalNumber = onboarding.DigitsOnly(raw)
	c.clear(onboarding.FieldPhoneNumber)
}

// SetPhoneNumber writes the joined form, splitting it back into its two parts.
func (c *Controller) SetPhoneNumber(joined string) {
	p := onboarding.SplitPhoneNumber(joined)
	p.LocalNumber = onboarding.DigitsOnly(p.LocalNumber)
	c.values.Phone = p
	c.clear(onboarding.FieldPhoneNumber)
}

// Next moves from personal information to additional information once the step 1 fields pass
// the schema. On failure the step is unchanged and the field errors are returned and retained.
func (c *Controller) Next() error {
	if c.step != StepPersonalInfo {
		return ErrWrongStep
	}
	if err := c.check(onboarding.Step1Fields); err != nil {
		return err
	}
	c.step = StepAdditionalInfo
	return nil
}

// Previous returns to personal information. Entered values are kept.
func (c *Controller) Previous() error {
	if c.step != StepAdditionalInfo {
		return ErrWrongStep
	}
	c.step = StepPersonalInfo
	return nil
}

// Submit runs the full schema. On success it returns the payload for the submission client; on
// failure the wizard stays on additional information with the errors retained.
func (c *Controller) Submit() (onboarding.Input, error) {
	if c.step != StepAdditionalInfo {
		return onboarding.Input{}, ErrWrongStep
	}
	in := c.values.Input()
	c.errs = map[string]string{}
	if _, err := onboarding.Validate(in); err != nil {
		c.record(err)
		return onboarding.Input{}, err
	}
	return in, nil
}

// ApplyServerErrors shows field errors reported by the server after a failed submission.
func (c *Controller) ApplyServerErrors(fields []onboarding.FieldError) {
	for _, f := range fields {
		c.errs[f.Field] = f.Message
	}
}

func (c *Controller) check(fields []string) error {
	for _, f := range fields {
		c.clear(f)
	}
	err := onboarding.ValidateFields(c.values.Input(), fields...)
	if err != nil {
		c.record(err)
	}
	return err
}

func (c *Controller) record(err error) {
	var ve *onboarding.ValidationError
	if errors.As(err, &ve) {
		for _, f := range ve.Fields {
			c.errs[f.Field] = f.Message
		}
	}
}

func (c *Controller) clear(field string) {
	delete(c.errs, field)
}

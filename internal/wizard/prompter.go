package wizard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"onboarding_backend/internal/onboarding"
	"onboarding_backend/internal/submission"
)

// ErrAborted is returned when the input ends before the form was submitted.
var ErrAborted = errors.New("onboarding aborted")

// clearValue entered at an optional prompt empties the field.
const clearValue = "-"

// Submitter sends the validated payload. *submission.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, payload onboarding.Input) (*submission.Result, error)
}

// Prompter renders a Controller as line prompts on a terminal.
type Prompter struct {
	ctrl      *Controller
	submitter Submitter
	in        *bufio.Scanner
	out       io.Writer
}

func NewPrompter(ctrl *Controller, submitter Submitter, in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		ctrl:      ctrl,
		submitter: submitter,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run drives the wizard until a submission succeeds. A failed submission keeps the user on the
// additional information step with everything they typed, so they can retry.
func (p *Prompter) Run(ctx context.Context) (*submission.Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.renderSteps()

		var (
			res *submission.Result
			err error
		)
		switch p.ctrl.Step() {
		case StepPersonalInfo:
			err = p.personalInfo()
		case StepAdditionalInfo:
			res, err = p.additionalInfo(ctx)
		}
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}
}

func (p *Prompter) personalInfo() error {
	v := p.ctrl.Values()
	for _, f := range []struct {
		label string
		cur   string
		set   func(string)
	}{
		{"First name", v.FirstName, p.ctrl.SetFirstName},
		{"Last name", v.LastName, p.ctrl.SetLastName},
		{"Email", v.Email, p.ctrl.SetEmail},
	} {
		line, err := p.ask(f.label, f.cur)
		if err != nil {
			return err
		}
		f.set(line)
	}

	if err := p.ctrl.Next(); err != nil {
		p.renderErrors(onboarding.Step1Fields)
	}
	return nil
}

func (p *Prompter) additionalInfo(ctx context.Context) (*submission.Result, error) {
	v := p.ctrl.Values()

	gender, err := p.ask("Gender (male/female)", strings.ToLower(string(v.Gender)))
	if err != nil {
		return nil, err
	}
	p.ctrl.SetGender(parseGender(gender))

	code, err := p.askOptional("Country code (e.g. +1)", v.Phone.DialCode)
	if err != nil {
		return nil, err
	}
	p.ctrl.SetDialCode(code)

	local, err := p.askOptional("Phone number", v.Phone.LocalNumber)
	if err != nil {
		return nil, err
	}
	p.ctrl.SetLocalNumber(local)

	dob, err := p.askOptional("Date of birth (DD/MM/YYYY)", v.DateOfBirth)
	if err != nil {
		return nil, err
	}
	p.ctrl.SetDateOfBirth(dob)

	action, err := p.ask("[s]ubmit or [b]ack", "s")
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(strings.ToLower(action), "b") {
		return nil, p.ctrl.Previous()
	}

	payload, err := p.ctrl.Submit()
	if err != nil {
		p.renderErrors(onboarding.Step2Fields)
		return nil, nil
	}

	fmt.Fprintln(p.out, "Submitting...")
	res, err := p.submitter.Submit(ctx, payload)
	if err != nil {
		var subErr *submission.Error
		if errors.As(err, &subErr) {
			p.ctrl.ApplyServerErrors(subErr.Details)
			fmt.Fprintf(p.out, "Error: %s\n", subErr.Message)
		} else {
			fmt.Fprintf(p.out, "Error: %s\n", submission.FallbackMessage)
		}
		p.renderErrors(append(append([]string{}, onboarding.Step1Fields...), onboarding.Step2Fields...))
		return nil, nil
	}

	fmt.Fprintln(p.out, res.Notice)
	fmt.Fprintf(p.out, "Continue at %s\n", res.RedirectTo)
	return res, nil
}

// ask prompts for a value; an empty line keeps cur.
func (p *Prompter) ask(label, cur string) (string, error) {
	if cur != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, cur)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrAborted
	}
	line := strings.TrimSpace(p.in.Text())
	if line == "" {
		return cur, nil
	}
	return line, nil
}

// askOptional is ask for an optional field, where "-" clears the value.
func (p *Prompter) askOptional(label, cur string) (string, error) {
	line, err := p.ask(label+" (- to clear)", cur)
	if err != nil {
		return "", err
	}
	if line == clearValue {
		return "", nil
	}
	return line, nil
}

func (p *Prompter) renderSteps() {
	parts := make([]string, 0, 2)
	for _, s := range p.ctrl.Steps() {
		mark := " "
		switch s.State {
		case StepComplete:
			mark = "x"
		case StepCurrent:
			mark = ">"
		}
		parts = append(parts, fmt.Sprintf("[%s] %d %s", mark, s.Number, s.Title))
	}
	fmt.Fprintf(p.out, "\n%s\n", strings.Join(parts, "  "))
}

func (p *Prompter) renderErrors(fields []string) {
	for _, f := range fields {
		if msg := p.ctrl.FieldError(f); msg != "" {
			fmt.Fprintf(p.out, "  ! %s: %s\n", f, msg)
		}
	}
}

func parseGender(s string) onboarding.Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return onboarding.GenderMale
	case "f", "female":
		return onboarding.GenderFemale
	default:
		return onboarding.Gender(s)
	}
}

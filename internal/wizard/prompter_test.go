package wizard

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"onboarding_backend/internal/onboarding"
	"onboarding_backend/internal/submission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	payloads []onboarding.Input
	errs     []error
}

func (f *fakeSubmitter) Submit(_ context.Context, payload onboarding.Input) (*submission.Result, error) {
	f.payloads = append(f.payloads, payload)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return &submission.Result{
		Profile:    submission.Profile{ID: "uid-1", FirstName: payload.FirstName},
		Notice:     submission.SuccessNotice,
		RedirectTo: "/dashboard",
	}, nil
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestPrompter_HappyPath(t *testing.T) {
	sub := &fakeSubmitter{}
	var out bytes.Buffer
	p := NewPrompter(New(Values{}), sub, script(
		"Jane", "Doe", "jane@doe.com",
		"f", "+1", "555-123-4567", "15/06/1995", "s",
	), &out)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "uid-1", res.Profile.ID)

	require.Len(t, sub.payloads, 1)
	assert.Equal(t, onboarding.Input{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@doe.com",
		Gender:      onboarding.GenderFemale,
		PhoneNumber: "+1 5551234567",
		DateOfBirth: "15/06/1995",
	}, sub.payloads[0])
	assert.Contains(t, out.String(), "[>] 1 Personal Information")
	assert.Contains(t, out.String(), "[x] 1 Personal Information  [>] 2 Additional Information")
	assert.Contains(t, out.String(), submission.SuccessNotice)
	assert.Contains(t, out.String(), "Continue at /dashboard")
}

func TestPrompter_PrefilledDefaultsAreKept(t *testing.T) {
	sub := &fakeSubmitter{}
	var out bytes.Buffer
	ctrl := New(Values{FirstName: "Jane", LastName: "Doe", Email: "jane@doe.com"})
	p := NewPrompter(ctrl, sub, script("", "", "", "m", "", "", "", ""), &out)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, sub.payloads, 1)
	assert.Equal(t, "Jane", sub.payloads[0].FirstName)
	assert.Equal(t, onboarding.GenderMale, sub.payloads[0].Gender)
	assert.Empty(t, sub.payloads[0].PhoneNumber)
	assert.Contains(t, out.String(), "First name [Jane]: ")
}

func TestPrompter_InvalidStep1StaysOnStep1(t *testing.T) {
	sub := &fakeSubmitter{}
	var out bytes.Buffer
	p := NewPrompter(New(Values{}), sub, script("J", "Doe", "jane@doe.com"), &out)

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, ErrAborted)
	assert.Contains(t, out.String(), "firstName: First name must be at least 2 characters")
	assert.NotContains(t, out.String(), "Gender")
	assert.Empty(t, sub.payloads)
}

func TestPrompter_InvalidDateSendsNothing(t *testing.T) {
	sub := &fakeSubmitter{}
	var out bytes.Buffer
	p := NewPrompter(New(Values{}), sub, script(
		"Jane", "Doe", "jane@doe.com",
		"f", "", "", "31/04/2000", "s",
	), &out)

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, ErrAborted)
	assert.Contains(t, out.String(), "dateOfBirth: Please enter a valid date in DD/MM/YYYY format")
	assert.Empty(t, sub.payloads)
}

func TestPrompter_FailedSubmitCanBeRetried(t *testing.T) {
	sub := &fakeSubmitter{errs: []error{&submission.Error{Status: 500, Message: "Internal server error"}}}
	var out bytes.Buffer
	ctrl := New(Values{})
	p := NewPrompter(ctrl, sub, script(
		"Jane", "Doe", "jane@doe.com",
		"f", "+1", "5551234567", "15/06/1995", "s",
		"", "", "", "", "s",
	), &out)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Contains(t, out.String(), "Error: Internal server error")

	require.Len(t, sub.payloads, 2)
	assert.Equal(t, sub.payloads[0], sub.payloads[1], "values survive a failed submission")
	assert.Equal(t, StepAdditionalInfo, ctrl.Step())
}

func TestPrompter_BackReturnsToStep1(t *testing.T) {
	sub := &fakeSubmitter{}
	var out bytes.Buffer
	p := NewPrompter(New(Values{}), sub, script(
		"Jane", "Doe", "jane@doe.com",
		"f", "", "", "", "b",
		"Janet", "", "",
		"", "", "", "", "s",
	), &out)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, sub.payloads, 1)
	assert.Equal(t, "Janet", sub.payloads[0].FirstName)
	assert.Equal(t, onboarding.GenderFemale, sub.payloads[0].Gender)
}

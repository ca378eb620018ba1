package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"onboarding_backend/internal/auth"
	"onboarding_backend/internal/common"
	"onboarding_backend/internal/onboarding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, profile *Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func validInput() onboarding.Input {
	return onboarding.Input{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@doe.com",
		Gender:      onboarding.GenderFemale,
		PhoneNumber: "+1 5551234567",
		DateOfBirth: "15/06/1995",
	}
}

func testIdentity() *auth.Identity {
	return &auth.Identity{ID: "uid-1", Email: "jane@doe.com"}
}

func TestService_CreateProfile(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Profile) bool {
		return p.ID == "uid-1" &&
			p.Gender == onboarding.GenderFemale &&
			p.PhoneNumber != nil && *p.PhoneNumber == "+1 5551234567" &&
			p.DateOfBirth != nil && p.DateOfBirth.Equal(time.Date(1995, time.June, 15, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	p, err := svc.CreateProfile(context.Background(), testIdentity(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "uid-1", p.ID)
	assert.Equal(t, "jane@doe.com", p.Email)
	repo.AssertExpectations(t)
}

func TestService_CreateProfile_RequiresIdentity(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	_, err := svc.CreateProfile(context.Background(), nil, validInput())
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = svc.CreateProfile(context.Background(), &auth.Identity{}, validInput())
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateProfile_ValidationErrorWritesNothing(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())

	in := validInput()
	in.DateOfBirth = "31/04/2000"
	in.Email = "nope"

	_, err := svc.CreateProfile(context.Background(), testIdentity(), in)
	require.ErrorIs(t, err, common.ErrValidation)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, []onboarding.FieldError{
		{Field: onboarding.FieldEmail, Message: "Invalid email address"},
		{Field: onboarding.FieldDateOfBirth, Message: "Please enter a valid date in DD/MM/YYYY format"},
	}, apiErr.Details)
	assert.Nil(t, common.ErrValidation.Details, "package error value must not be mutated")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateProfile_Conflict(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())
	repo.On("Create", mock.Anything, mock.Anything).Return(ErrProfileExists).Once()

	_, err := svc.CreateProfile(context.Background(), testIdentity(), validInput())
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, ErrProfileExists, err)
}

func TestService_CreateProfile_StoreFailure(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())
	storeErr := errors.New("connection refused")
	repo.On("Create", mock.Anything, mock.Anything).Return(storeErr).Once()

	_, err := svc.CreateProfile(context.Background(), testIdentity(), validInput())
	require.ErrorIs(t, err, storeErr)
	_, isAPI := common.IsAPIError(err)
	assert.False(t, isAPI)
}

func TestService_GetProfile(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, zap.NewNop())
	want := &Profile{ID: "uid-1"}
	repo.On("FindByID", mock.Anything, "uid-1").Return(want, nil).Once()
	repo.On("FindByID", mock.Anything, "uid-2").Return(nil, common.ErrNotFound).Once()

	got, err := svc.GetProfile(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Same(t, want, got)

	_, err = svc.GetProfile(context.Background(), "uid-2")
	assert.ErrorIs(t, err, common.ErrNotFound)
	repo.AssertExpectations(t)
}

package user

import (
	"context"
	"errors"
	"fmt"

	"onboarding_backend/internal/auth"
	"onboarding_backend/internal/common"
	"onboarding_backend/internal/onboarding"

	"go.uber.org/zap"
)

// Service defines the profile operations used by the handler.
type Service interface {
	CreateProfile(ctx context.Context, identity *auth.Identity, in onboarding.Input) (*Profile, error)
	GetProfile(ctx context.Context, id string) (*Profile, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new profile service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger,
	}
}

// CreateProfile re-validates in against the onboarding schema and stores one profile keyed by
// the identity id. Errors are *common.APIError for validation and conflicts; anything else is a
// store failure.
func (s *ServiceImplementation) CreateProfile(ctx context.Context, identity *auth.Identity, in onboarding.Input) (*Profile, error) {
	if identity == nil || identity.ID == "" {
		return nil, common.ErrUnauthorized
	}

	validated, err := onboarding.Validate(in)
	if err != nil {
		var ve *onboarding.ValidationError
		if errors.As(err, &ve) {
			s.logger.Debug("Profile input failed validation",
				zap.String("identityID", identity.ID),
				zap.Any("fields", ve.Map()),
			)
			return nil, common.NewValidationAPIError(ve.Fields)
		}
		return nil, fmt.Errorf("failed to validate profile input: %w", err)
	}

	profile := NewProfile(identity.ID, validated)
	if err := s.repo.Create(ctx, profile); err != nil {
		if errors.Is(err, common.ErrConflict) {
			s.logger.Info("Profile already exists for identity", zap.String("identityID", identity.ID))
			return nil, err
		}
		s.logger.Error("Failed to create profile in repository", zap.Error(err), zap.String("identityID", identity.ID))
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("Profile created", zap.String("identityID", profile.ID))
	return profile, nil
}

// GetProfile returns the profile owned by id, or common.ErrNotFound.
func (s *ServiceImplementation) GetProfile(ctx context.Context, id string) (*Profile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Error("Error finding profile by ID", zap.Error(err), zap.String("identityID", id))
		}
		return nil, err
	}
	return profile, nil
}

// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"strings"

	"onboarding_backend/internal/common"

	"gorm.io/gorm"
)

// ErrProfileExists is returned by Create when the identity already has a profile.
var ErrProfileExists = common.ErrConflict.WithMessage("A profile already exists for this user.")

// Repository defines the interface for profile data operations.
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create inserts exactly one profile. A duplicate id is reported as ErrProfileExists.
func (r *gormRepository) Create(ctx context.Context, profile *Profile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	if err != nil {
		if isDuplicateKey(err) {
			return ErrProfileExists
		}
		return err
	}
	return nil
}

// FindByID retrieves the profile owned by identity id.
func (r *gormRepository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var profile Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithMessage("Profile not found.")
		}
		return nil, err
	}
	return &profile, nil
}

// isDuplicateKey also matches raw driver messages for connections opened without TranslateError.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

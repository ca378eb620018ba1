// File: internal/user/model.go
package user

import (
	"time"

	"onboarding_backend/internal/onboarding"
)

// Profile is the persisted onboarding record. Its ID is the external identity id, so the primary
// key doubles as the one-profile-per-identity constraint.
type Profile struct {
	ID          string            `gorm:"type:varchar(128);primaryKey"`
	FirstName   string            `gorm:"type:varchar(100);not null"`
	LastName    string            `gorm:"type:varchar(100);not null"`
	Email       string            `gorm:"type:varchar(255);not null;index"`
	Gender      onboarding.Gender `gorm:"type:varchar(16);not null"`
	PhoneNumber *string           `gorm:"type:varchar(32)"`
	DateOfBirth *time.Time        `gorm:"type:date"`
	CreatedAt   time.Time         `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "user_profiles"
}

// NewProfile builds the record for identityID from a validated onboarding profile.
func NewProfile(identityID string, p *onboarding.Profile) *Profile {
	rec := &Profile{
		ID:          identityID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Gender:      p.Gender,
		DateOfBirth: p.DateOfBirth,
	}
	if p.PhoneNumber != nil {
		phone := p.PhoneNumber.String()
		rec.PhoneNumber = &phone
	}
	return rec
}

// --- DTOs (Data Transfer Objects) for API responses ---

// ProfileResponse is the JSON shape of a stored profile. DateOfBirth is a calendar date (YYYY-MM-DD).
type ProfileResponse struct {
	ID          string            `json:"id"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Email       string            `json:"email"`
	Gender      onboarding.Gender `json:"gender"`
	PhoneNumber *string           `json:"phoneNumber"`
	DateOfBirth *string           `json:"dateOfBirth"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ToProfileResponse converts a Profile model to a ProfileResponse DTO.
func ToProfileResponse(p *Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Gender:      p.Gender,
		PhoneNumber: p.PhoneNumber,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.Format(onboarding.StorageDateLayout)
		resp.DateOfBirth = &dob
	}
	return resp
}

// MeResponse describes the caller for GET /api/user/me.
type MeResponse struct {
	Identity  IdentityResponse `json:"identity"`
	Onboarded bool             `json:"onboarded"`
	Profile   *ProfileResponse `json:"profile"`
}

// IdentityResponse is what the identity provider reported about the caller.
type IdentityResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

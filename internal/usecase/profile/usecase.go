package profile

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domainProfile "wezacredit-backend/internal/domain/profile"
)

// Usecase mirrors the identity collaborator's user records locally so the
// review queue can show borrower names and contacts.
type Usecase struct {
	profiles domainProfile.Repository
}

func NewUsecase(profiles domainProfile.Repository) *Usecase {
	return &Usecase{profiles: profiles}
}

type ProfileDTO struct {
	UserID     string    `json:"user_id"`
	Role       string    `json:"role"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	NationalID string    `json:"national_id,omitempty"`
	IsVerified bool      `json:"is_verified"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GetMe returns the acting user's own profile.
func (u *Usecase) GetMe(ctx context.Context, actor domainProfile.Actor) (*ProfileDTO, error) {
	p, err := u.profiles.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProfile.ErrNotFound
		}
		return nil, err
	}
	return toDTO(p, actor.Role), nil
}

type UpsertInput struct {
	FirstName  string
	LastName   string
	Phone      string
	NationalID string
}

// UpsertMe creates or updates the acting user's profile. The verification
// flag is owned by the external KYC flow and never writable here.
func (u *Usecase) UpsertMe(ctx context.Context, actor domainProfile.Actor, in UpsertInput) (*ProfileDTO, error) {
	p, err := u.profiles.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		p = &domainProfile.Profile{UserID: actor.UserID}
	}
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.Phone = in.Phone
	p.NationalID = in.NationalID
	if err := u.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return toDTO(p, actor.Role), nil
}

func toDTO(p *domainProfile.Profile, role domainProfile.Role) *ProfileDTO {
	return &ProfileDTO{
		UserID:     p.UserID,
		Role:       string(role),
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Phone:      p.Phone,
		NationalID: p.NationalID,
		IsVerified: p.IsVerified,
		UpdatedAt:  p.UpdatedAt,
	}
}

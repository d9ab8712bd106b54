package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	profileDomain "wezacredit-backend/internal/domain/profile"
)

// rolePrecedence orders grants so the strongest one wins when a user holds
// several.
var rolePrecedence = map[profileDomain.Role]int{
	profileDomain.RoleUser:       0,
	profileDomain.RoleAgent:      1,
	profileDomain.RoleLender:     2,
	profileDomain.RoleAdmin:      3,
	profileDomain.RoleSuperadmin: 4,
}

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*profileDomain.Profile, error) {
	var out profileDomain.Profile
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *ProfileRepository) Save(ctx context.Context, p *profileDomain.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// RoleFor returns the strongest role granted to the user; RoleUser when no
// grant exists.
func (r *ProfileRepository) RoleFor(ctx context.Context, userID string) (profileDomain.Role, error) {
	var grants []profileDomain.UserRole
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&grants)
	if res.Error != nil && !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return "", res.Error
	}
	role := profileDomain.RoleUser
	for _, g := range grants {
		if rolePrecedence[g.Role] > rolePrecedence[role] {
			role = g.Role
		}
	}
	return role, nil
}

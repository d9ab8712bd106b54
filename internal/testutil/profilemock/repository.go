package profilemock

import (
	"context"

	"wezacredit-backend/internal/domain/profile"
)

// Repo is a function-backed mock of profile.Repository.
type Repo struct {
	GetByUserIDFn func(ctx context.Context, userID string) (*profile.Profile, error)
	SaveFn        func(ctx context.Context, p *profile.Profile) error
	RoleForFn     func(ctx context.Context, userID string) (profile.Role, error)
}

var _ profile.Repository = (*Repo)(nil)

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	return m.GetByUserIDFn(ctx, userID)
}

func (m *Repo) Save(ctx context.Context, p *profile.Profile) error {
	return m.SaveFn(ctx, p)
}

func (m *Repo) RoleFor(ctx context.Context, userID string) (profile.Role, error) {
	if m.RoleForFn == nil {
		return profile.RoleUser, nil
	}
	return m.RoleForFn(ctx, userID)
}

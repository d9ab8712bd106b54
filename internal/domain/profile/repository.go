package profile

import "context"

// RoleLookup resolves the highest role granted to a user; RoleUser when no
// grant exists.
type RoleLookup interface {
	RoleFor(ctx context.Context, userID string) (Role, error)
}

type Repository interface {
	RoleLookup
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}

package rolemock

import (
	"context"

	"wezacredit-backend/internal/domain/profile"
)

var _ profile.RoleLookup = (*Lookup)(nil)

// Lookup resolves roles from a fixed map; unknown users get RoleUser, and Err
// short-circuits everything when set.
type Lookup struct {
	Roles map[string]profile.Role
	Err   error
}

func (m *Lookup) RoleFor(_ context.Context, userID string) (profile.Role, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if r, ok := m.Roles[userID]; ok {
		return r, nil
	}
	return profile.RoleUser, nil
}

package profile

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("profile not found")
	ErrUnknownActor = errors.New("unknown actor")
	ErrForbidden    = errors.New("actor role does not permit this action")
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAgent      Role = "agent"
	RoleLender     Role = "lender"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// CanDecide reports whether the role may review, decide on and disburse
// applications.
func (r Role) CanDecide() bool {
	switch r {
	case RoleLender, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// Actor is the request-scoped identity resolved by the middleware and passed
// explicitly into every policy call; there is no ambient session state.
type Actor struct {
	UserID string
	Role   Role
}

// Profile mirrors the identity collaborator's user record; the verification
// flag is advisory, set by the external KYC flow.
type Profile struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID     string    `gorm:"size:32;uniqueIndex:ux_profiles_user_id" json:"user_id"`
	FirstName  string    `gorm:"size:128" json:"first_name,omitempty"`
	LastName   string    `gorm:"size:128" json:"last_name,omitempty"`
	Phone      string    `gorm:"size:32" json:"phone,omitempty"`
	NationalID string    `gorm:"size:64" json:"national_id,omitempty"`
	IsVerified bool      `gorm:"column:is_verified" json:"is_verified"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// UserRole is a role grant surfaced by the identity collaborator.
type UserRole struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID    string    `gorm:"size:32;index:idx_user_roles_user" json:"user_id"`
	Role      Role      `gorm:"type:enum('user','agent','lender','admin','superadmin')" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UserRole) TableName() string { return "user_roles" }

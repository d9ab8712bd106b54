package asset

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("asset not found")
	ErrInvalidType  = errors.New("invalid asset type")
	ErrInvalidValue = errors.New("asset value must be positive")
)

type Type string

const (
	TypeVehicle   Type = "vehicle"
	TypeEquipment Type = "equipment"
	TypeProperty  Type = "property"
	TypeMachinery Type = "machinery"
)

func (t Type) Valid() bool {
	switch t {
	case TypeVehicle, TypeEquipment, TypeProperty, TypeMachinery:
		return true
	}
	return false
}

// Asset is the collateral a borrower pledges; created together with its loan
// application and immutable afterwards.
type Asset struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Public identifier (32-char lowercase hex)
	AssetID     string         `gorm:"size:32;uniqueIndex:ux_assets_asset_id_active" json:"asset_id"`
	OwnerUserID string         `gorm:"size:32;index:idx_assets_owner" json:"owner_user_id"`
	Type        Type           `gorm:"type:enum('vehicle','equipment','property','machinery')" json:"type"`
	Make        string         `gorm:"size:128" json:"make,omitempty"`
	Model       string         `gorm:"size:128" json:"model,omitempty"`
	Year        int            `gorm:"column:year" json:"year,omitempty"`
	Value       float64        `gorm:"type:decimal(18,2)" json:"value"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Asset) TableName() string { return "assets" }

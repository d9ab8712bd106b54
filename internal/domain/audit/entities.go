package audit

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Payload carries free-form event detail, stored as JSON.
type Payload map[string]any

func (p Payload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *Payload) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
}

// Entry is one append-only audit record. Every administrator decision writes
// one in the same transaction as the decision itself.
type Entry struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	ActorID    string    `gorm:"size:32;index:idx_audit_logs_actor" json:"actor_id"`
	Action     string    `gorm:"size:64" json:"action"`
	EntityType string    `gorm:"size:32" json:"entity_type"`
	EntityID   string    `gorm:"size:32;index:idx_audit_logs_entity" json:"entity_id"`
	Payload    Payload   `gorm:"type:json" json:"payload,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "audit_logs" }

type Repository interface {
	Record(ctx context.Context, e *Entry) error
}

package auditmock

import (
	"context"

	"wezacredit-backend/internal/domain/audit"
)

var _ audit.Repository = (*Repo)(nil)

// Repo records entries in memory; RecordFn overrides when set.
type Repo struct {
	RecordFn func(ctx context.Context, e *audit.Entry) error
	Entries  []audit.Entry
}

func (m *Repo) Record(ctx context.Context, e *audit.Entry) error {
	if m.RecordFn != nil {
		return m.RecordFn(ctx, e)
	}
	m.Entries = append(m.Entries, *e)
	return nil
}

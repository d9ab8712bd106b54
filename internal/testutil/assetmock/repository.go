package assetmock

import (
	"context"
	"errors"

	domain "wezacredit-backend/internal/domain/asset"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies asset.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, a *domain.Asset) error
	GetByIDFn      func(ctx context.Context, id uint64) (*domain.Asset, error)
	GetByAssetIDFn func(ctx context.Context, assetID string) (*domain.Asset, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Asset) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Asset, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *Repo) GetByAssetID(ctx context.Context, assetID string) (*domain.Asset, error) {
	if m.GetByAssetIDFn != nil {
		return m.GetByAssetIDFn(ctx, assetID)
	}
	return nil, errors.New("not implemented")
}

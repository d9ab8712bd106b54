package asset

import "context"

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	// GetByID looks up by numeric primary key (FK target).
	GetByID(ctx context.Context, id uint64) (*Asset, error)
	GetByAssetID(ctx context.Context, assetID string) (*Asset, error)
}

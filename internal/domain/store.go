package domain

import "context"

// AssetStore holds registered data assets keyed by asset ID. Registration is
// last-write-wins; assets are never deleted. List returns assets in
// registration order.
type AssetStore interface {
	Put(ctx context.Context, asset DataAsset) error
	Get(ctx context.Context, id string) (DataAsset, error)
	List(ctx context.Context) ([]DataAsset, error)
	Count(ctx context.Context) (int64, error)
}

// BondStore holds liquidity bonds keyed by bond ID. List and ListByStatus
// return bonds in insertion order.
type BondStore interface {
	Insert(ctx context.Context, bond LiquidityBond) error
	Update(ctx context.Context, bond LiquidityBond) error
	Get(ctx context.Context, id string) (LiquidityBond, error)
	List(ctx context.Context) ([]LiquidityBond, error)
	ListByStatus(ctx context.Context, status BondStatus) ([]LiquidityBond, error)
	Count(ctx context.Context) (int64, error)
}

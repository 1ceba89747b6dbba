// Package valuation implements the data asset valuation engine: registration,
// base-value pricing, and monetization projections.
package valuation

import (
	"context"
	"log/slog"

	"github.com/alanyoungcy/databond/internal/domain"
)

// DefaultHighValueThreshold is the base-value cutoff used by callers that do
// not supply their own threshold.
const DefaultHighValueThreshold = 1000.0

// Revenue projection fractions of the current value. Monthly and annual are
// independently fixed, not derived from each other.
const (
	monthlyRevenueFraction = 0.05
	annualRevenueFraction  = 0.60
)

// Engine valuates and tracks monetizable data assets.
type Engine struct {
	assets domain.AssetStore
	logger *slog.Logger
}

// NewEngine creates an Engine over the given asset store.
func NewEngine(assets domain.AssetStore, logger *slog.Logger) *Engine {
	return &Engine{
		assets: assets,
		logger: logger.With(slog.String("component", "valuation_engine")),
	}
}

// RegisterAsset registers a data asset for monetization. Registering an
// asset ID that already exists replaces the prior record.
func (e *Engine) RegisterAsset(ctx context.Context, asset domain.DataAsset) error {
	if err := e.assets.Put(ctx, asset); err != nil {
		return err
	}
	e.logger.InfoContext(ctx, "asset registered",
		slog.String("asset_id", asset.AssetID),
		slog.String("quality", string(asset.Quality)),
		slog.Int64("volume", asset.Volume),
	)
	return nil
}

// ValuateAsset returns the current base value of the asset, or
// domain.ErrNotFound when the ID is not registered.
func (e *Engine) ValuateAsset(ctx context.Context, assetID string) (float64, error) {
	asset, err := e.assets.Get(ctx, assetID)
	if err != nil {
		return 0, err
	}
	return asset.BaseValue(), nil
}

// MonetizationPotential derives the revenue outlook for the asset from its
// current value: fixed monthly and annual fractions plus an ROI figure read
// straight from market demand.
func (e *Engine) MonetizationPotential(ctx context.Context, assetID string) (domain.MonetizationPotential, error) {
	asset, err := e.assets.Get(ctx, assetID)
	if err != nil {
		return domain.MonetizationPotential{}, err
	}
	value := asset.BaseValue()
	return domain.MonetizationPotential{
		CurrentValue:            value,
		MonthlyRevenuePotential: value * monthlyRevenueFraction,
		AnnualRevenuePotential:  value * annualRevenueFraction,
		ROIPercentage:           asset.MarketDemand * 100,
	}, nil
}

// ListHighValueAssets returns the assets whose base value meets the minimum,
// in registration order.
func (e *Engine) ListHighValueAssets(ctx context.Context, minValue float64) ([]domain.DataAsset, error) {
	all, err := e.assets.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.DataAsset
	for _, asset := range all {
		if asset.BaseValue() >= minValue {
			out = append(out, asset)
		}
	}
	return out, nil
}

// AssetCount returns the number of registered assets.
func (e *Engine) AssetCount(ctx context.Context) (int64, error) {
	return e.assets.Count(ctx)
}

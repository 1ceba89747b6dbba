package domain

import "strings"

// DataQuality is the quality tier of a data asset.
type DataQuality string

const (
	QualityLow     DataQuality = "low"
	QualityMedium  DataQuality = "medium"
	QualityHigh    DataQuality = "high"
	QualityPremium DataQuality = "premium"
)

// BaseRate returns the per-unit monetary rate for the quality tier.
// Unknown tiers rate at zero.
func (q DataQuality) BaseRate() float64 {
	switch q {
	case QualityLow:
		return 0.01
	case QualityMedium:
		return 0.05
	case QualityHigh:
		return 0.15
	case QualityPremium:
		return 0.50
	default:
		return 0
	}
}

// Valid reports whether q is one of the known quality tiers.
func (q DataQuality) Valid() bool {
	switch q {
	case QualityLow, QualityMedium, QualityHigh, QualityPremium:
		return true
	}
	return false
}

// ParseQuality maps a case-insensitive tier name to a DataQuality.
func ParseQuality(s string) (DataQuality, bool) {
	q := DataQuality(strings.ToLower(strings.TrimSpace(s)))
	return q, q.Valid()
}

// DataAsset is a monetizable data asset registered with the valuation engine.
// UniquenessScore and MarketDemand are expected in [0, 1]; out-of-range
// inputs are not rejected and simply produce out-of-range multipliers.
type DataAsset struct {
	AssetID         string      `json:"asset_id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	DataType        string      `json:"data_type"`
	Volume          int64       `json:"volume"` // records or GB
	Quality         DataQuality `json:"quality"`
	UniquenessScore float64     `json:"uniqueness_score"`
	MarketDemand    float64     `json:"market_demand"`
}

// BaseValue computes the asset's base monetary value: volume priced at the
// quality tier rate, scaled by uniqueness (1x-3x) and demand (1x-4x) bonuses.
// Pure and time-independent.
func (a DataAsset) BaseValue() float64 {
	volumeValue := float64(a.Volume) * a.Quality.BaseRate()
	uniquenessBonus := 1 + a.UniquenessScore*2
	demandBonus := 1 + a.MarketDemand*3
	return volumeValue * uniquenessBonus * demandBonus
}

// MonetizationPotential summarizes the revenue outlook for an asset.
// Monthly and annual figures are independent fixed fractions of the current
// value, not multiples of each other.
type MonetizationPotential struct {
	CurrentValue            float64 `json:"current_value"`
	MonthlyRevenuePotential float64 `json:"monthly_revenue_potential"`
	AnnualRevenuePotential  float64 `json:"annual_revenue_potential"`
	ROIPercentage           float64 `json:"roi_percentage"`
}

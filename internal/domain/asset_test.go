package domain

import (
	"math"
	"testing"
)

func TestBaseRatePerQuality(t *testing.T) {
	tests := []struct {
		quality DataQuality
		rate    float64
	}{
		{QualityLow, 0.01},
		{QualityMedium, 0.05},
		{QualityHigh, 0.15},
		{QualityPremium, 0.50},
		{DataQuality("bogus"), 0},
	}
	for _, tt := range tests {
		if got := tt.quality.BaseRate(); got != tt.rate {
			t.Errorf("BaseRate(%q) = %v, want %v", tt.quality, got, tt.rate)
		}
	}
}

func TestBaseValueMaxMultipliers(t *testing.T) {
	// Premium tier with both scores at 1 works out to exactly 6x the volume:
	// v * 0.50 * (1+2) * (1+3).
	for _, volume := range []int64{1, 100, 50000} {
		asset := DataAsset{
			AssetID:         "ASSET-MAX",
			Volume:          volume,
			Quality:         QualityPremium,
			UniquenessScore: 1,
			MarketDemand:    1,
		}
		want := 6 * float64(volume)
		if got := asset.BaseValue(); math.Abs(got-want) > 1e-9 {
			t.Errorf("BaseValue(volume=%d) = %v, want %v", volume, got, want)
		}
	}
}

func TestBaseValueNeutralScores(t *testing.T) {
	asset := DataAsset{
		AssetID: "ASSET-NEUTRAL",
		Volume:  10000,
		Quality: QualityHigh,
	}
	// Zero uniqueness and demand leave both bonuses at 1.
	if got, want := asset.BaseValue(), 10000*0.15; math.Abs(got-want) > 1e-9 {
		t.Errorf("BaseValue() = %v, want %v", got, want)
	}
}

func TestParseQuality(t *testing.T) {
	if q, ok := ParseQuality("  PREMIUM "); !ok || q != QualityPremium {
		t.Errorf("ParseQuality(PREMIUM) = %q, %v", q, ok)
	}
	if _, ok := ParseQuality("platinum"); ok {
		t.Error("ParseQuality(platinum) accepted an unknown tier")
	}
}

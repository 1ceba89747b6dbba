// Package seed deploys the initial enterprise portfolio: a fixed set of
// sample data assets and the liquidity bonds issued against them, for
// demonstrations and local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alanyoungcy/databond/internal/bonds"
	"github.com/alanyoungcy/databond/internal/domain"
	"github.com/alanyoungcy/databond/internal/valuation"
)

// BondLine is one issued bond in the deployment summary.
type BondLine struct {
	BondID       string  `json:"bond_id"`
	AssetID      string  `json:"asset_id"`
	Principal    float64 `json:"principal"`
	InterestRate float64 `json:"interest_rate"`
	Issuer       string  `json:"issuer"`
	CurrentValue float64 `json:"current_value"`
}

// Summary describes a completed enterprise deployment.
type Summary struct {
	DeploymentDate time.Time  `json:"deployment_date"`
	TotalBonds     int        `json:"total_bonds"`
	TotalPrincipal float64    `json:"total_principal"`
	PortfolioValue float64    `json:"current_portfolio_value"`
	Bonds          []BondLine `json:"bonds"`
}

type entry struct {
	asset domain.DataAsset
	bond  bonds.CreateBondInput
}

// enterpriseEntries is the fixed demonstration portfolio.
var enterpriseEntries = []entry{
	{
		asset: domain.DataAsset{
			AssetID:         "ENT-DATA-001",
			Name:            "Enterprise Customer Profiles",
			Description:     "High-quality B2B customer data with enrichment",
			DataType:        "structured",
			Volume:          50000,
			Quality:         domain.QualityPremium,
			UniquenessScore: 0.92,
			MarketDemand:    0.95,
		},
		bond: bonds.CreateBondInput{
			DataAssetID:     "ENT-DATA-001",
			PrincipalAmount: 250000,
			InterestRate:    0.08,
			MaturityDays:    180,
			Issuer:          "Enterprise-Alpha",
		},
	},
	{
		asset: domain.DataAsset{
			AssetID:         "TXN-DATA-002",
			Name:            "E-commerce Transaction Analytics",
			Description:     "Real-time transaction data with behavioral patterns",
			DataType:        "time-series",
			Volume:          1000000,
			Quality:         domain.QualityHigh,
			UniquenessScore: 0.88,
			MarketDemand:    0.90,
		},
		bond: bonds.CreateBondInput{
			DataAssetID:     "TXN-DATA-002",
			PrincipalAmount: 500000,
			InterestRate:    0.07,
			MaturityDays:    365,
			Issuer:          "Enterprise-Beta",
		},
	},
	{
		asset: domain.DataAsset{
			AssetID:         "UBI-DATA-003",
			Name:            "User Behavior Intelligence",
			Description:     "ML-enriched user behavior patterns and predictions",
			DataType:        "events",
			Volume:          2500000,
			Quality:         domain.QualityPremium,
			UniquenessScore: 0.95,
			MarketDemand:    0.93,
		},
		bond: bonds.CreateBondInput{
			DataAssetID:     "UBI-DATA-003",
			PrincipalAmount: 750000,
			InterestRate:    0.09,
			MaturityDays:    270,
			Issuer:          "Enterprise-Gamma",
		},
	},
	{
		asset: domain.DataAsset{
			AssetID:         "FIN-DATA-004",
			Name:            "Financial Services Analytics",
			Description:     "Anonymized financial transaction and credit data",
			DataType:        "structured",
			Volume:          100000,
			Quality:         domain.QualityPremium,
			UniquenessScore: 0.97,
			MarketDemand:    0.98,
		},
		bond: bonds.CreateBondInput{
			DataAssetID:     "FIN-DATA-004",
			PrincipalAmount: 1000000,
			InterestRate:    0.10,
			MaturityDays:    365,
			Issuer:          "Enterprise-Delta",
		},
	},
	{
		asset: domain.DataAsset{
			AssetID:         "HLT-DATA-005",
			Name:            "Healthcare Analytics Data",
			Description:     "De-identified healthcare outcomes and treatment data",
			DataType:        "structured",
			Volume:          75000,
			Quality:         domain.QualityPremium,
			UniquenessScore: 0.99,
			MarketDemand:    0.96,
		},
		bond: bonds.CreateBondInput{
			DataAssetID:     "HLT-DATA-005",
			PrincipalAmount: 850000,
			InterestRate:    0.11,
			MaturityDays:    180,
			Issuer:          "Enterprise-Epsilon",
		},
	},
}

// Deploy registers the enterprise sample assets and issues one bond against
// each, then returns the deployment summary.
func Deploy(ctx context.Context, engine *valuation.Engine, manager *bonds.Manager, logger *slog.Logger) (Summary, error) {
	logger = logger.With(slog.String("component", "seed"))

	summary := Summary{DeploymentDate: time.Now().UTC()}
	for _, e := range enterpriseEntries {
		if err := engine.RegisterAsset(ctx, e.asset); err != nil {
			return Summary{}, fmt.Errorf("seed: register asset %s: %w", e.asset.AssetID, err)
		}
		bond, err := manager.CreateBond(ctx, e.bond)
		if err != nil {
			return Summary{}, fmt.Errorf("seed: create bond for %s: %w", e.bond.DataAssetID, err)
		}
		summary.Bonds = append(summary.Bonds, BondLine{
			BondID:       bond.BondID,
			AssetID:      bond.DataAssetID,
			Principal:    bond.PrincipalAmount,
			InterestRate: bond.InterestRate,
			Issuer:       bond.Issuer,
			CurrentValue: bond.Value(time.Now().UTC()),
		})
		summary.TotalPrincipal += bond.PrincipalAmount
	}
	summary.TotalBonds = len(summary.Bonds)

	value, err := manager.TotalValue(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("seed: portfolio value: %w", err)
	}
	summary.PortfolioValue = value

	logger.InfoContext(ctx, "enterprise portfolio deployed",
		slog.Int("bonds", summary.TotalBonds),
		slog.Float64("total_principal", summary.TotalPrincipal),
		slog.Float64("portfolio_value", summary.PortfolioValue),
	)
	return summary, nil
}

// Render formats the deployment summary for CLI output.
func (s Summary) Render() string {
	p := message.NewPrinter(language.English)
	rule := strings.Repeat("=", 60)

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "LIQUIDITY BOND DEPLOYMENT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Deployment Date: %s\n", s.DeploymentDate.Format(time.RFC3339))
	fmt.Fprintf(&b, "Total Bonds Issued: %d\n", s.TotalBonds)
	p.Fprintf(&b, "Total Principal: $%.2f\n", s.TotalPrincipal)
	p.Fprintf(&b, "Portfolio Value: $%.2f\n", s.PortfolioValue)
	fmt.Fprintf(&b, "\nBond Details:\n%s\n", strings.Repeat("-", 60))
	for i, bond := range s.Bonds {
		fmt.Fprintf(&b, "\nBond #%d\n", i+1)
		fmt.Fprintf(&b, "  ID: %s\n", bond.BondID)
		fmt.Fprintf(&b, "  Asset: %s\n", bond.AssetID)
		p.Fprintf(&b, "  Principal: $%.2f\n", bond.Principal)
		fmt.Fprintf(&b, "  Rate: %.1f%%\n", bond.InterestRate*100)
		fmt.Fprintf(&b, "  Issuer: %s\n", bond.Issuer)
		p.Fprintf(&b, "  Current Value: $%.2f\n", bond.CurrentValue)
	}
	fmt.Fprintf(&b, "\n%s\n", rule)
	return b.String()
}

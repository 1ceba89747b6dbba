package seed

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/alanyoungcy/databond/internal/bonds"
	"github.com/alanyoungcy/databond/internal/domain"
	"github.com/alanyoungcy/databond/internal/store/memory"
	"github.com/alanyoungcy/databond/internal/valuation"
)

func TestDeploy(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := valuation.NewEngine(memory.NewAssetStore(), logger)
	manager := bonds.NewManager(memory.NewBondStore(), nil, logger)

	summary, err := Deploy(context.Background(), engine, manager, logger)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}

	if summary.TotalBonds != 5 {
		t.Fatalf("TotalBonds = %d, want 5", summary.TotalBonds)
	}
	if summary.TotalPrincipal != 3350000 {
		t.Errorf("TotalPrincipal = %.2f, want 3350000", summary.TotalPrincipal)
	}
	// All bonds mature at the moment of issuance, so each is worth exactly
	// its principal right after deployment.
	if summary.PortfolioValue != 3350000 {
		t.Errorf("PortfolioValue = %.2f, want 3350000", summary.PortfolioValue)
	}

	n, err := engine.AssetCount(context.Background())
	if err != nil {
		t.Fatalf("AssetCount: %v", err)
	}
	if n != 5 {
		t.Errorf("AssetCount = %d, want 5", n)
	}

	bond, err := manager.GetBond(context.Background(), summary.Bonds[3].BondID)
	if err != nil {
		t.Fatalf("GetBond: %v", err)
	}
	if bond.DataAssetID != "FIN-DATA-004" || bond.InterestRate != 0.10 || bond.Issuer != "Enterprise-Delta" {
		t.Errorf("unexpected bond: %+v", bond)
	}
	if bond.Status != domain.BondActive {
		t.Errorf("Status = %s, want %s", bond.Status, domain.BondActive)
	}
}

func TestDeployIsRepeatableAcrossFreshStores(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for i := 0; i < 2; i++ {
		engine := valuation.NewEngine(memory.NewAssetStore(), logger)
		manager := bonds.NewManager(memory.NewBondStore(), nil, logger)
		if _, err := Deploy(context.Background(), engine, manager, logger); err != nil {
			t.Fatalf("Deploy run %d: %v", i+1, err)
		}
	}
}

func TestSummaryRender(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := valuation.NewEngine(memory.NewAssetStore(), logger)
	manager := bonds.NewManager(memory.NewBondStore(), nil, logger)

	summary, err := Deploy(context.Background(), engine, manager, logger)
	if err != nil {
		t.Fatalf("Deploy: %v", err)
	}

	out := summary.Render()
	for _, want := range []string{
		"LIQUIDITY BOND DEPLOYMENT",
		"Total Bonds Issued: 5",
		"Total Principal: $3,350,000.00",
		"Enterprise-Epsilon",
		"HLT-DATA-005",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}
}

package bonds

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/alanyoungcy/databond/internal/domain"
	"github.com/alanyoungcy/databond/internal/store/memory"
)

var fixedNow = time.Date(2026, 4, 15, 9, 30, 0, 0, time.UTC)

func newTestManager(store domain.BondStore) *Manager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewManager(store, nil, logger)
	m.now = func() time.Time { return fixedNow }
	return m
}

func TestCreateBond(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(memory.NewBondStore())

	bond, err := m.CreateBond(ctx, CreateBondInput{
		DataAssetID:     "DATA-001",
		PrincipalAmount: 10000,
		InterestRate:    0.05,
		MaturityDays:    90,
		Issuer:          "test-issuer",
	})
	if err != nil {
		t.Fatalf("CreateBond: %v", err)
	}

	if !strings.HasPrefix(bond.BondID, "LB-DATA-001-") {
		t.Errorf("BondID = %q, want LB-DATA-001- prefix", bond.BondID)
	}
	if bond.Status != domain.BondActive {
		t.Errorf("status = %s, want active", bond.Status)
	}
	if !bond.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v, want %v", bond.CreatedAt, fixedNow)
	}
	// The nominal term does not move the maturity date off the issue instant.
	if !bond.MaturityDate.Equal(fixedNow) {
		t.Errorf("MaturityDate = %v, want issuance instant %v", bond.MaturityDate, fixedNow)
	}

	stored, err := m.GetBond(ctx, bond.BondID)
	if err != nil {
		t.Fatalf("GetBond: %v", err)
	}
	if stored.PrincipalAmount != 10000 || stored.Issuer != "test-issuer" {
		t.Errorf("stored bond = %+v", stored)
	}
}

func TestGetBondMissing(t *testing.T) {
	m := newTestManager(memory.NewBondStore())
	if _, err := m.GetBond(context.Background(), "LB-nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetBond(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListBondsStatusFilter(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBondStore()
	m := newTestManager(store)

	first, err := m.CreateBond(ctx, CreateBondInput{DataAssetID: "A", PrincipalAmount: 100, Issuer: "x"})
	if err != nil {
		t.Fatalf("CreateBond: %v", err)
	}
	m.now = func() time.Time { return fixedNow.Add(time.Second) }
	if _, err := m.CreateBond(ctx, CreateBondInput{DataAssetID: "B", PrincipalAmount: 200, Issuer: "x"}); err != nil {
		t.Fatalf("CreateBond: %v", err)
	}
	if _, err := m.RedeemBond(ctx, first.BondID); err != nil {
		t.Fatalf("RedeemBond: %v", err)
	}

	all, err := m.ListBonds(ctx, "")
	if err != nil {
		t.Fatalf("ListBonds(all): %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListBonds(all) returned %d bonds, want 2", len(all))
	}

	active, err := m.ListBonds(ctx, domain.BondActive)
	if err != nil {
		t.Fatalf("ListBonds(active): %v", err)
	}
	if len(active) != 1 || active[0].DataAssetID != "B" {
		t.Errorf("ListBonds(active) = %+v, want only bond B", active)
	}

	redeemed, err := m.ListBonds(ctx, domain.BondRedeemed)
	if err != nil {
		t.Fatalf("ListBonds(redeemed): %v", err)
	}
	if len(redeemed) != 1 || redeemed[0].BondID != first.BondID {
		t.Errorf("ListBonds(redeemed) = %+v, want only the first bond", redeemed)
	}
}

func TestRedeemBondOnce(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(memory.NewBondStore())

	bond, err := m.CreateBond(ctx, CreateBondInput{DataAssetID: "A", PrincipalAmount: 10000, InterestRate: 0.10, Issuer: "x"})
	if err != nil {
		t.Fatalf("CreateBond: %v", err)
	}

	final, err := m.RedeemBond(ctx, bond.BondID)
	if err != nil {
		t.Fatalf("RedeemBond: %v", err)
	}
	if final < 10000 {
		t.Errorf("final value %v below principal", final)
	}

	stored, err := m.GetBond(ctx, bond.BondID)
	if err != nil {
		t.Fatalf("GetBond: %v", err)
	}
	if stored.Status != domain.BondRedeemed {
		t.Errorf("status = %s, want redeemed", stored.Status)
	}

	if _, err := m.RedeemBond(ctx, bond.BondID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("second RedeemBond error = %v, want ErrInvalidState", err)
	}
}

func TestTotalValueActiveOnly(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBondStore()
	m := newTestManager(store)

	// Mixed statuses inserted directly: only the active bonds count, and the
	// redeemed/defaulted ones contribute zero even with big principals.
	created := fixedNow.AddDate(0, 0, -10)
	seed := []domain.LiquidityBond{
		{BondID: "a1", PrincipalAmount: 10000, Status: domain.BondActive, CreatedAt: created, MaturityDate: created},
		{BondID: "a2", PrincipalAmount: 15000, Status: domain.BondActive, CreatedAt: created, MaturityDate: created},
		{BondID: "r1", PrincipalAmount: 99999, Status: domain.BondRedeemed, CreatedAt: created, MaturityDate: created},
		{BondID: "d1", PrincipalAmount: 88888, Status: domain.BondDefaulted, CreatedAt: created, MaturityDate: created},
	}
	for _, b := range seed {
		if err := store.Insert(ctx, b); err != nil {
			t.Fatalf("Insert %s: %v", b.BondID, err)
		}
	}

	total, err := m.TotalValue(ctx)
	if err != nil {
		t.Fatalf("TotalValue: %v", err)
	}
	// Zero-duration active bonds value at face.
	if math.Abs(total-25000) > 1e-9 {
		t.Errorf("TotalValue = %v, want 25000", total)
	}
}

func TestTotalValueIncludesAccrual(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBondStore()
	m := newTestManager(store)

	created := fixedNow.AddDate(0, 0, -100)
	bond := domain.LiquidityBond{
		BondID:          "a1",
		PrincipalAmount: 10000,
		InterestRate:    0.10,
		Status:          domain.BondActive,
		CreatedAt:       created,
		MaturityDate:    created.AddDate(0, 0, 365),
	}
	if err := store.Insert(ctx, bond); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	total, err := m.TotalValue(ctx)
	if err != nil {
		t.Fatalf("TotalValue: %v", err)
	}
	want := 10000 + 10000*0.10*100/365
	if math.Abs(total-want) > 1e-9 {
		t.Errorf("TotalValue = %v, want %v", total, want)
	}
}

package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func activeBond(created, maturity time.Time) LiquidityBond {
	return LiquidityBond{
		BondID:          "LB-DATA-001-1",
		DataAssetID:     "DATA-001",
		PrincipalAmount: 10000,
		InterestRate:    0.10,
		MaturityDate:    maturity,
		CreatedAt:       created,
		Status:          BondActive,
		Issuer:          "test-issuer",
	}
}

func TestValueTerminalStatusesAreZero(t *testing.T) {
	for _, status := range []BondStatus{BondRedeemed, BondDefaulted} {
		b := activeBond(testNow.AddDate(-1, 0, 0), testNow.AddDate(1, 0, 0))
		b.Status = status
		if got := b.Value(testNow); got != 0 {
			t.Errorf("Value() with status %s = %v, want 0", status, got)
		}
	}
}

func TestValueZeroDurationReturnsPrincipal(t *testing.T) {
	b := activeBond(testNow, testNow)
	// Even far in the future a zero-duration bond stays at face value.
	for _, at := range []time.Time{testNow, testNow.AddDate(2, 0, 0)} {
		if got := b.Value(at); got != b.PrincipalAmount {
			t.Errorf("Value(%v) = %v, want principal %v", at, got, b.PrincipalAmount)
		}
	}
}

func TestValueStraightLineAccrual(t *testing.T) {
	created := testNow.AddDate(0, 0, -100)
	maturity := created.AddDate(0, 0, 365)
	b := activeBond(created, maturity)

	want := 10000 + 10000*0.10*100/365
	if got := b.Value(testNow); math.Abs(got-want) > 1e-9 {
		t.Errorf("Value() = %v, want %v", got, want)
	}
}

func TestValueAccruesPastMaturityUncapped(t *testing.T) {
	created := testNow.AddDate(0, 0, -730)
	maturity := created.AddDate(0, 0, 365)
	b := activeBond(created, maturity)

	// Two nominal terms elapsed: interest runs to twice the stated rate.
	want := 10000 + 10000*0.10*730/365
	if got := b.Value(testNow); math.Abs(got-want) > 1e-9 {
		t.Errorf("Value() past maturity = %v, want %v", got, want)
	}
	if got := b.Value(testNow); got <= 10000*1.10 {
		t.Errorf("Value() past maturity = %v, expected above the full-rate value", got)
	}
}

func TestRedeemTransitionsOnce(t *testing.T) {
	created := testNow.AddDate(0, 0, -50)
	b := activeBond(created, created.AddDate(0, 0, 100))

	final, err := b.Redeem(testNow)
	if err != nil {
		t.Fatalf("Redeem() failed: %v", err)
	}
	if b.Status != BondRedeemed {
		t.Fatalf("status after redeem = %s, want %s", b.Status, BondRedeemed)
	}
	if final < b.PrincipalAmount {
		t.Errorf("redeemed value %v below principal %v", final, b.PrincipalAmount)
	}
	if got := b.Value(testNow); got != 0 {
		t.Errorf("Value() after redeem = %v, want 0", got)
	}

	if _, err := b.Redeem(testNow); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second Redeem() error = %v, want ErrInvalidState", err)
	}
}

func TestRedeemNonActiveStatuses(t *testing.T) {
	for _, status := range []BondStatus{BondPending, BondMatured, BondDefaulted} {
		b := activeBond(testNow, testNow)
		b.Status = status
		if _, err := b.Redeem(testNow); !errors.Is(err, ErrInvalidState) {
			t.Errorf("Redeem() with status %s error = %v, want ErrInvalidState", status, err)
		}
	}
}

func TestNewBondID(t *testing.T) {
	id := NewBondID("DATA-001", testNow)
	if id[:len("LB-DATA-001-")] != "LB-DATA-001-" {
		t.Errorf("NewBondID() = %q, want LB-DATA-001- prefix", id)
	}
	if NewBondID("DATA-001", testNow.Add(time.Nanosecond)) == id {
		t.Error("NewBondID() collided across distinct instants")
	}
}

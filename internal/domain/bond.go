package domain

import (
	"fmt"
	"strings"
	"time"
)

// BondStatus is the lifecycle state of a liquidity bond.
type BondStatus string

const (
	BondPending   BondStatus = "pending"
	BondActive    BondStatus = "active"
	BondMatured   BondStatus = "matured"
	BondRedeemed  BondStatus = "redeemed"
	BondDefaulted BondStatus = "defaulted"
)

// Valid reports whether s is a known bond status.
func (s BondStatus) Valid() bool {
	switch s {
	case BondPending, BondActive, BondMatured, BondRedeemed, BondDefaulted:
		return true
	}
	return false
}

// AllBondStatuses lists every status in declaration order, for breakdowns.
var AllBondStatuses = []BondStatus{
	BondPending, BondActive, BondMatured, BondRedeemed, BondDefaulted,
}

// ParseBondStatus maps a case-insensitive status name to a BondStatus.
func ParseBondStatus(s string) (BondStatus, bool) {
	st := BondStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

// LiquidityBond is capital advanced against a data asset, accruing simple
// interest until redeemed. DataAssetID is a reference by convention; the
// manager does not verify the asset exists.
type LiquidityBond struct {
	BondID          string     `json:"bond_id"`
	DataAssetID     string     `json:"data_asset_id"`
	PrincipalAmount float64    `json:"principal_amount"`
	InterestRate    float64    `json:"interest_rate"` // annualized fraction, simple interest
	MaturityDate    time.Time  `json:"maturity_date"`
	CreatedAt       time.Time  `json:"created_at"`
	Status          BondStatus `json:"status"`
	Issuer          string     `json:"issuer"`
	Holder          string     `json:"holder,omitempty"`
}

// NewBondID derives a bond identifier from the referenced asset and the
// issuance instant. Nanosecond precision keeps IDs collision-free under
// normal clock resolution.
func NewBondID(assetID string, at time.Time) string {
	return fmt.Sprintf("LB-%s-%d", assetID, at.UnixNano())
}

// Value returns the bond's worth at the given instant: zero once redeemed or
// defaulted, the bare principal for zero-duration bonds, and otherwise the
// principal plus straight-line accrued interest. Elapsed and total durations
// are truncated to whole days. Accrual is deliberately uncapped: a bond held
// past its nominal maturity keeps accruing beyond the full stated rate.
func (b LiquidityBond) Value(now time.Time) float64 {
	if b.Status == BondRedeemed || b.Status == BondDefaulted {
		return 0
	}

	daysElapsed := int64(now.Sub(b.CreatedAt).Hours() / 24)
	daysTotal := int64(b.MaturityDate.Sub(b.CreatedAt).Hours() / 24)

	if daysTotal == 0 {
		return b.PrincipalAmount
	}

	accrued := b.PrincipalAmount * b.InterestRate * float64(daysElapsed) / float64(daysTotal)
	return b.PrincipalAmount + accrued
}

// Redeem terminates the bond's accrual, fixing and returning its final value.
// Only an active bond can be redeemed; the transition to redeemed happens
// exactly once and is irreversible.
func (b *LiquidityBond) Redeem(now time.Time) (float64, error) {
	if b.Status != BondActive {
		return 0, fmt.Errorf("cannot redeem bond in %s status: %w", b.Status, ErrInvalidState)
	}
	final := b.Value(now)
	b.Status = BondRedeemed
	return final, nil
}

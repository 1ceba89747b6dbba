// Package bonds implements the liquidity bond lifecycle: issuance, lookup,
// valuation, and redemption, with lifecycle events published on the signal
// bus when one is attached.
package bonds

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/alanyoungcy/databond/internal/domain"
)

// CreateBondInput carries the parameters for issuing a new bond. The
// referenced asset is not checked for existence; the reference is by
// convention only.
type CreateBondInput struct {
	DataAssetID     string
	PrincipalAmount float64
	InterestRate    float64 // annualized fraction, e.g. 0.08
	MaturityDays    int
	Issuer          string
}

// Manager owns the bond registry and drives the bond lifecycle.
type Manager struct {
	bonds  domain.BondStore
	bus    domain.SignalBus
	now    func() time.Time
	logger *slog.Logger
}

// NewManager creates a Manager over the given bond store. bus may be nil,
// in which case no lifecycle events are published.
func NewManager(bonds domain.BondStore, bus domain.SignalBus, logger *slog.Logger) *Manager {
	return &Manager{
		bonds:  bonds,
		bus:    bus,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With(slog.String("component", "bond_manager")),
	}
}

// CreateBond issues a new bond in active status and stores it. The maturity
// date is recorded as the issuance instant; the nominal term in
// in.MaturityDays is accepted but does not advance it, so a freshly issued
// bond values at face until its maturity date is adjusted externally.
func (m *Manager) CreateBond(ctx context.Context, in CreateBondInput) (domain.LiquidityBond, error) {
	now := m.now()
	bond := domain.LiquidityBond{
		BondID:          domain.NewBondID(in.DataAssetID, now),
		DataAssetID:     in.DataAssetID,
		PrincipalAmount: in.PrincipalAmount,
		InterestRate:    in.InterestRate,
		MaturityDate:    now,
		CreatedAt:       now,
		Status:          domain.BondActive,
		Issuer:          in.Issuer,
	}

	if err := m.bonds.Insert(ctx, bond); err != nil {
		return domain.LiquidityBond{}, err
	}

	m.logger.InfoContext(ctx, "bond issued",
		slog.String("bond_id", bond.BondID),
		slog.String("asset_id", bond.DataAssetID),
		slog.Float64("principal", bond.PrincipalAmount),
		slog.Float64("interest_rate", bond.InterestRate),
		slog.String("issuer", bond.Issuer),
	)
	m.publish(ctx, domain.ChannelBondIssued, map[string]any{
		"event":     "bond_issued",
		"bond_id":   bond.BondID,
		"asset_id":  bond.DataAssetID,
		"principal": bond.PrincipalAmount,
		"issuer":    bond.Issuer,
	})

	return bond, nil
}

// GetBond returns the bond for the given ID, or domain.ErrNotFound.
func (m *Manager) GetBond(ctx context.Context, bondID string) (domain.LiquidityBond, error) {
	return m.bonds.Get(ctx, bondID)
}

// ListBonds returns all bonds, or only those matching status when it is
// non-empty. Order is insertion order.
func (m *Manager) ListBonds(ctx context.Context, status domain.BondStatus) ([]domain.LiquidityBond, error) {
	if status == "" {
		return m.bonds.List(ctx)
	}
	return m.bonds.ListByStatus(ctx, status)
}

// RedeemBond redeems an active bond, persists the redeemed record, and
// returns the final value fixed at the moment of the call. A bond that is
// not active fails with domain.ErrInvalidState.
func (m *Manager) RedeemBond(ctx context.Context, bondID string) (float64, error) {
	bond, err := m.bonds.Get(ctx, bondID)
	if err != nil {
		return 0, err
	}

	final, err := bond.Redeem(m.now())
	if err != nil {
		return 0, err
	}
	if err := m.bonds.Update(ctx, bond); err != nil {
		return 0, err
	}

	m.logger.InfoContext(ctx, "bond redeemed",
		slog.String("bond_id", bond.BondID),
		slog.Float64("final_value", final),
	)
	m.publish(ctx, domain.ChannelBondRedeemed, map[string]any{
		"event":       "bond_redeemed",
		"bond_id":     bond.BondID,
		"asset_id":    bond.DataAssetID,
		"final_value": final,
	})

	return final, nil
}

// TotalValue sums the current value over the active bonds; bonds in any
// other status contribute nothing.
func (m *Manager) TotalValue(ctx context.Context) (float64, error) {
	active, err := m.bonds.ListByStatus(ctx, domain.BondActive)
	if err != nil {
		return 0, err
	}
	now := m.now()
	var total float64
	for _, bond := range active {
		total += bond.Value(now)
	}
	return total, nil
}

// BondCount returns the number of bonds in the registry across all statuses.
func (m *Manager) BondCount(ctx context.Context) (int64, error) {
	return m.bonds.Count(ctx)
}

func (m *Manager) publish(ctx context.Context, channel string, payload map[string]any) {
	if m.bus == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := m.bus.Publish(ctx, channel, data); err != nil {
		m.logger.WarnContext(ctx, "event publish failed",
			slog.String("channel", channel),
			slog.String("error", err.Error()),
		)
	}
}

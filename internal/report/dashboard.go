// Package report builds portfolio-level views over the bond manager and
// valuation engine: aggregate metrics, top performers, maturity schedules,
// and a formatted text report.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alanyoungcy/databond/internal/bonds"
	"github.com/alanyoungcy/databond/internal/domain"
	"github.com/alanyoungcy/databond/internal/valuation"
)

// DefaultTopLimit is the number of top-performing bonds reported when the
// caller does not specify a limit.
const DefaultTopLimit = 5

// PortfolioMetrics aggregates the state of the whole bond portfolio.
type PortfolioMetrics struct {
	Timestamp       time.Time      `json:"timestamp"`
	TotalBonds      int            `json:"total_bonds"`
	ActiveBonds     int            `json:"active_bonds"`
	TotalPrincipal  float64        `json:"total_principal"`
	PortfolioValue  float64        `json:"portfolio_value"`
	AccruedInterest float64        `json:"accrued_interest"`
	ROIPercentage   float64        `json:"roi_percentage"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
	AverageBondSize float64        `json:"average_bond_size"`
}

// BondPerformance is a per-bond return snapshot used in top-performer
// rankings. ROI here is (current value - principal) / principal. This is a
// different figure from the asset-level ROI, which reads market demand.
type BondPerformance struct {
	BondID         string  `json:"bond_id"`
	AssetID        string  `json:"asset_id"`
	Principal      float64 `json:"principal"`
	CurrentValue   float64 `json:"current_value"`
	InterestEarned float64 `json:"interest_earned"`
	ROI            float64 `json:"roi"`
	Issuer         string  `json:"issuer"`
}

// MaturityEntry is one bond's slot in the maturity schedule.
type MaturityEntry struct {
	BondID        string    `json:"bond_id"`
	MaturityDate  time.Time `json:"maturity_date"`
	DaysRemaining int       `json:"days_remaining"`
	Principal     float64   `json:"principal"`
	ExpectedValue float64   `json:"expected_value"`
}

// MaturitySchedule groups active bonds by time to maturity.
type MaturitySchedule struct {
	Next30Days    []MaturityEntry `json:"next_30_days"`
	Next90Days    []MaturityEntry `json:"next_90_days"`
	Next180Days   []MaturityEntry `json:"next_180_days"`
	Beyond180Days []MaturityEntry `json:"beyond_180_days"`
}

// PortfolioSummary is the compact portfolio view served by the API facade.
type PortfolioSummary struct {
	TotalAssets    int64     `json:"total_assets"`
	TotalBonds     int64     `json:"total_bonds"`
	PortfolioValue float64   `json:"portfolio_value"`
	Timestamp      time.Time `json:"timestamp"`
}

// Dashboard reads from the bond manager and valuation engine to produce
// portfolio reports. It never mutates either.
type Dashboard struct {
	bonds     *bonds.Manager
	valuation *valuation.Engine
	now       func() time.Time
}

// NewDashboard creates a Dashboard over the given services.
func NewDashboard(manager *bonds.Manager, engine *valuation.Engine) *Dashboard {
	return &Dashboard{
		bonds:     manager,
		valuation: engine,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Summary returns the compact portfolio summary: registry sizes plus the
// total value of the active bonds.
func (d *Dashboard) Summary(ctx context.Context) (PortfolioSummary, error) {
	totalAssets, err := d.valuation.AssetCount(ctx)
	if err != nil {
		return PortfolioSummary{}, err
	}
	totalBonds, err := d.bonds.BondCount(ctx)
	if err != nil {
		return PortfolioSummary{}, err
	}
	value, err := d.bonds.TotalValue(ctx)
	if err != nil {
		return PortfolioSummary{}, err
	}
	return PortfolioSummary{
		TotalAssets:    totalAssets,
		TotalBonds:     totalBonds,
		PortfolioValue: value,
		Timestamp:      d.now(),
	}, nil
}

// Metrics computes comprehensive portfolio metrics across all bonds.
func (d *Dashboard) Metrics(ctx context.Context) (PortfolioMetrics, error) {
	all, err := d.bonds.ListBonds(ctx, "")
	if err != nil {
		return PortfolioMetrics{}, err
	}
	now := d.now()

	var totalPrincipal, activePrincipal, activeValue float64
	var activeCount int
	breakdown := make(map[string]int, len(domain.AllBondStatuses))
	for _, status := range domain.AllBondStatuses {
		breakdown[string(status)] = 0
	}

	for _, bond := range all {
		totalPrincipal += bond.PrincipalAmount
		breakdown[string(bond.Status)]++
		if bond.Status == domain.BondActive {
			activeCount++
			activePrincipal += bond.PrincipalAmount
			activeValue += bond.Value(now)
		}
	}

	accrued := activeValue - activePrincipal
	roi := 0.0
	if totalPrincipal > 0 {
		roi = accrued / totalPrincipal * 100
	}
	avgSize := 0.0
	if len(all) > 0 {
		avgSize = totalPrincipal / float64(len(all))
	}

	return PortfolioMetrics{
		Timestamp:       now,
		TotalBonds:      len(all),
		ActiveBonds:     activeCount,
		TotalPrincipal:  totalPrincipal,
		PortfolioValue:  activeValue,
		AccruedInterest: accrued,
		ROIPercentage:   roi,
		StatusBreakdown: breakdown,
		AverageBondSize: avgSize,
	}, nil
}

// TopPerformingBonds returns up to limit active bonds ranked by ROI
// descending. A non-positive limit falls back to DefaultTopLimit.
func (d *Dashboard) TopPerformingBonds(ctx context.Context, limit int) ([]BondPerformance, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	active, err := d.bonds.ListBonds(ctx, domain.BondActive)
	if err != nil {
		return nil, err
	}
	now := d.now()

	perf := make([]BondPerformance, 0, len(active))
	for _, bond := range active {
		value := bond.Value(now)
		earned := value - bond.PrincipalAmount
		roi := 0.0
		if bond.PrincipalAmount > 0 {
			roi = earned / bond.PrincipalAmount * 100
		}
		perf = append(perf, BondPerformance{
			BondID:         bond.BondID,
			AssetID:        bond.DataAssetID,
			Principal:      bond.PrincipalAmount,
			CurrentValue:   value,
			InterestEarned: earned,
			ROI:            roi,
			Issuer:         bond.Issuer,
		})
	}

	sort.SliceStable(perf, func(i, j int) bool { return perf[i].ROI > perf[j].ROI })
	if len(perf) > limit {
		perf = perf[:limit]
	}
	return perf, nil
}

// Schedule buckets the active bonds by days to maturity using 30/90/180-day
// breakpoints.
func (d *Dashboard) Schedule(ctx context.Context) (MaturitySchedule, error) {
	active, err := d.bonds.ListBonds(ctx, domain.BondActive)
	if err != nil {
		return MaturitySchedule{}, err
	}
	now := d.now()

	var sched MaturitySchedule
	for _, bond := range active {
		days := int(bond.MaturityDate.Sub(now).Hours() / 24)
		entry := MaturityEntry{
			BondID:        bond.BondID,
			MaturityDate:  bond.MaturityDate,
			DaysRemaining: days,
			Principal:     bond.PrincipalAmount,
			ExpectedValue: bond.Value(now),
		}
		switch {
		case days <= 30:
			sched.Next30Days = append(sched.Next30Days, entry)
		case days <= 90:
			sched.Next90Days = append(sched.Next90Days, entry)
		case days <= 180:
			sched.Next180Days = append(sched.Next180Days, entry)
		default:
			sched.Beyond180Days = append(sched.Beyond180Days, entry)
		}
	}
	return sched, nil
}

// GenerateReport renders the full portfolio report as plain text.
func (d *Dashboard) GenerateReport(ctx context.Context) (string, error) {
	metrics, err := d.Metrics(ctx)
	if err != nil {
		return "", err
	}
	top, err := d.TopPerformingBonds(ctx, DefaultTopLimit)
	if err != nil {
		return "", err
	}
	sched, err := d.Schedule(ctx)
	if err != nil {
		return "", err
	}

	p := message.NewPrinter(language.English)
	rule := strings.Repeat("=", 70)
	thin := strings.Repeat("-", 70)

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "LIQUIDITY BOND PORTFOLIO REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Generated: %s\n\n", metrics.Timestamp.Format(time.RFC3339))

	fmt.Fprintln(&b, "PORTFOLIO SUMMARY")
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "Total Bonds: %d\n", metrics.TotalBonds)
	fmt.Fprintf(&b, "Active Bonds: %d\n", metrics.ActiveBonds)
	p.Fprintf(&b, "Total Principal: $%.2f\n", metrics.TotalPrincipal)
	p.Fprintf(&b, "Portfolio Value: $%.2f\n", metrics.PortfolioValue)
	p.Fprintf(&b, "Accrued Interest: $%.2f\n", metrics.AccruedInterest)
	fmt.Fprintf(&b, "Portfolio ROI: %.2f%%\n\n", metrics.ROIPercentage)

	fmt.Fprintln(&b, "TOP PERFORMING BONDS")
	fmt.Fprintln(&b, thin)
	for i, bond := range top {
		fmt.Fprintf(&b, "%d. %s\n", i+1, bond.BondID)
		p.Fprintf(&b, "   Principal: $%.2f\n", bond.Principal)
		p.Fprintf(&b, "   Current Value: $%.2f\n", bond.CurrentValue)
		p.Fprintf(&b, "   Interest Earned: $%.2f\n", bond.InterestEarned)
		fmt.Fprintf(&b, "   ROI: %.2f%%\n\n", bond.ROI)
	}

	fmt.Fprintln(&b, "MATURITY SCHEDULE")
	fmt.Fprintln(&b, thin)
	buckets := []struct {
		name    string
		entries []MaturityEntry
	}{
		{"Next 30 Days", sched.Next30Days},
		{"Next 90 Days", sched.Next90Days},
		{"Next 180 Days", sched.Next180Days},
		{"Beyond 180 Days", sched.Beyond180Days},
	}
	for _, bucket := range buckets {
		if len(bucket.entries) == 0 {
			continue
		}
		var total float64
		for _, e := range bucket.entries {
			total += e.ExpectedValue
		}
		fmt.Fprintf(&b, "%s: %d bonds\n", bucket.name, len(bucket.entries))
		p.Fprintf(&b, "  Expected Value: $%.2f\n", total)
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	return b.String(), nil
}

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/databond/internal/domain"
)

// Relay subscribes to bond lifecycle events on the signal bus and forwards
// them to the notifier as human-readable alerts.
type Relay struct {
	bus      domain.SignalBus
	notifier *Notifier
	logger   *slog.Logger
}

// NewRelay creates a Relay over the given bus and notifier.
func NewRelay(bus domain.SignalBus, notifier *Notifier, logger *slog.Logger) *Relay {
	return &Relay{
		bus:      bus,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "notify_relay")),
	}
}

// bondEvent is the JSON payload published by the bond manager.
type bondEvent struct {
	Event      string  `json:"event"`
	BondID     string  `json:"bond_id"`
	AssetID    string  `json:"asset_id"`
	Principal  float64 `json:"principal"`
	FinalValue float64 `json:"final_value"`
	Issuer     string  `json:"issuer"`
}

// Run consumes bond events until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, channel := range []string{domain.ChannelBondIssued, domain.ChannelBondRedeemed} {
		channel := channel
		g.Go(func() error {
			return r.consume(ctx, channel)
		})
	}
	return g.Wait()
}

func (r *Relay) consume(ctx context.Context, channel string) error {
	msgs, err := r.bus.Subscribe(ctx, channel)
	if err != nil {
		return fmt.Errorf("notify: subscribe %s: %w", channel, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case data, ok := <-msgs:
			if !ok {
				return nil
			}
			r.handle(ctx, channel, data)
		}
	}
}

func (r *Relay) handle(ctx context.Context, channel string, data []byte) {
	var ev bondEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		r.logger.WarnContext(ctx, "malformed event payload",
			slog.String("channel", channel),
			slog.String("error", err.Error()),
		)
		return
	}

	var title, message string
	switch channel {
	case domain.ChannelBondIssued:
		title = "Liquidity Bond Issued"
		message = fmt.Sprintf("%s against asset %s for $%.2f (issuer %s)",
			ev.BondID, ev.AssetID, ev.Principal, ev.Issuer)
	case domain.ChannelBondRedeemed:
		title = "Liquidity Bond Redeemed"
		message = fmt.Sprintf("%s redeemed at $%.2f", ev.BondID, ev.FinalValue)
	default:
		return
	}

	if err := r.notifier.Notify(ctx, ev.Event, title, message); err != nil {
		r.logger.WarnContext(ctx, "notification delivery failed",
			slog.String("channel", channel),
			slog.String("error", err.Error()),
		)
	}
}

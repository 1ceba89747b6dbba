package domain

import "context"

// Event channel names published by the bond lifecycle manager.
const (
	ChannelBondIssued   = "bond_issued"
	ChannelBondRedeemed = "bond_redeemed"
)

// SignalBus is a lightweight pub/sub fabric for lifecycle events. Payloads
// are opaque bytes; the manager publishes JSON envelopes.
type SignalBus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

// BlobWriter uploads data to object storage. Used to archive generated
// portfolio reports.
type BlobWriter interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
}

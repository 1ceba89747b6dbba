package app

import (
	"context"
	"fmt"
	"log/slog"

	s3blob "github.com/alanyoungcy/databond/internal/blob/s3"
	"github.com/alanyoungcy/databond/internal/bonds"
	"github.com/alanyoungcy/databond/internal/cache/redis"
	"github.com/alanyoungcy/databond/internal/config"
	"github.com/alanyoungcy/databond/internal/domain"
	"github.com/alanyoungcy/databond/internal/notify"
	"github.com/alanyoungcy/databond/internal/report"
	"github.com/alanyoungcy/databond/internal/store/memory"
	"github.com/alanyoungcy/databond/internal/valuation"
)

// Dependencies bundles every dependency that the application modes need to
// operate. It is constructed by Wire and torn down by the returned cleanup
// function.
type Dependencies struct {
	// Registries
	AssetStore domain.AssetStore
	BondStore  domain.BondStore

	// Event bus; nil when Redis is disabled.
	SignalBus domain.SignalBus

	// Blob storage; nil when no S3 bucket is configured.
	BlobWriter domain.BlobWriter

	// Services
	Engine    *valuation.Engine
	Manager   *bonds.Manager
	Dashboard *report.Dashboard

	// Notifications
	Notifier *notify.Notifier
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config) (*Dependencies, func(), error) {
	logger := slog.Default()

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{
		AssetStore: memory.NewAssetStore(),
		BondStore:  memory.NewBondStore(),
	}

	// --- Redis event bus (optional) ---
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		deps.SignalBus = redis.NewSignalBus(redisClient)
	}

	// --- S3 blob storage (optional, for report archival) ---
	if cfg.S3.Bucket != "" {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		closers = append(closers, func() { _ = s3Client.Close() })

		deps.BlobWriter = s3blob.NewWriter(s3Client)
	}

	// --- Services ---
	deps.Engine = valuation.NewEngine(deps.AssetStore, logger)
	deps.Manager = bonds.NewManager(deps.BondStore, deps.SignalBus, logger)
	deps.Dashboard = report.NewDashboard(deps.Manager, deps.Engine)

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	deps.Notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)

	return deps, cleanup, nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/databond/internal/notify"
	"github.com/alanyoungcy/databond/internal/seed"
	"github.com/alanyoungcy/databond/internal/server"
	"github.com/alanyoungcy/databond/internal/server/handler"
	"github.com/alanyoungcy/databond/internal/server/ws"
)

// ServeMode runs the HTTP + WebSocket API server until the context is
// cancelled.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting serve mode")

	g, ctx := errgroup.WithContext(ctx)
	a.startServer(ctx, g, deps)
	return waitGroup(g)
}

// SeedMode deploys the enterprise sample portfolio, prints the deployment
// summary, and exits.
func (a *App) SeedMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting seed mode")

	summary, err := seed.Deploy(ctx, deps.Engine, deps.Manager, a.logger)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, summary.Render())

	if err := deps.Notifier.Notify(ctx, "deploy_complete", "Deployment Complete",
		fmt.Sprintf("%d bonds issued, total principal $%.2f", summary.TotalBonds, summary.TotalPrincipal),
	); err != nil {
		a.logger.WarnContext(ctx, "deployment notification failed",
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// ReportMode generates the portfolio report, writes it to stdout, archives
// it to object storage when configured, and exits.
func (a *App) ReportMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting report mode")

	text, err := deps.Dashboard.GenerateReport(ctx)
	if err != nil {
		return fmt.Errorf("app: generate report: %w", err)
	}
	fmt.Fprintln(os.Stdout, text)

	if deps.BlobWriter != nil {
		key := fmt.Sprintf("%s/portfolio-%s.txt",
			a.cfg.S3.ReportPrefix,
			time.Now().UTC().Format("2006-01-02T15-04-05"),
		)
		if err := deps.BlobWriter.Put(ctx, key, []byte(text), "text/plain; charset=utf-8"); err != nil {
			return fmt.Errorf("app: archive report: %w", err)
		}
		a.logger.InfoContext(ctx, "report archived", slog.String("key", key))
	}
	return nil
}

// FullMode deploys the sample portfolio and then serves the API over it.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting full mode")

	summary, err := seed.Deploy(ctx, deps.Engine, deps.Manager, a.logger)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, summary.Render())

	g, ctx := errgroup.WithContext(ctx)
	a.startServer(ctx, g, deps)
	return waitGroup(g)
}

// startServer registers the API server, the WebSocket hub, and the
// notification relay on the errgroup. The hub and relay are skipped when no
// event bus is wired.
func (a *App) startServer(ctx context.Context, g *errgroup.Group, deps *Dependencies) {
	var hub *ws.Hub
	if deps.SignalBus != nil {
		hub = ws.NewHub(deps.SignalBus, a.logger)
		g.Go(func() error {
			return hub.Run(ctx)
		})

		relay := notify.NewRelay(deps.SignalBus, deps.Notifier, a.logger)
		g.Go(func() error {
			return relay.Run(ctx)
		})
	}

	srv := server.NewServer(
		server.Config{
			Port:        a.cfg.Server.Port,
			CORSOrigins: a.cfg.Server.CORSOrigins,
		},
		server.Handlers{
			Health:    handler.NewHealthHandler(a.logger),
			Assets:    handler.NewAssetHandler(deps.Engine, a.cfg.Valuation.HighValueThreshold, a.logger),
			Bonds:     handler.NewBondHandler(deps.Manager, a.cfg.Bonds.DefaultInterestRate, a.cfg.Bonds.DefaultMaturityDays, a.logger),
			Portfolio: handler.NewPortfolioHandler(deps.Dashboard, a.logger),
		},
		hub,
		a.logger,
	)

	g.Go(func() error {
		return srv.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// waitGroup waits on the errgroup and treats context cancellation as a clean
// shutdown.
func waitGroup(g *errgroup.Group) error {
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/desertthunder/songsite/internal/server"
	"github.com/desertthunder/songsite/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve builds the catalog, then serves the web UI until SIGINT or SIGTERM.
//
// A missing songs directory aborts startup with [shared.ErrCatalogUnavailable].
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("host") {
		r.config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		r.config.Server.Port = cmd.Int("port")
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	store := r.catalogStore()
	if err := store.Rebuild(); err != nil {
		return err
	}
	if store.Len() == 0 {
		r.logger.Warn("no song files found with supported extensions", "dir", store.Dir())
	}

	resolver := r.resolver(ctx)
	if r.config.Admin.Key == "" {
		r.logger.Warn("admin key not set; reset and rebuild are disabled")
	}

	router, err := server.NewSite(server.Options{
		Store:        store,
		Resolver:     resolver,
		AdminKey:     r.config.Admin.Key,
		DownloadsDir: r.config.DownloadsDir(),
		Logger:       shared.WithLogger(r.logger, "component", "http"),
	})
	if err != nil {
		return fmt.Errorf("failed to build site: %w", err)
	}

	r.logger.Info("catalog ready", "songs", store.Len(), "mode", resolver.Mode(), "popularity", resolver.TracksPopularity())

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(r.config.Addr(), router, r.logger)
	r.logger.Infof("starting songsite on http://%s", srv.Addr())
	return srv.ListenAndServe(ctx)
}

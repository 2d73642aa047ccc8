package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pairlane/waypoint/internal/config"
	"github.com/pairlane/waypoint/internal/events"
	"github.com/pairlane/waypoint/internal/export"
	"github.com/pairlane/waypoint/internal/gate"
	"github.com/pairlane/waypoint/internal/provider"
	"github.com/pairlane/waypoint/internal/server"
	"github.com/pairlane/waypoint/internal/store/postgres"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the waypoint server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't create an HTTP client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Connect to Postgres.
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (WAYPOINT_NATS_URL not set)")
		}

		// Wire the gate's collaborators.
		var geocoder gate.Geocoder
		if cfg.GeocoderURL != "" {
			geocoder = provider.NewNominatimGeocoder(cfg.GeocoderURL)
			logger.Info("geocoding enabled", "url", cfg.GeocoderURL)
		} else {
			geocoder = provider.NoopGeocoder{}
			logger.Info("geocoding disabled (WAYPOINT_GEOCODER_URL not set)")
		}

		waypointServer := server.NewServer(store, publisher, logger)
		g := gate.New(cfg.Gate, gate.Deps{
			Provider:     provider.NewAgentProvider(cfg.AgentURL),
			Connectivity: provider.NewHTTPConnectivity(cfg.ProbeURL),
			Geocoder:     geocoder,
			Sink:         waypointServer,
			Logger:       logger,
		})
		waypointServer.AttachGate(g)

		// Start HTTP server.
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: waypointServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Server boot counts as app start; the gate schedules the initial
		// evaluation after its delay.
		g.OnAppStart()

		// Start export scheduler if any destinations are configured.
		var scheduler *export.Scheduler
		if cfg.ExportInterval > 0 {
			var dests []export.Destination

			if cfg.ExportS3Bucket != "" {
				s3Dest, err := export.NewS3Destination(
					context.Background(),
					cfg.ExportS3Bucket,
					cfg.ExportS3Key,
					cfg.ExportS3Region,
					cfg.ExportS3Endpoint,
				)
				if err != nil {
					logger.Error("failed to create S3 export destination", "err", err)
				} else {
					dests = append(dests, s3Dest)
					logger.Info("export S3 destination enabled", "bucket", cfg.ExportS3Bucket, "key", cfg.ExportS3Key)
				}
			}

			if cfg.ExportFile != "" {
				dests = append(dests, export.NewFileDestination(cfg.ExportFile))
				logger.Info("export file destination enabled", "path", cfg.ExportFile)
			}

			if len(dests) > 0 {
				scheduler = export.NewScheduler(store, dests, cfg.ExportInterval, logger)
				scheduler.Start()
				logger.Info("export scheduler started", "interval", cfg.ExportInterval)
			}
		}

		// Start retention pruner if a retention window is configured.
		var pruner *server.Pruner
		if cfg.Retention > 0 {
			pruner = server.NewPruner(store, cfg.Retention, time.Hour, logger)
			pruner.Start()
			logger.Info("retention pruner started", "retention", cfg.Retention)
		}

		logger.Info("waypoint server started", "http_addr", cfg.HTTPAddr)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		g.Stop()

		if pruner != nil {
			pruner.Stop()
			logger.Info("retention pruner stopped")
		}

		if scheduler != nil {
			scheduler.Stop()
			logger.Info("export scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}

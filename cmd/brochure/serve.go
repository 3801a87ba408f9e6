package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/brochure"
	"github.com/aretw0/brochure/internal/config"
	"github.com/aretw0/brochure/internal/presentation/tui"
	httpAdapter "github.com/aretw0/brochure/pkg/adapters/http"
	"github.com/aretw0/brochure/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP trigger server",
	Long: `Starts the brochure client and exposes it over HTTP:
POST /trigger loads the configured brochure, GET /display and GET /status
show the current display and connection state, GET /metrics serves Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		embedded, _ := cmd.Flags().GetBool("embedded")
		seedPath, _ := cmd.Flags().GetString("seed")
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Address = addr
		}

		if embedded {
			// In-process Redis for demos: no external server needed.
			mr, err := miniredis.Run()
			if err != nil {
				return fmt.Errorf("failed to start embedded redis: %w", err)
			}
			defer mr.Close()
			cfg.Backend = config.BackendRedis
			cfg.Redis.Address = mr.Addr()
			logger.Info("embedded redis started", "addr", mr.Addr())
		}

		b := openBackend(cfg)
		defer b.close()
		if err := b.seedFrom(cmd.Context(), seedPath); err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		client, err := newClient(b.service, brochure.WithHooks(metrics.Hooks()))
		if err != nil {
			return err
		}
		defer client.Close()
		client.Start(cmd.Context())

		srv := &http.Server{
			Addr: cfg.HTTP.Address,
			Handler: httpAdapter.NewHandler(client,
				httpAdapter.WithGatherer(reg),
				httpAdapter.WithLogger(logger),
			),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner(os.Stdout, brochure.Version)
			fmt.Printf("Serving brochure %q on %s\n", cfg.Identifier, srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				return srv.Close()
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "HTTP listen address (overrides http.address)")
	serveCmd.Flags().Bool("embedded", false, "run an in-process Redis instead of connecting to one")
	serveCmd.Flags().String("seed", "", "YAML seed file written to the data service at startup")
}

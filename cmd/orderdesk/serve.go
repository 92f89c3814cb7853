package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	httpAdapter "github.com/raza10006/orderdesk/internal/adapters/http"
	"github.com/raza10006/orderdesk/internal/adapters/postgres"
	redisAdapter "github.com/raza10006/orderdesk/internal/adapters/redis"
	"github.com/raza10006/orderdesk/internal/config"
	"github.com/raza10006/orderdesk/internal/logging"
	"github.com/raza10006/orderdesk/internal/mcp"
	"github.com/raza10006/orderdesk/internal/observability"
	"github.com/raza10006/orderdesk/internal/order"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over HTTP",
	Long:  `Starts the orderdesk MCP server, exposing JSON-RPC 2.0 on POST /mcp.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		logger := logging.New(logging.ParseLevel(cfg.Logging.Level))
		slog.SetDefault(logger)

		if cfg.Database.URL == "" {
			logger.Error("database.url (or DATABASE_URL) is required")
			os.Exit(1)
		}

		store, err := postgres.New(cmd.Context(), cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to order database", "err", err)
			os.Exit(1)
		}
		defer store.Close()

		var orderStore order.Store = store
		if cfg.Redis.Addr != "" {
			client := backend.NewClient(&backend.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			orderStore = redisAdapter.NewCache(client, orderStore,
				redisAdapter.WithTTL(cfg.CacheTTL()),
				redisAdapter.WithLogger(logger),
			)
			logger.Info("order cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.CacheTTL())
		}

		metrics := observability.New(prometheus.DefaultRegisterer)
		resolver := order.NewResolver(orderStore,
			order.WithLogger(logger),
			order.WithRetryHook(func(int) { metrics.LookupRetried() }),
		)
		dispatcher := mcp.NewDispatcher(resolver,
			mcp.WithLogger(logger),
			mcp.WithMetrics(metrics),
		)
		handler := httpAdapter.NewHandler(dispatcher,
			httpAdapter.WithAuthToken(cfg.Server.AuthToken),
			httpAdapter.WithRequestTimeout(cfg.RequestTimeout()),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting orderdesk MCP server", "addr", srv.Addr,
				"auth", cfg.Server.AuthToken != "")
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			logger.Error("server error", "err", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutdown signal received", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("orderdesk server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

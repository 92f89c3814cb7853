package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/raza10006/orderdesk/internal/adapters/postgres"
	"github.com/raza10006/orderdesk/internal/config"
	"github.com/raza10006/orderdesk/internal/logging"
	"github.com/raza10006/orderdesk/internal/order"
)

// lookupCmd resolves one order against the configured store without going
// through the protocol layer. Operator tooling for debugging schema drift.
var lookupCmd = &cobra.Command{
	Use:   "lookup <order_id>",
	Short: "Resolve and print a single order",
	Args:  cobra.ExactArgs(1),
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
			fmt.Println("database.url (or DATABASE_URL) is required")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
		defer cancel()

		store, err := postgres.New(ctx, cfg.Database.URL)
		if err != nil {
			fmt.Printf("Failed to connect: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		resolver := order.NewResolver(store, order.WithLogger(logger))
		o, err := resolver.Resolve(ctx, args[0])
		if err != nil {
			fmt.Printf("Lookup failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(order.Summary(o))
		fmt.Println()
		data, _ := json.MarshalIndent(o, "", "  ")
		fmt.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

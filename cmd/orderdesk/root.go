package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "orderdesk",
	Short: "orderdesk exposes order-status lookups as an MCP server",
	Long: `Orderdesk serves a single lookup_order tool over the Model Context
Protocol (JSON-RPC 2.0), backed by a Postgres orders table that may mix two
column-naming generations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "config.yaml", "Path to the YAML config file")
}

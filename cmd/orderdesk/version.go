package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raza10006/orderdesk"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of orderdesk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("orderdesk version %s\n", orderdesk.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

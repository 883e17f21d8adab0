/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/galmarket/eddn-ingest/internal/bootstrap"
	"github.com/spf13/cobra"
)

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Consume the EDDN firehose into the catalog",
	Long: `Connects to the EDDN relay, ingests commodity snapshot messages and
replaces each matched station's market snapshot in the catalog store.
Runs until the duration elapses or a termination signal arrives.`,
	Run: bootstrap.StartListener,
}

func init() {
	rootCmd.AddCommand(listenCmd)
	listenCmd.Flags().String("host", "", "EDDN relay endpoint (default from config or TD_EDDN_HOST)")
	listenCmd.Flags().Int("duration", 0, "seconds to run before exiting; 0 runs until interrupted")
	listenCmd.Flags().Bool("carrier-only", false, "only process fleet carrier markets")
	listenCmd.Flags().Bool("public-only", false, "only process carriers with docking access \"all\"")
	listenCmd.Flags().Bool("optimize", false, "VACUUM the catalog after ingestion")
	listenCmd.Flags().Bool("debug-dump", false, "write the last raw payload to the scratch dir")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/svmbench/internal/server"
	"github.com/cwbudde/svmbench/internal/store"
)

var (
	serveAddr    string
	serveDataDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the benchmark HTTP server",
	Long: `Starts an HTTP server that runs benchmark jobs in the background
and exposes job status, live progress (SSE), persisted results, and
comparison charts under /api/v1/jobs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resultStore, err := store.NewFSStore(serveDataDir)
		if err != nil {
			return fmt.Errorf("failed to open result store: %w", err)
		}

		srv := server.NewServer(serveAddr, serveDataDir, resultStore)
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "./data", "Base directory for run storage")
	rootCmd.AddCommand(serveCmd)
}

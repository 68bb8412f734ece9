package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/campuscope/campuscope/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Open the configured storage, seed it when enabled and serve the API
until SIGINT or SIGTERM.

Examples:
  # Serve with the in-memory store
  campuscope serve

  # Serve against PostgreSQL
  CAMPUSCOPE_STORAGE_BACKEND=postgres campuscope serve`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.NewServer(context.Background(), configPath)
	if err != nil {
		return err
	}
	return srv.Run()
}

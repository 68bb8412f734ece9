// campuscope serves the college review API.
//
// Usage:
//
//	campuscope serve --config configs/config.yaml
//	campuscope migrate
//	campuscope seed --fake-users 20 --fake-reviews 200
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// @title Campuscope API
// @version 1.0
// @description API for browsing colleges and sharing anonymous-friendly reviews

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

var (
	version    = "dev"
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "campuscope",
		Short: "College review API server",
		Long: `campuscope serves the college catalogue, reviews, polls and
realtime view invalidations over HTTP.

Configuration is read from a YAML file and CAMPUSCOPE_* environment variables.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// No subcommand behaves like serve
		RunE: runServe,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", filepath.Join("configs", "config.yaml"), "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

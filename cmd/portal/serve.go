package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/servicehub/portal/internal/pkg/config"
	"github.com/servicehub/portal/internal/server"
	"github.com/servicehub/portal/pkg/logger"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal HTTP server",
	Long: `Start the portal.

Environment variables:
  PORT                 Listen port (default: 8080)
  BACKEND_URL          Marketplace API base URL
  SESSION_JWT_SECRET   Verify backend tokens with this HS256 secret
  SESSION_SECURE       Mark the session cookie Secure (default: true)
  DRAFT_STORE          Draft store: memory, redis or mongo
  REDIS_ADDR           Redis address for DRAFT_STORE=redis
  MONGO_URI            MongoDB URI for DRAFT_STORE=mongo`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "portal",
		Version: Version,
	})
	logger.Component("cli").Info().Str("env", cfg.Env).Str("draft_store", cfg.Drafts.Store).Msg("starting portal")

	if err := server.RunWithSignalHandling(cfg, log); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "ServiceHub portal - server-rendered front end of the service marketplace",
	Long: `The portal renders the marketplace pages, enforces role based access
and keeps inline edits as drafts until they are committed to the backend API.`,
	Example: `  # Serve the portal against a local backend
  BACKEND_URL=http://localhost:8000 portal serve

  # Show what each role may open and edit
  portal policy`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

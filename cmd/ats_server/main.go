// Package main provides the entry point for the hiring pipeline tracker HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ats_server",
	Short: "Hiring Pipeline Tracker HTTP API Server",
	Long:  "Multi-tenant hiring pipeline tracker: tenant-scoped jobs and candidates, lifecycle status transitions, and hiring analytics via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

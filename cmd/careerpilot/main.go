// Package main provides the entry point for the CareerPilot HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careerpilot",
	Short: "CareerPilot HTTP API Server",
	Long:  "CareerPilot tracks a user's career profile and generates gap analyses, learning roadmaps, weekly tasks, project ideas, interview feedback and job scans via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

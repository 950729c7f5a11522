// Package main provides the entry point for the Resume Pilot HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_pilot",
	Short: "Resume Pilot HTTP API Server",
	Long:  "Resume Pilot is a resume builder backend: section-by-section editing with partial saves, completion tracking, AI summary drafting, live print preview, and A4 PDF export via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main provides the entry point for the resume parser CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_parser",
	Short: "Batch resume parser",
	Long:  "Resume Parser scans a directory of resume files (PDF, DOCX, TXT), extracts structured candidate data with Gemini, and appends one row per resume to a CSV ledger.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

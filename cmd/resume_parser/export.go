package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-parser/internal/export"
)

var exportCommand = &cobra.Command{
	Use:   "export",
	Short: "Export the CSV ledger to an XLSX workbook",
	Long:  "Converts the CSV ledger into an XLSX workbook with a bold header row, for reviewers who work in spreadsheets.",
	RunE:  runExportCmd,
}

var (
	exportInputCSV  string
	exportOutputXLS string
)

func init() {
	exportCommand.Flags().StringVarP(&exportInputCSV, "input", "i", "resume_details.csv", "Path of the CSV ledger to export")
	exportCommand.Flags().StringVarP(&exportOutputXLS, "output", "o", "", "Path of the XLSX file (defaults to the ledger path with .xlsx)")

	rootCmd.AddCommand(exportCommand)
}

func runExportCmd(_ *cobra.Command, _ []string) error {
	out := exportOutputXLS
	if out == "" {
		out = strings.TrimSuffix(exportInputCSV, ".csv") + ".xlsx"
	}

	if err := export.WriteXLSX(exportInputCSV, out); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Exported %s to %s\n", exportInputCSV, out)
	return nil
}

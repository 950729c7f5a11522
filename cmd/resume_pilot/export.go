package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/RohanMakvana24/Resume-Pilot/internal/db"
	"github.com/RohanMakvana24/Resume-Pilot/internal/export"
)

var (
	exportOutDir string
	exportFit    string
)

var exportCmd = &cobra.Command{
	Use:   "export <resume-id>",
	Short: "Export a resume to an A4 PDF",
	Long:  `Render a stored resume through headless Chrome and write the resulting PDF to disk.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOutDir, "out", ".", "Directory to write the PDF into")
	exportCmd.Flags().StringVar(&exportFit, "fit", "top", "Page fit: top or center")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid resume ID %q: %w", args[0], err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	resume, err := database.GetResume(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}
	if resume == nil {
		return fmt.Errorf("resume %s not found", id)
	}

	fit := export.FitTop
	if exportFit == "center" {
		fit = export.FitCenter
	}

	pdf, err := export.New().ExportResume(ctx, resume, fit)
	if err != nil {
		return fmt.Errorf("failed to export resume: %w", err)
	}

	path := filepath.Join(exportOutDir, export.Filename(resume))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", path, len(pdf))
	return nil
}

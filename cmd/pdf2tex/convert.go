// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2tex/internal/extract"
	"github.com/pdiddy/pdf2tex/internal/ocr"
	"github.com/pdiddy/pdf2tex/internal/pipeline"
	"github.com/pdiddy/pdf2tex/internal/store"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdf files...]",
	Short: "Convert PDF files to LaTeX documents",
	Long: `Convert runs the extraction and generation pipeline over the given PDF
files. Each input produces a .tex file, an image subdirectory, and a YAML
metadata sidecar in the output directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.Server.OutputDir = dir
	}
	if noImages, _ := cmd.Flags().GetBool("no-images"); noImages {
		cfg.Extraction.ExtractImages = false
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	history, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer history.Close()

	pl := pipeline.New(cfg, extract.New(cfg.Extraction, log), ocr.NewClient(cfg.OCR), history, log)

	var failed int
	for _, path := range args {
		result := pl.Run(cmd.Context(), path, filepath.Base(path), os.Stdout)
		if result.ErrorMessage != "" {
			failed++
		}
	}

	fmt.Fprintf(os.Stdout, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		len(args)-failed, failed, len(args))
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed conversion", failed)
	}
	return nil
}

func init() {
	convertCmd.Flags().String("output-dir", "", "directory for generated .tex files and images")
	convertCmd.Flags().Bool("no-images", false, "skip image extraction")

	rootCmd.AddCommand(convertCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2tex/internal/extract"
	"github.com/pdiddy/pdf2tex/internal/ocr"
	"github.com/pdiddy/pdf2tex/internal/pipeline"
	"github.com/pdiddy/pdf2tex/internal/store"
	"github.com/pdiddy/pdf2tex/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the conversion web frontend",
	Long: `Serve starts an HTTP server with an upload form. Uploaded PDFs are
converted to LaTeX and the result page offers the generated .tex file and
a ZIP archive (.tex plus extracted images) for download.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
		cfg.Server.ListenAddr = addr
	}
	if dir, _ := cmd.Flags().GetString("upload-dir"); dir != "" {
		cfg.Server.UploadDir = dir
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.Server.OutputDir = dir
	}

	log := logrus.New()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	history, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer history.Close()

	pl := pipeline.New(cfg, extract.New(cfg.Extraction, log), ocr.NewClient(cfg.OCR), history, log)
	server, err := web.New(cfg, pl, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (default :8080)")
	serveCmd.Flags().String("upload-dir", "", "directory for uploaded PDFs")
	serveCmd.Flags().String("output-dir", "", "directory for generated .tex files and images")
	serveCmd.Flags().Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf2tex CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2tex/internal/secrets"
	"github.com/pdiddy/pdf2tex/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the pdf2tex CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf2tex",
	Short: "Convert PDF documents to LaTeX",
	Long: `pdf2tex extracts text, images, and page geometry from PDF files and
generates LaTeX documents from them. Formula images can be converted to
LaTeX math through an external OCR service.

Run a web frontend with "serve", convert files directly with "convert",
and inspect past conversions with "history".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf2tex.yaml or ~/.config/pdf2tex/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf2tex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf2tex"))
		}
	}

	viper.SetEnvPrefix("PDF2TEX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig overlays file and environment settings on the defaults.
func loadConfig() types.Config {
	cfg := types.Defaults()

	if v := viper.GetString("server.listen_addr"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := viper.GetString("server.upload_dir"); v != "" {
		cfg.Server.UploadDir = v
	}
	if v := viper.GetString("server.output_dir"); v != "" {
		cfg.Server.OutputDir = v
	}
	if v := viper.GetInt64("server.max_upload_mb"); v > 0 {
		cfg.Server.MaxUploadMB = v
	}
	if viper.IsSet("extraction.extract_images") {
		cfg.Extraction.ExtractImages = viper.GetBool("extraction.extract_images")
	}
	if v := viper.GetString("ocr.endpoint"); v != "" {
		cfg.OCR.Endpoint = v
	}
	if v := viper.GetDuration("ocr.timeout"); v > 0 {
		cfg.OCR.Timeout = v
	}
	if v := viper.GetInt("ocr.max_retries"); v > 0 {
		cfg.OCR.MaxRetries = v
	}
	if v := viper.GetString("store.db_path"); v != "" {
		cfg.Store.DBPath = v
	}

	cfg.OCR.APIKey = secretDefault(secrets.FormulaOCRKey, viper.GetString("ocr.api_key"))
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2tex/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history [search query]",
	Short: "Show past conversions",
	Long: `History lists recorded conversion attempts, newest first. With a query
argument it runs a full-text search over original filenames and error
messages instead.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	history, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer history.Close()

	limit, _ := cmd.Flags().GetInt("limit")

	var records []store.Record
	if len(args) > 0 {
		records, err = history.Search(context.Background(), strings.Join(args, " "), limit)
	} else {
		records, err = history.Recent(context.Background(), limit)
	}
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(records, jsonOutput)
}

func formatHistoryOutput(records []store.Record, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-30s  %-6s  %-5s  %-6s  %-20s  %s\n",
		"ID", "Original", "Status", "Pages", "Images", "When", "Error")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range records {
		original := r.Original
		if len(original) > 30 {
			original = original[:27] + "..."
		}
		errText := r.Error
		if len(errText) > 40 {
			errText = errText[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-30s  %-6s  %-5d  %-6d  %-20s  %s\n",
			r.ID, original, r.Status, r.PageCount, r.ImageCount,
			r.CreatedAt.Local().Format(time.DateTime), errText)
	}

	fmt.Fprintf(os.Stdout, "\n%d conversions\n", len(records))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of records to show")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-server/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `History lists the most recent searches recorded in the history
database, newest first.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of searches to show")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		return fmt.Errorf("search history is disabled (history.enabled=false)")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(commandContext(cmd), limit)
	if err != nil {
		return err
	}
	return formatHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No searches recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-40s  %9s  %8s\n", "When", "Topic", "Requested", "Returned")
	fmt.Fprintln(w, strings.Repeat("-", 83))
	for _, e := range entries {
		topic := e.Topic
		if len(topic) > 40 {
			topic = topic[:37] + "..."
		}
		fmt.Fprintf(w, "%-20s  %-40s  %9d  %8d\n",
			e.SearchedAt.Local().Format(time.DateTime), topic, e.Requested, e.Returned)
	}
	fmt.Fprintf(w, "\n%d searches\n", len(entries))
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-server/internal/research"
)

var searchCmd = &cobra.Command{
	Use:   "search <topic>",
	Short: "Search arXiv for papers on a topic and store them",
	Long: `Search queries arXiv for papers matching the topic, ordered by relevance,
and replaces the topic's stored papers with the results. The topic is the
remaining arguments joined by spaces.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var infoCmd = &cobra.Command{
	Use:   "info <paper-id>",
	Short: "Show details of a single arXiv paper",
	Long: `Info looks up one paper by arXiv identifier (for example 2301.07041v1)
and prints its title, authors, publication date, PDF link and summary.
The paper store is not touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	searchCmd.Flags().Int("max-results", research.DefaultMaxResults, "maximum number of papers to retrieve")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(infoCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	maxResults, _ := cmd.Flags().GetInt("max-results")

	a, err := setupApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.service.SearchPapers(commandContext(cmd), strings.Join(args, " "), maxResults)
	if err != nil {
		return errors.New(research.SearchFailed(err))
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	a, err := setupApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.service.ExtractInfo(commandContext(cmd), args[0])
	if err != nil {
		return errors.New(research.ExtractFailed(err))
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-server/internal/prompts"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <topic>",
	Short: "Print the research prompt for a topic",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		numPapers, _ := cmd.Flags().GetInt("num-papers")
		fmt.Fprintln(cmd.OutOrStdout(), prompts.SearchPrompt(strings.Join(args, " "), numPapers))
	},
}

func init() {
	promptCmd.Flags().Int("num-papers", prompts.DefaultNumPapers, "number of papers the prompt asks for")

	rootCmd.AddCommand(promptCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics with stored papers",
	Args:  cobra.NoArgs,
	RunE:  runTopics,
}

var topicCmd = &cobra.Command{
	Use:   "topic <topic>",
	Short: "Show the stored papers for a topic",
	Long: `Topic renders the papers stored for a topic as markdown, the same text
the papers://{topic} resource returns. With --yaml the stored records are
printed as YAML instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTopic,
}

func init() {
	topicCmd.Flags().Bool("yaml", false, "print the stored records as YAML")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(topicCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	a, err := setupApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.service.ListTopics()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runTopic(cmd *cobra.Command, args []string) error {
	asYAML, _ := cmd.Flags().GetBool("yaml")
	topic := strings.Join(args, " ")

	a, err := setupApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !asYAML {
		out, err := a.service.GetTopic(topic)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	papers, err := a.service.LoadTopic(topic)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(papers)
	if err != nil {
		return fmt.Errorf("marshaling papers: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

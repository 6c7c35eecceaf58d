// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/research-server/pkg/types"
)

// summaryLimit is the number of summary characters shown per paper in a topic rendering.
const summaryLimit = 500

func formatSearchReport(topic string, papers []types.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d papers on '%s':\n\n", len(papers), topic)
	for i, p := range papers {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, p.Title)
		fmt.Fprintf(&b, "   - Authors: %s\n", strings.Join(p.Authors, ", "))
		fmt.Fprintf(&b, "   - Published: %s\n", p.Published)
		fmt.Fprintf(&b, "   - ID: %s\n\n", p.ID)
	}
	return b.String()
}

func formatDetail(paperID string, p types.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Paper Details for %s**\n\n", paperID)
	fmt.Fprintf(&b, "**Title**: %s\n\n", p.Title)
	fmt.Fprintf(&b, "**Authors**: %s\n\n", strings.Join(p.Authors, ", "))
	fmt.Fprintf(&b, "**Published**: %s\n\n", p.Published)
	fmt.Fprintf(&b, "**PDF URL**: %s\n\n", p.PDFURL)
	fmt.Fprintf(&b, "**Summary**: %s\n\n", p.Summary)
	return b.String()
}

func formatCatalog(topics []string) string {
	var b strings.Builder
	b.WriteString("# Available Topics\n\n")
	if len(topics) == 0 {
		b.WriteString("No topics found.\n")
		return b.String()
	}
	for _, t := range topics {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	fmt.Fprintf(&b, "\nUse @%s to access papers in that topic.\n", topics[len(topics)-1])
	return b.String()
}

func formatTopic(topic string, papers map[string]types.Paper) string {
	ids := make([]string, 0, len(papers))
	for id := range papers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	fmt.Fprintf(&b, "# Papers on %s\n\n", displayTopic(topic))
	fmt.Fprintf(&b, "Total papers: %d\n\n", len(papers))
	for _, id := range ids {
		p := papers[id]
		fmt.Fprintf(&b, "## %s\n", p.Title)
		fmt.Fprintf(&b, "- **Paper ID**: %s\n", id)
		fmt.Fprintf(&b, "- **Authors**: %s\n", strings.Join(p.Authors, ", "))
		fmt.Fprintf(&b, "- **Published**: %s\n", p.Published)
		fmt.Fprintf(&b, "- **PDF URL**: [%s](%s)\n\n", p.PDFURL, p.PDFURL)
		fmt.Fprintf(&b, "### Summary\n%s\n\n", truncateSummary(p.Summary))
		b.WriteString("---\n\n")
	}
	return b.String()
}

func formatMissingTopic(topic string) string {
	return fmt.Sprintf("# No papers found for topic: %s\n\nTry searching for papers on this topic first.", topic)
}

func formatCorruptTopic(topic string) string {
	return fmt.Sprintf("# Error reading papers data for %s\n\nThe papers data file is corrupted.", topic)
}

// displayTopic turns a slug or free-text topic into a title-cased heading.
func displayTopic(topic string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(topic, "_", " "))
}

// truncateSummary keeps the first summaryLimit characters and always appends
// an ellipsis, also when nothing was cut.
func truncateSummary(s string) string {
	r := []rune(s)
	if len(r) > summaryLimit {
		r = r[:summaryLimit]
	}
	return string(r) + "..."
}

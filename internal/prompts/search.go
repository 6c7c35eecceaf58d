// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompts renders the instructional prompts offered to MCP clients.
package prompts

import (
	"strings"
	"text/template"
)

// DefaultNumPapers is the paper count used when a caller gives none.
const DefaultNumPapers = 5

// searchPromptTmpl asks the assistant to search for papers with the
// search_papers tool and to synthesize what it finds.
var searchPromptTmpl = template.Must(template.New("search").Parse(`Search for {{.NumPapers}} academic papers about '{{.Topic}}' using the search_papers tool. Follow these instructions:
    1. First, search for papers using search_papers(topic='{{.Topic}}', max_results={{.NumPapers}})
    2. For each paper found, extract and organize the following information:
       - Paper title
       - Authors
       - Publication date
       - Brief summary of the key findings
       - Main contributions or innovations
       - Methodologies used
       - Relevance to the topic '{{.Topic}}'

    3. Provide a comprehensive summary that includes:
       - Overview of the current state of research in '{{.Topic}}'
       - Common themes and trends across the papers
       - Key research gaps or areas for future investigation
       - Most impactful or influential papers in this area

    4. Organize your findings in a clear, structured format with headings and bullet points for easy readability.

Please present both detailed information about each paper and a high-level synthesis of the research landscape in {{.Topic}}.`))

// SearchPrompt returns the research prompt for topic. A non-positive
// numPapers is replaced by DefaultNumPapers.
func SearchPrompt(topic string, numPapers int) string {
	if numPapers <= 0 {
		numPapers = DefaultNumPapers
	}
	var b strings.Builder
	// Only string and int fields; Execute does not fail.
	_ = searchPromptTmpl.Execute(&b, struct {
		Topic     string
		NumPapers int
	}{topic, numPapers})
	return b.String()
}

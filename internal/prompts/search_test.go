// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompts

import (
	"strings"
	"testing"
)

func TestSearchPrompt(t *testing.T) {
	got := SearchPrompt("graph neural networks", 7)

	for _, want := range []string{
		"Search for 7 academic papers about 'graph neural networks'",
		"search_papers(topic='graph neural networks', max_results=7)",
		"Overview of the current state of research in 'graph neural networks'",
		"Common themes and trends",
		"Key research gaps",
		"Most impactful or influential papers",
		"clear, structured format with headings and bullet points",
		"research landscape in graph neural networks.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSearchPromptDefaultCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		got := SearchPrompt("ml", n)
		if !strings.Contains(got, "max_results=5)") {
			t.Errorf("SearchPrompt(%d) should fall back to 5 papers", n)
		}
	}
}

func TestSearchPromptIsPure(t *testing.T) {
	if SearchPrompt("a", 2) != SearchPrompt("a", 2) {
		t.Error("same input should produce the same prompt")
	}
	if strings.Contains(SearchPrompt("<b>&", 1), "&lt;") {
		t.Error("topic must not be HTML-escaped")
	}
}

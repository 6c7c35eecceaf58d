// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateSummary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
	}{
		{"empty", "", 3},
		{"short", "A short abstract.", len("A short abstract.") + 3},
		{"exactly limit", strings.Repeat("a", summaryLimit), summaryLimit + 3},
		{"over limit", strings.Repeat("a", summaryLimit+1), summaryLimit + 3},
		{"multibyte", strings.Repeat("λ", summaryLimit*2), summaryLimit + 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateSummary(tt.input)
			if !strings.HasSuffix(got, "...") {
				t.Errorf("truncateSummary should always end with an ellipsis, got %q", got)
			}
			if n := utf8.RuneCountInString(got); n != tt.wantLen {
				t.Errorf("rune count = %d, want %d", n, tt.wantLen)
			}
			if !utf8.ValidString(got) {
				t.Error("truncation split a character")
			}
		})
	}
}

func TestDisplayTopic(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"machine_learning", "Machine Learning"},
		{"quantum computing", "Quantum Computing"},
		{"LLM agents", "Llm Agents"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := displayTopic(tt.input); got != tt.want {
				t.Errorf("displayTopic(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatSearchReportEmpty(t *testing.T) {
	got := formatSearchReport("nothing", nil)
	if got != "Found 0 papers on 'nothing':\n\n" {
		t.Errorf("formatSearchReport = %q", got)
	}
}

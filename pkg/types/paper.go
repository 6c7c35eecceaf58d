// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the research server:
// the stored paper record and the server configuration.
package types

// DateLayout is the layout of Paper.Published.
const DateLayout = "2006-01-02"

// Paper holds the metadata of one discovered paper as stored in a topic's
// papers_info.json. A Paper is immutable once fetched and is identified by ID.
type Paper struct {
	// ID is the provider-assigned identifier: the trailing path segment of the
	// arXiv entry URI (e.g. "2301.07041v1").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the first-version publication date formatted as DateLayout.
	Published string `json:"published" yaml:"published"`

	// Summary is the paper abstract.
	Summary string `json:"summary" yaml:"summary"`

	// PDFURL links to the paper PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}

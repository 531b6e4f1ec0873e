// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the OpenImpact platform.
package types

import "time"

// Paper holds the metadata stored for one arXiv paper.
type Paper struct {
	// ID is the arXiv identifier without version suffix (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title as returned by the arXiv API.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Comment is the author comment attached to the submission, when present.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Categories lists the arXiv subject categories (e.g. "cs.AI").
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Published is the submission date.
	Published time.Time `json:"published" yaml:"published"`

	// SourceURL is the abstract page URL (e.g. "https://arxiv.org/abs/2301.07041").
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Summary is the generated newsletter summary, nil until summarization runs.
	Summary *Summary `json:"summary,omitempty" yaml:"summary,omitempty"`

	// SummarizedAt records when the summary was generated.
	SummarizedAt time.Time `json:"summarized_at,omitzero" yaml:"summarized_at,omitempty"`
}

// Summarized reports whether a newsletter summary has been attached.
func (p Paper) Summarized() bool {
	return p.Summary != nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Summary is the Korean AI-newsletter summary of a paper. The JSON keys
// are English section headings while the values are Korean prose, matching
// the newsletter format the summarization prompt asks the model for. Every
// section is optional.
type Summary struct {
	WhatsNew              string `json:"What's New,omitempty" yaml:"whats_new,omitempty"`
	TechnicalDetails      string `json:"Technical Details,omitempty" yaml:"technical_details,omitempty"`
	PerformanceHighlights string `json:"Performance Highlights,omitempty" yaml:"performance_highlights,omitempty"`
}

// IsEmpty reports whether no section was produced.
func (s Summary) IsEmpty() bool {
	return s.WhatsNew == "" && s.TechnicalDetails == "" && s.PerformanceHighlights == ""
}

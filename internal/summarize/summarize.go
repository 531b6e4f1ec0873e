// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize turns stored papers into Korean newsletter summaries
// through an OpenAI-compatible chat-completions endpoint.
package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/openimpact/internal/store"
	"github.com/mesh-intelligence/openimpact/pkg/types"
)

const (
	defaultTemperature = 0.7
	defaultMaxRetries  = 3
)

// Summarizer generates newsletter summaries for papers.
type Summarizer struct {
	client      openai.Client
	model       string
	temperature float64
	logger      *zap.SugaredLogger
}

// New builds a Summarizer from the AI configuration. BaseURL may point at
// any OpenAI-compatible endpoint, e.g. a Gemini compatibility proxy.
func New(cfg types.AIConfig, logger *zap.SugaredLogger) *Summarizer {
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	opts = append(opts, option.WithMaxRetries(maxRetries))

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	return &Summarizer{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: temperature,
		logger:      logger,
	}
}

// Summarize asks the model for a newsletter summary of one paper.
func (s *Summarizer) Summarize(ctx context.Context, paper types.Paper) (*types.Summary, error) {
	if paper.Abstract == "" {
		return nil, fmt.Errorf("paper %s has no abstract to summarize", paper.ID)
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summarizationPrompt),
			openai.UserMessage(paperPrompt(paper)),
		},
		Temperature: openai.Float(s.temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion for %s: %w", paper.ID, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion for %s returned no choices", paper.ID)
	}

	summary, err := parseSummary(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing summary for %s: %w", paper.ID, err)
	}
	return summary, nil
}

// RunSummary holds counts from a batch summarization run.
type RunSummary struct {
	Summarized int
	Failed     int
}

// Run summarizes up to limit unsummarized papers from the store, attaching
// each result as it completes. A paper that fails does not abort the batch.
func (s *Summarizer) Run(ctx context.Context, st *store.Store, limit int, w io.Writer) (RunSummary, error) {
	papers, err := st.List(ctx, store.ListOptions{Unsummarized: true, Limit: limit})
	if err != nil {
		return RunSummary{}, fmt.Errorf("listing unsummarized papers: %w", err)
	}

	var summary RunSummary
	for _, paper := range papers {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		sum, err := s.Summarize(ctx, paper)
		if err != nil {
			s.logger.Errorw("summarization failed", "paper", paper.ID, "error", err)
			fmt.Fprintf(w, "failed      %s: %v\n", paper.ID, err)
			summary.Failed++
			continue
		}

		if err := st.AttachSummary(ctx, paper.ID, *sum); err != nil {
			s.logger.Errorw("storing summary failed", "paper", paper.ID, "error", err)
			fmt.Fprintf(w, "failed      %s: %v\n", paper.ID, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "summarized  %s  %s\n", paper.ID, paper.Title)
		summary.Summarized++
	}

	fmt.Fprintf(w, "\nsummarized: %d, failed: %d\n", summary.Summarized, summary.Failed)
	return summary, nil
}

// parseSummary extracts a Summary from model output. The prompt asks for a
// JSON list of single-key objects, but models also answer with a plain
// object or wrap the JSON in a markdown code fence; all three are accepted.
func parseSummary(raw string) (*types.Summary, error) {
	text := stripCodeFence(raw)

	sections := map[string]string{}

	var asList []map[string]string
	if err := json.Unmarshal([]byte(text), &asList); err == nil {
		for _, entry := range asList {
			for k, v := range entry {
				sections[k] = v
			}
		}
	} else {
		var asObject map[string]string
		if err := json.Unmarshal([]byte(text), &asObject); err != nil {
			return nil, fmt.Errorf("model output is not summary JSON: %w", err)
		}
		sections = asObject
	}

	summary := &types.Summary{
		WhatsNew:              sections["What's New"],
		TechnicalDetails:      sections["Technical Details"],
		PerformanceHighlights: sections["Performance Highlights"],
	}
	if summary.IsEmpty() {
		return nil, fmt.Errorf("model output contains no known summary sections")
	}
	return summary, nil
}

// stripCodeFence removes a surrounding markdown code fence, with or without
// a language tag.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line (e.g. "json").
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

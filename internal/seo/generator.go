package seo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/festiloc/festiloc-server/internal/ai"
	"github.com/festiloc/festiloc-server/internal/utils"
)

// textGenerator is the slice of the Gemini client the generator needs.
type textGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GenerateRequest describes a keyword-generation run.
type GenerateRequest struct {
	Topic          string `json:"topic"`
	Industry       string `json:"industry"`
	Audience       string `json:"audience"`
	Locale         string `json:"locale"`
	Count          int    `json:"count"`
	IncludeMetrics bool   `json:"includeMetrics"`
}

// KeywordSuggestion is one generated keyword with its estimated metrics.
type KeywordSuggestion struct {
	Keyword    string `json:"keyword"`
	Type       string `json:"type"`
	Relevance  int    `json:"relevance"`
	Difficulty int    `json:"difficulty,omitempty"`
	Volume     int    `json:"volume,omitempty"`
}

// Generator produces keyword suggestions through the generative API.
type Generator struct {
	ai textGenerator
}

// NewGenerator creates a keyword generator.
func NewGenerator(client textGenerator) *Generator {
	return &Generator{ai: client}
}

// Generate builds the structured prompt, calls the model and parses its JSON
// payload. A malformed payload is a recoverable error for the caller to
// surface, never a crash.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) ([]KeywordSuggestion, error) {
	if req.Count <= 0 {
		req.Count = 10
	}
	if req.Locale == "" {
		req.Locale = "fr"
	}

	raw, err := g.ai.GenerateContent(ctx, buildKeywordPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("keyword generation failed: %w", err)
	}

	return parseSuggestions(raw)
}

func buildKeywordPrompt(req GenerateRequest) string {
	metrics := ""
	if req.IncludeMetrics {
		metrics = ai.KeywordMetricsFields
	}
	return fmt.Sprintf(ai.KeywordPromptTemplate,
		req.Count, req.Topic, req.Industry, req.Audience, req.Locale, metrics)
}

// parseSuggestions decodes the model output, tolerating markdown fences.
func parseSuggestions(raw string) ([]KeywordSuggestion, error) {
	cleaned := utils.SanitizeJSON(raw)

	var suggestions []KeywordSuggestion
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		return nil, fmt.Errorf("malformed suggestion payload: %w", err)
	}
	return suggestions, nil
}

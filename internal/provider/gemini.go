// Package provider holds the AI provider clients behind the validation
// pipeline: a generative analyst (Gemini) and a search-augmented
// researcher (Perplexity). Both parse loosely and clamp hard; model
// output is never trusted to respect score budgets.
package provider

import (
	"context"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

const (
	geminiDefaultModel   = "gemini-2.5-flash"
	geminiDefaultTimeout = 60 * time.Second
	geminiProviderName   = "gemini"
)

// Generator produces text from a prompt. Satisfied by GeminiClient;
// tests substitute a canned implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiConfig configures the generative provider client.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiClient wraps the Google GenAI SDK.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a Gemini-backed generator. An empty API key is
// a configuration error, not a runtime fallback.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, &models.ConfigurationError{Key: "gemini.api_key", Reason: "must not be empty"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &models.ProviderCallError{Provider: geminiProviderName, Err: err}
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = geminiDefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = geminiDefaultTimeout
	}

	return &GeminiClient{client: client, model: model, timeout: timeout}, nil
}

// Generate sends the prompt and concatenates the candidate text parts.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &models.ProviderCallError{Provider: geminiProviderName, Err: err}
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", &models.ParseError{Provider: geminiProviderName, Hint: "empty response"}
	}
	return out, nil
}

// GeminiAnalyzer turns ideas into structured AI analyses through a
// Generator.
type GeminiAnalyzer struct {
	gen Generator
}

func NewGeminiAnalyzer(gen Generator) *GeminiAnalyzer {
	return &GeminiAnalyzer{gen: gen}
}

// Analyze prompts the generative provider and parses its assessment.
// Scores are clamped to their budgets regardless of what the model
// claims.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, input models.IdeaInput) (*models.AIAnalysis, error) {
	raw, err := a.gen.Generate(ctx, validationPrompt(input))
	if err != nil {
		return nil, err
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		log.Warn().Err(err).Str("title", input.Title).Msg("Gemini response failed to parse")
		return nil, err
	}
	return analysis, nil
}

func parseAnalysis(raw string) (*models.AIAnalysis, error) {
	extracted, ok := ExtractJSON(raw)
	if !ok {
		return nil, &models.ParseError{Provider: geminiProviderName, Hint: firstLine(raw)}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(extracted), &data); err != nil {
		return nil, &models.ParseError{Provider: geminiProviderName, Hint: err.Error()}
	}

	if _, ok := data["overall_score"]; !ok {
		return nil, &models.ValidationShapeError{Provider: geminiProviderName, Field: "overall_score"}
	}

	analysis := &models.AIAnalysis{
		OverallScore:     clampScore(coerceFloat(data["overall_score"]), models.MaxOverallScore),
		Recommendations:  coerceStringSlice(data["recommendations"]),
		DetailedAnalysis: coerceString(data["detailed_analysis"]),
	}

	if market, ok := data["market_analysis"].(map[string]any); ok {
		analysis.MarketAnalysis = models.MarketAnalysis{
			MarketSize:  coerceString(market["market_size"]),
			Competition: coerceString(market["competition"]),
			Trends:      coerceString(market["trends"]),
			Score:       clampScore(coerceFloat(market["score"]), models.MaxMarketAnalysisScore),
		}
	}

	if tech, ok := data["technical_feasibility"].(map[string]any); ok {
		analysis.TechnicalFeasibility = models.TechnicalFeasibility{
			Complexity:      coerceString(tech["complexity"]),
			ResourcesNeeded: coerceString(tech["resources_needed"]),
			TimeToMarket:    coerceString(tech["time_to_market"]),
			Score:           clampScore(coerceFloat(tech["score"]), models.MaxTechnicalFeasibilityScore),
		}
	}

	return analysis, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if nl := strings.Index(s, "\n"); nl >= 0 {
		s = s[:nl]
	}
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}

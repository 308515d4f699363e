package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

const (
	perplexityDefaultBaseURL = "https://api.perplexity.ai"
	perplexityDefaultModel   = "sonar-pro"
	perplexityDefaultTimeout = 60 * time.Second
	perplexityProviderName   = "perplexity"
)

// PerplexityConfig configures the research provider client.
type PerplexityConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// PerplexityClient is a search-augmented research client speaking the
// chat-completions wire format. A nil client is valid and means the
// provider is unconfigured; every method degrades instead of erroring.
type PerplexityClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

// NewPerplexityClient creates a research client, or nil when no API key
// is configured. Callers treat nil as "research unavailable".
func NewPerplexityClient(cfg PerplexityConfig) *PerplexityClient {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = perplexityDefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = perplexityDefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = perplexityDefaultTimeout
	}

	return &PerplexityClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

// Configured reports whether the client can make calls.
func (c *PerplexityClient) Configured() bool { return c != nil && c.apiKey != "" }

// chat runs one chat-completions round trip and returns the assistant
// text plus any citations.
func (c *PerplexityClient) chat(ctx context.Context, system, user string) (string, []string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", nil, &models.ProviderCallError{Provider: perplexityProviderName, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", nil, &models.ProviderCallError{Provider: perplexityProviderName, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", nil, &models.ProviderCallError{Provider: perplexityProviderName, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", nil, &models.ProviderCallError{Provider: perplexityProviderName, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil, &models.ProviderCallError{
			Provider: perplexityProviderName,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, firstLine(string(raw))),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", nil, &models.ParseError{Provider: perplexityProviderName, Hint: err.Error()}
	}
	if len(parsed.Choices) == 0 {
		return "", nil, &models.ParseError{Provider: perplexityProviderName, Hint: "no choices"}
	}
	return parsed.Choices[0].Message.Content, parsed.Citations, nil
}

// Validate researches the idea with live search. It never returns an
// error: any failure yields the documented neutral fallback so one dead
// provider cannot sink a validation run.
func (c *PerplexityClient) Validate(ctx context.Context, input models.IdeaInput) models.ResearchValidation {
	if !c.Configured() {
		return fallbackResearch("research provider not configured")
	}

	content, citations, err := c.chat(ctx,
		"You are a startup research analyst. Ground every claim in current sources.",
		researchPrompt(input))
	if err != nil {
		log.Warn().Err(err).Str("title", input.Title).Msg("Research validation failed, using fallback")
		return fallbackResearch(err.Error())
	}

	validation, err := parseResearch(content, citations)
	if err != nil {
		log.Warn().Err(err).Str("title", input.Title).Msg("Research response failed to parse, using fallback")
		return fallbackResearch(err.Error())
	}
	return validation
}

func parseResearch(content string, citations []string) (models.ResearchValidation, error) {
	extracted, ok := ExtractJSON(content)
	if !ok {
		return models.ResearchValidation{}, &models.ParseError{Provider: perplexityProviderName, Hint: firstLine(content)}
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(extracted), &data); err != nil {
		return models.ResearchValidation{}, &models.ParseError{Provider: perplexityProviderName, Hint: err.Error()}
	}
	if _, ok := data["market_score"]; !ok {
		return models.ResearchValidation{}, &models.ValidationShapeError{Provider: perplexityProviderName, Field: "market_score"}
	}

	market := clampScore(coerceFloat(data["market_score"]), models.MaxResearchMarketScore)
	technical := clampScore(coerceFloat(data["technical_score"]), models.MaxResearchTechnicalScore)
	business := clampScore(coerceFloat(data["business_score"]), models.MaxResearchBusinessScore)

	merged := citations
	if extra := coerceStringSlice(data["citations"]); len(extra) > 0 {
		merged = appendUnique(merged, extra)
	}

	return models.ResearchValidation{
		Score:          market + technical + business,
		MarketScore:    market,
		TechnicalScore: technical,
		BusinessScore:  business,
		AnalysisReport: models.ResearchReport{
			MarketValidation:     coerceString(data["market_validation"]),
			TechnicalFeasibility: coerceString(data["technical_feasibility"]),
			BusinessModel:        coerceString(data["business_model"]),
			OverallFeedback:      coerceString(data["overall_feedback"]),
			Recommendations:      coerceStringSlice(data["recommendations"]),
			Citations:            merged,
		},
	}, nil
}

// fallbackResearch is the neutral result used when live research is
// unavailable. Mid-range component scores keep merged output unbiased.
func fallbackResearch(reason string) models.ResearchValidation {
	return models.ResearchValidation{
		Score:          500,
		MarketScore:    200,
		TechnicalScore: 150,
		BusinessScore:  150,
		Fallback:       true,
		AnalysisReport: models.ResearchReport{
			OverallFeedback: "Live research was unavailable for this validation (" + reason + "). Scores shown are neutral placeholders; rerun validation for a researched result.",
		},
	}
}

func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		if !seen[s] {
			base = append(base, s)
			seen[s] = true
		}
	}
	return base
}

package provider

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tiktoken-go/tokenizer"

	"github.com/NoobSupreme1one/nucleus/internal/privacy"
	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// Token budgets per prompt field. User-submitted descriptions are
// unbounded; trimming them keeps prompts inside provider context windows
// and keeps per-call cost predictable.
const (
	maxFieldTokens = 1500
	truncationNote = " [truncated]"
)

var (
	encOnce sync.Once
	enc     tokenizer.Codec
)

func codec() tokenizer.Codec {
	encOnce.Do(func() {
		var err error
		enc, err = tokenizer.Get(tokenizer.Cl100kBase)
		if err != nil {
			log.Warn().Err(err).Msg("Tokenizer unavailable, falling back to rune truncation")
		}
	})
	return enc
}

// truncateToBudget trims text to at most budget tokens, appending a
// marker when anything was cut. Falls back to rune-count truncation if
// the tokenizer failed to load.
func truncateToBudget(text string, budget int) string {
	text = strings.TrimSpace(text)
	c := codec()
	if c == nil {
		// Rough heuristic: a token is about four characters.
		runes := []rune(text)
		if len(runes) <= budget*4 {
			return text
		}
		return string(runes[:budget*4]) + truncationNote
	}

	ids, _, err := c.Encode(text)
	if err != nil || len(ids) <= budget {
		return text
	}
	cut, err := c.Decode(ids[:budget])
	if err != nil {
		return text
	}
	return strings.TrimSpace(cut) + truncationNote
}

// promptFields scrubs credentials from the free-text fields and trims
// each to its token budget before they are embedded in a prompt. The
// input is redacted as a whole so the title is covered too.
func promptFields(in models.IdeaInput) (clean models.IdeaInput, problem, solution, audience string) {
	clean = privacy.RedactInput(in)
	return clean,
		truncateToBudget(clean.ProblemDescription, maxFieldTokens),
		truncateToBudget(clean.SolutionDescription, maxFieldTokens),
		truncateToBudget(clean.TargetAudience, maxFieldTokens)
}

// validationPrompt asks the generative provider for a structured
// assessment. The JSON shape here must match what parseAnalysis reads.
func validationPrompt(in models.IdeaInput) string {
	in, problem, solution, audience := promptFields(in)
	return fmt.Sprintf(`You are a startup analyst. Assess the following idea and respond with ONLY a JSON object, no prose and no markdown fences.

Idea title: %s
Market category: %s
Problem: %s
Solution: %s
Target audience: %s

Respond with exactly this shape:
{
  "overall_score": <number 0-1000>,
  "market_analysis": {"market_size": "<text>", "competition": "<text>", "trends": "<text>", "score": <number 0-150>},
  "technical_feasibility": {"complexity": "<text>", "resources_needed": "<text>", "time_to_market": "<text>", "score": <number 0-140>},
  "recommendations": ["<action>", ...],
  "detailed_analysis": "<text>"
}`, in.Title, in.MarketCategory, problem, solution, audience)
}

// researchPrompt asks the search-augmented provider for a cited,
// component-scored validation.
func researchPrompt(in models.IdeaInput) string {
	in, problem, solution, audience := promptFields(in)
	return fmt.Sprintf(`Research the viability of this startup idea using current market data. Respond with ONLY a JSON object.

Idea title: %s
Market category: %s
Problem: %s
Solution: %s
Target audience: %s

Respond with exactly this shape:
{
  "market_score": <number 0-400>,
  "technical_score": <number 0-300>,
  "business_score": <number 0-300>,
  "market_validation": "<evidence-backed market assessment>",
  "technical_feasibility": "<build assessment>",
  "business_model": "<revenue model assessment>",
  "overall_feedback": "<summary>",
  "recommendations": ["<action>", ...],
  "citations": ["<url>", ...]
}`, in.Title, in.MarketCategory, problem, solution, audience)
}

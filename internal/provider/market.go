package provider

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/NoobSupreme1one/nucleus/internal/privacy"
	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// Market intelligence lookups are cheaper and less critical than full
// validation, so they get a tighter deadline.
const marketIntelTimeout = 30 * time.Second

// Market intelligence topic names.
const (
	TopicMarketSizing         = "market-sizing"
	TopicCompetitiveLandscape = "competitive-landscape"
	TopicTrendScan            = "trend-scan"
)

// MarketSizing estimates market size for a category and audience.
func (c *PerplexityClient) MarketSizing(ctx context.Context, category models.MarketCategory, audience string) models.MarketIntelligence {
	return c.intel(ctx, TopicMarketSizing,
		"Estimate the total addressable market, serviceable market, and growth rate for a "+
			string(category)+" product aimed at: "+privacy.RedactSecrets(audience)+
			". Cite sources. Keep it under 200 words.")
}

// CompetitiveLandscape surveys existing players relevant to an idea.
func (c *PerplexityClient) CompetitiveLandscape(ctx context.Context, title, solution string) models.MarketIntelligence {
	return c.intel(ctx, TopicCompetitiveLandscape,
		"List the main existing competitors and substitutes for this product idea, with one line each on positioning: "+
			privacy.RedactSecrets(title)+" - "+privacy.RedactSecrets(solution)+
			". Cite sources. Keep it under 200 words.")
}

// TrendScan surveys current trends in a market category.
func (c *PerplexityClient) TrendScan(ctx context.Context, category models.MarketCategory) models.MarketIntelligence {
	return c.intel(ctx, TopicTrendScan,
		"Summarize the most significant current trends in the "+string(category)+
			" market that a new founder should know. Cite sources. Keep it under 200 words.")
}

// intel runs one research lookup. Unconfigured or failing lookups come
// back as Pending rather than errors; the report notes them as items for
// manual research.
func (c *PerplexityClient) intel(ctx context.Context, topic, query string) models.MarketIntelligence {
	if !c.Configured() {
		return pendingIntel(topic)
	}

	ctx, cancel := context.WithTimeout(ctx, marketIntelTimeout)
	defer cancel()

	content, citations, err := c.chat(ctx,
		"You are a market research assistant. Be concise and cite sources.", query)
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("Market intelligence lookup failed")
		return pendingIntel(topic)
	}

	return models.MarketIntelligence{
		Topic:   topic,
		Summary: content,
		Sources: citations,
	}
}

func pendingIntel(topic string) models.MarketIntelligence {
	return models.MarketIntelligence{
		Topic:   topic,
		Pending: true,
		Summary: "Research pending: no live research source was available. Complete this lookup manually.",
	}
}

// Package main provides the validation CLI: score an idea from the
// command line, optionally against live providers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NoobSupreme1one/nucleus/internal/cache"
	"github.com/NoobSupreme1one/nucleus/internal/config"
	"github.com/NoobSupreme1one/nucleus/internal/provider"
	"github.com/NoobSupreme1one/nucleus/internal/scoring"
	"github.com/NoobSupreme1one/nucleus/internal/validation"
	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

var Version = "dev"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		title    = flag.String("title", "", "idea title (required)")
		category = flag.String("category", "other", "market category: saas, ecommerce, fintech, healthtech, edtech, other")
		problem  = flag.String("problem", "", "problem description")
		solution = flag.String("solution", "", "solution description")
		audience = flag.String("audience", "", "target audience")
		live     = flag.Bool("live", false, "call configured AI providers instead of rubric-only scoring")
		debug    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Debug().Str("version", Version).Msg("nucleus validate")

	if *title == "" {
		fmt.Fprintln(os.Stderr, "usage: validate -title <title> [-category saas] [-problem ...] [-solution ...] [-audience ...] [-live]")
		os.Exit(2)
	}

	input := models.IdeaInput{
		Title:               *title,
		MarketCategory:      models.NormalizeCategory(*category),
		ProblemDescription:  *problem,
		SolutionDescription: *solution,
		TargetAudience:      *audience,
	}

	if !*live {
		printJSON(scoring.Score(input, time.Now()))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	var analyzer validation.Analyzer
	if cfg.GeminiAPIKey != "" {
		client, err := provider.NewGeminiClient(ctx, provider.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.ProviderTimeout(),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		analyzer = provider.NewGeminiAnalyzer(client)
	} else {
		log.Warn().Msg("NUCLEUS_GEMINI_API_KEY not set; generative analysis disabled")
	}

	research := provider.NewPerplexityClient(provider.PerplexityConfig{
		APIKey:  cfg.PerplexityAPIKey,
		Model:   cfg.PerplexityModel,
		Timeout: cfg.ProviderTimeout(),
	})
	if research == nil {
		log.Warn().Msg("NUCLEUS_PERPLEXITY_API_KEY not set; live research disabled")
	}

	manager := cache.NewManager(cache.Config{
		MaxEntries:    cfg.CacheMaxEntries,
		SweepInterval: cfg.SweepInterval(),
	})
	defer manager.Close()

	svc := validation.NewService(manager, analyzer, research, research)
	result, err := svc.Validate(ctx, input)
	if err != nil {
		log.Fatal().Err(err).Msg("Validation failed")
	}
	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
	fmt.Println(string(out))
}

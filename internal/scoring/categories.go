package scoring

import (
	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// Per-category lookup tables, all on the 0-10 raw scale. Unknown
// categories read the CategoryOther row via lookup().
var (
	marketSizeTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       8,
		models.CategoryEcommerce:  7,
		models.CategoryFintech:    9,
		models.CategoryHealthtech: 8.5,
		models.CategoryEdtech:     7,
		models.CategoryOther:      6,
	}

	growthTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       8.5,
		models.CategoryEcommerce:  6.5,
		models.CategoryFintech:    8,
		models.CategoryHealthtech: 9,
		models.CategoryEdtech:     7.5,
		models.CategoryOther:      6,
	}

	monetizationTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       9,
		models.CategoryEcommerce:  7,
		models.CategoryFintech:    9,
		models.CategoryHealthtech: 7.5,
		models.CategoryEdtech:     6.5,
		models.CategoryOther:      6,
	}

	// Higher means less regulatory drag.
	regulatoryTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       9,
		models.CategoryEcommerce:  8,
		models.CategoryFintech:    4,
		models.CategoryHealthtech: 3.5,
		models.CategoryEdtech:     7,
		models.CategoryOther:      7,
	}

	// Higher means easier to build.
	buildEaseTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       8,
		models.CategoryEcommerce:  8.5,
		models.CategoryFintech:    6,
		models.CategoryHealthtech: 5.5,
		models.CategoryEdtech:     7.5,
		models.CategoryOther:      7,
	}

	timeToMarketTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       8,
		models.CategoryEcommerce:  8.5,
		models.CategoryFintech:    6,
		models.CategoryHealthtech: 5,
		models.CategoryEdtech:     7.5,
		models.CategoryOther:      7,
	}

	distributionTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       8,
		models.CategoryEcommerce:  7,
		models.CategoryFintech:    6.5,
		models.CategoryHealthtech: 5.5,
		models.CategoryEdtech:     7,
		models.CategoryOther:      6.5,
	}

	pricingPowerTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       8,
		models.CategoryEcommerce:  6,
		models.CategoryFintech:    8.5,
		models.CategoryHealthtech: 7.5,
		models.CategoryEdtech:     6,
		models.CategoryOther:      6,
	}

	// Higher means lighter capital needs.
	capitalLightnessTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       9,
		models.CategoryEcommerce:  6,
		models.CategoryFintech:    6.5,
		models.CategoryHealthtech: 5,
		models.CategoryEdtech:     7.5,
		models.CategoryOther:      7,
	}

	payWillingnessTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       8,
		models.CategoryEcommerce:  7.5,
		models.CategoryFintech:    8.5,
		models.CategoryHealthtech: 8,
		models.CategoryEdtech:     6,
		models.CategoryOther:      6,
	}

	// Higher means more room against incumbents.
	incumbentRoomTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       6,
		models.CategoryEcommerce:  5,
		models.CategoryFintech:    6.5,
		models.CategoryHealthtech: 7,
		models.CategoryEdtech:     7,
		models.CategoryOther:      6.5,
	}

	entryBarrierTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       6.5,
		models.CategoryEcommerce:  5.5,
		models.CategoryFintech:    8,
		models.CategoryHealthtech: 8.5,
		models.CategoryEdtech:     6.5,
		models.CategoryOther:      6,
	}

	infraMaturityTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       8.5,
		models.CategoryEcommerce:  7.5,
		models.CategoryFintech:    7,
		models.CategoryHealthtech: 6,
		models.CategoryEdtech:     8,
		models.CategoryOther:      7,
	}

	// Higher means safer.
	marketRiskTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       7,
		models.CategoryEcommerce:  6,
		models.CategoryFintech:    6.5,
		models.CategoryHealthtech: 7,
		models.CategoryEdtech:     6,
		models.CategoryOther:      5.5,
	}

	financialRiskTable = map[models.MarketCategory]float64{
		models.CategorySaaS:       7.5,
		models.CategoryEcommerce:  6,
		models.CategoryFintech:    7,
		models.CategoryHealthtech: 6,
		models.CategoryEdtech:     6,
		models.CategoryOther:      6,
	}
)

// tenPoint scales a 0-10 raw heuristic onto a criterion worth per points.
func tenPoint(name string, per, raw float64) models.ScoreCriterion {
	return models.ScoreCriterion{
		Name:     name,
		Score:    clamp(raw, 10) * per / 10,
		MaxScore: per,
	}
}

// newCategory sums criteria into a category. MaxScore comes from the
// fixed budget table, not the float sum of per-criterion caps.
func newCategory(name string, criteria []models.ScoreCriterion) models.ScoreCategory {
	total := 0.0
	for _, c := range criteria {
		total += c.Score
	}
	return models.ScoreCategory{
		Name:     name,
		Score:    total,
		MaxScore: models.CategoryMaxScores[name],
		Criteria: criteria,
	}
}

// Several criteria below are fixed constants: they hold points for
// signals the product does not collect yet (founder profile depth,
// interview counts, runway). The budget stays stable as real heuristics
// replace them.

func marketOpportunity(in models.IdeaInput) models.ScoreCategory {
	per := models.CategoryMaxScores[models.CategoryMarketOpportunity] / 12

	return newCategory(models.CategoryMarketOpportunity, []models.ScoreCriterion{
		tenPoint("Market size", per, lookup(marketSizeTable, in.MarketCategory)),
		tenPoint("Growth rate", per, lookup(growthTable, in.MarketCategory)),
		tenPoint("Market timing", per, keywordScore(in.ProblemDescription, 5, 1.5, "now", "increasing", "growing", "trend", "rising")),
		tenPoint("Audience clarity", per, bandScore(in.TargetAudience, 3, 40)),
		tenPoint("Audience size signal", per, keywordScore(in.TargetAudience, 4, 2, "business", "companies", "consumers", "teams", "professionals")),
		tenPoint("Geographic reach", per, keywordScore(in.SolutionDescription, 5, 2.5, "global", "international", "worldwide")),
		tenPoint("Pain frequency", per, keywordScore(in.ProblemDescription, 4, 2, "daily", "every day", "constantly", "weekly")),
		tenPoint("Monetization potential", per, lookup(monetizationTable, in.MarketCategory)),
		tenPoint("Trend alignment", per, keywordScore(in.SolutionDescription, 4, 1.5, "ai", "automation", "mobile", "remote", "personalized")),
		tenPoint("Regulatory headroom", per, lookup(regulatoryTable, in.MarketCategory)),
		tenPoint("Channel access", per, 7),
		tenPoint("Whitespace", per, 6),
	})
}

func problemSolutionFit(in models.IdeaInput) models.ScoreCategory {
	per := models.CategoryMaxScores[models.CategoryProblemSolutionFit] / 12

	return newCategory(models.CategoryProblemSolutionFit, []models.ScoreCriterion{
		tenPoint("Problem severity", per, keywordScore(in.ProblemDescription, 4, 1.5, "critical", "urgent", "severe", "painful", "costly", "expensive")),
		tenPoint("Problem clarity", per, bandScore(in.ProblemDescription, 5, 80)),
		tenPoint("Problem specificity", per, keywordScore(in.ProblemDescription, 4, 2, "specifically", "struggle", "fail", "forget", "waste")),
		tenPoint("Solution directness", per, sharedWordScore(in.ProblemDescription, in.SolutionDescription)),
		tenPoint("Solution simplicity", per, keywordScore(in.SolutionDescription, 5, 2, "simple", "easy", "automated", "one-click")),
		tenPoint("Value proposition", per, keywordScore(in.SolutionDescription, 4, 1.5, "save", "reduce", "improve", "faster", "cheaper")),
		tenPoint("Differentiation", per, keywordScore(in.SolutionDescription, 4, 2, "unlike", "first", "only", "novel", "unique")),
		tenPoint("Adoption friction", per, keywordScore(in.SolutionDescription, 5, 2, "existing", "integrat", "no setup", "works with")),
		tenPoint("Urgency", per, keywordScore(in.ProblemDescription, 4, 2, "today", "immediately", "right now")),
		tenPoint("Alternative weakness", per, keywordScore(in.ProblemDescription, 4, 2, "manual", "spreadsheet", "workaround", "outdated")),
		tenPoint("Outcome measurability", per, keywordScore(in.SolutionDescription, 4, 2, "track", "measure", "metric", "report")),
		tenPoint("Willingness to pay", per, 6),
	})
}

func executionFeasibility(in models.IdeaInput) models.ScoreCategory {
	per := models.CategoryMaxScores[models.CategoryExecutionFeasibility] / 14

	return newCategory(models.CategoryExecutionFeasibility, []models.ScoreCriterion{
		tenPoint("Technical complexity", per, lookup(buildEaseTable, in.MarketCategory)),
		tenPoint("Scope realism", per, bandScore(in.SolutionDescription, 5, 100)),
		tenPoint("MVP clarity", per, keywordScore(in.SolutionDescription, 5, 2.5, "mvp", "prototype", "first version", "start with")),
		tenPoint("Time to market", per, lookup(timeToMarketTable, in.MarketCategory)),
		tenPoint("Team needs", per, 7),
		tenPoint("Tooling availability", per, keywordScore(in.SolutionDescription, 5, 1.5, "api", "open source", "cloud", "platform", "off-the-shelf")),
		tenPoint("Dependency risk", per, inverseKeywordScore(in.SolutionDescription, 8, 1.5, "depends on", "requires approval", "licensed")),
		tenPoint("Integration surface", per, keywordScore(in.SolutionDescription, 5, 2, "integrate", "connect", "sync")),
		tenPoint("Data availability", per, keywordScore(in.SolutionDescription, 5, 2, "data", "public", "available")),
		tenPoint("Distribution complexity", per, lookup(distributionTable, in.MarketCategory)),
		tenPoint("Support burden", per, 6),
		tenPoint("Compliance lift", per, lookup(regulatoryTable, in.MarketCategory)),
		tenPoint("Infrastructure cost", per, keywordScore(in.SolutionDescription, 6, 2, "serverless", "cloud", "managed")),
		tenPoint("Iteration speed", per, keywordScore(in.SolutionDescription, 5, 2, "feedback", "iterate", "experiment")),
	})
}

func personalFit(in models.IdeaInput) models.ScoreCategory {
	per := models.CategoryMaxScores[models.CategoryPersonalFit] / 10

	return newCategory(models.CategoryPersonalFit, []models.ScoreCriterion{
		tenPoint("Domain passion", per, keywordScore(in.ProblemDescription, 5, 2.5, "passion", "love", "personally")),
		tenPoint("Experience signal", per, keywordScore(in.SolutionDescription, 5, 2.5, "we have", "our team", "i built", "i have")),
		tenPoint("Founder-market fit", per, 6),
		tenPoint("Network access", per, 6),
		tenPoint("Skill coverage", per, 7),
		tenPoint("Commitment", per, keywordScore(in.SolutionDescription, 5, 3, "full-time", "dedicated")),
		tenPoint("Learning curve", per, lookup(buildEaseTable, in.MarketCategory)),
		tenPoint("Story authenticity", per, keywordScore(in.ProblemDescription, 5, 2, "i ", "my ", "we ")),
		tenPoint("Resilience", per, 6),
		tenPoint("Time availability", per, 7),
	})
}

func focusMomentum(in models.IdeaInput) models.ScoreCategory {
	per := models.CategoryMaxScores[models.CategoryFocusMomentum] / 12

	return newCategory(models.CategoryFocusMomentum, []models.ScoreCriterion{
		tenPoint("Single-problem focus", per, inverseKeywordScore(in.ProblemDescription, 8, 2, "and also", "as well as", "multiple problems")),
		tenPoint("Clear audience", per, bandScore(in.TargetAudience, 2, 30)),
		tenPoint("Scope discipline", per, bandScore(in.SolutionDescription, 5, 80)),
		tenPoint("Actionable next step", per, keywordScore(in.SolutionDescription, 4, 2.5, "launch", "pilot", "beta")),
		tenPoint("Early traction", per, keywordScore(in.SolutionDescription, 3, 2.5, "users", "customers", "waitlist", "signups")),
		tenPoint("Validation started", per, keywordScore(in.ProblemDescription, 3, 2.5, "interview", "survey", "tested", "asked")),
		tenPoint("Milestone clarity", per, 6),
		tenPoint("Roadmap hints", per, keywordScore(in.SolutionDescription, 4, 2, "then", "next", "phase", "later")),
		tenPoint("Execution urgency", per, keywordScore(in.SolutionDescription, 4, 2, "now", "ready", "immediately")),
		tenPoint("Distraction risk", per, 7),
		tenPoint("Iteration cadence", per, 6),
		tenPoint("Momentum signal", per, keywordScore(in.SolutionDescription, 3, 2.5, "already", "built", "growing")),
	})
}

func financialViability(in models.IdeaInput) models.ScoreCategory {
	per := models.CategoryMaxScores[models.CategoryFinancialViability] / 10

	return newCategory(models.CategoryFinancialViability, []models.ScoreCriterion{
		tenPoint("Revenue model clarity", per, keywordScore(in.SolutionDescription, 4, 2, "subscription", "fee", "commission", "pricing", "premium")),
		tenPoint("Pricing power", per, lookup(pricingPowerTable, in.MarketCategory)),
		tenPoint("Unit economics", per, keywordScore(in.SolutionDescription, 4, 2.5, "margin", "cost", "ltv", "cac")),
		tenPoint("Capital intensity", per, lookup(capitalLightnessTable, in.MarketCategory)),
		tenPoint("Recurring revenue", per, keywordScore(in.SolutionDescription, 4, 2.5, "monthly", "recurring", "subscription")),
		tenPoint("Payback signal", per, 6),
		tenPoint("Market willingness", per, lookup(payWillingnessTable, in.MarketCategory)),
		tenPoint("Cost structure", per, keywordScore(in.SolutionDescription, 5, 2, "low cost", "automated", "self-serve")),
		tenPoint("Funding need realism", per, 7),
		tenPoint("Breakeven plausibility", per, 6),
	})
}

func customerValidation(in models.IdeaInput) models.ScoreCategory {
	per := models.CategoryMaxScores[models.CategoryCustomerValidation] / 10

	return newCategory(models.CategoryCustomerValidation, []models.ScoreCriterion{
		tenPoint("Audience definition", per, bandScore(in.TargetAudience, 2, 30)),
		tenPoint("Reachable segment", per, keywordScore(in.TargetAudience, 4, 2, "online", "community", "linkedin", "forum")),
		tenPoint("Pain evidence", per, keywordScore(in.ProblemDescription, 4, 2, "complain", "frustrat", "struggle", "hate")),
		tenPoint("Existing demand", per, keywordScore(in.ProblemDescription, 4, 2, "search", "ask", "request", "looking for")),
		tenPoint("Feedback loops", per, keywordScore(in.SolutionDescription, 4, 2.5, "feedback", "review", "rating")),
		tenPoint("Persona specificity", per, keywordScore(in.TargetAudience, 4, 2, "small", "hobby", "enterprise", "freelance", "indie")),
		tenPoint("Willingness signals", per, keywordScore(in.TargetAudience, 4, 2.5, "pay", "budget", "spend")),
		tenPoint("Validation plan", per, 6),
		tenPoint("Champion likelihood", per, 6),
		tenPoint("Switching friction", per, inverseKeywordScore(in.SolutionDescription, 7, 2, "switch from", "migrate", "replace entirely")),
	})
}

func competitiveIntelligence(in models.IdeaInput) models.ScoreCategory {
	per := models.CategoryMaxScores[models.CategoryCompetitiveIntelligence] / 10

	return newCategory(models.CategoryCompetitiveIntelligence, []models.ScoreCriterion{
		tenPoint("Competitor awareness", per, keywordScore(in.ProblemDescription+" "+in.SolutionDescription, 3, 2.5, "competitor", "alternative", "existing solution")),
		tenPoint("Differentiation clarity", per, keywordScore(in.SolutionDescription, 4, 2, "unlike", "better", "unique", "instead of")),
		tenPoint("Moat potential", per, keywordScore(in.SolutionDescription, 3, 2.5, "network", "proprietary", "exclusive", "lock")),
		tenPoint("Incumbent room", per, lookup(incumbentRoomTable, in.MarketCategory)),
		tenPoint("Substitution risk", per, inverseKeywordScore(in.SolutionDescription, 8, 2, "free alternative", "diy", "manual workaround")),
		tenPoint("Barrier to entry", per, lookup(entryBarrierTable, in.MarketCategory)),
		tenPoint("Positioning clarity", per, bandScore(in.Title, 1, 6)),
		tenPoint("Niche defensibility", per, keywordScore(in.TargetAudience, 4, 2, "niche", "specialized", "specific")),
		tenPoint("Speed advantage", per, 6),
		tenPoint("Intel depth", per, 5),
	})
}

func resourceRequirements(in models.IdeaInput) models.ScoreCategory {
	per := models.CategoryMaxScores[models.CategoryResourceRequirements] / 10

	return newCategory(models.CategoryResourceRequirements, []models.ScoreCriterion{
		tenPoint("Initial capital", per, lookup(capitalLightnessTable, in.MarketCategory)),
		tenPoint("Team size need", per, 5),
		tenPoint("Technical resources", per, keywordScore(in.SolutionDescription, 5, 2, "cloud", "api", "existing tools")),
		tenPoint("Time investment", per, bandScore(in.SolutionDescription, 5, 100)),
		tenPoint("External dependencies", per, inverseKeywordScore(in.SolutionDescription, 8, 2, "partner", "license", "certification")),
		tenPoint("Tooling cost", per, keywordScore(in.SolutionDescription, 5, 2.5, "open source", "free tier")),
		tenPoint("Hiring need", per, 5),
		tenPoint("Infrastructure", per, lookup(infraMaturityTable, in.MarketCategory)),
		tenPoint("Legal overhead", per, lookup(regulatoryTable, in.MarketCategory)),
		tenPoint("Runway sensitivity", per, 5),
	})
}

func riskAssessment(in models.IdeaInput) models.ScoreCategory {
	per := models.CategoryMaxScores[models.CategoryRiskAssessment] / 14

	return newCategory(models.CategoryRiskAssessment, []models.ScoreCriterion{
		tenPoint("Market risk", per, lookup(marketRiskTable, in.MarketCategory)),
		tenPoint("Technical risk", per, lookup(buildEaseTable, in.MarketCategory)),
		tenPoint("Regulatory risk", per, lookup(regulatoryTable, in.MarketCategory)),
		tenPoint("Competition risk", per, inverseKeywordScore(in.ProblemDescription, 7, 2, "crowded", "saturated", "many solutions")),
		tenPoint("Adoption risk", per, bandScore(in.TargetAudience, 2, 40)),
		tenPoint("Platform dependency", per, inverseKeywordScore(in.SolutionDescription, 8, 1.5, "app store", "marketplace rules", "platform policy")),
		tenPoint("Key-person risk", per, 6),
		tenPoint("Timing risk", per, inverseKeywordScore(in.ProblemDescription, 7, 2, "too early", "someday", "eventually")),
		tenPoint("Financial risk", per, lookup(financialRiskTable, in.MarketCategory)),
		tenPoint("Churn risk", per, keywordScore(in.SolutionDescription, 4, 2.5, "retention", "sticky", "habit")),
		tenPoint("Scaling risk", per, keywordScore(in.SolutionDescription, 4, 2.5, "scale", "scalable")),
		tenPoint("Data and privacy risk", per, inverseKeywordScore(in.SolutionDescription, 8, 2, "personal data", "health record", "financial data")),
		tenPoint("Execution risk", per, bandScore(in.SolutionDescription, 5, 100)),
		tenPoint("Reputation risk", per, 7),
	})
}

// categoryBuilders maps category name to its builder, in canonical order.
var categoryBuilders = []struct {
	name  string
	build func(models.IdeaInput) models.ScoreCategory
}{
	{models.CategoryMarketOpportunity, marketOpportunity},
	{models.CategoryProblemSolutionFit, problemSolutionFit},
	{models.CategoryExecutionFeasibility, executionFeasibility},
	{models.CategoryPersonalFit, personalFit},
	{models.CategoryFocusMomentum, focusMomentum},
	{models.CategoryFinancialViability, financialViability},
	{models.CategoryCustomerValidation, customerValidation},
	{models.CategoryCompetitiveIntelligence, competitiveIntelligence},
	{models.CategoryResourceRequirements, resourceRequirements},
	{models.CategoryRiskAssessment, riskAssessment},
}

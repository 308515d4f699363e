package models

import "time"

// ReportSection names. Also used for logging and the Defaulted list.
const (
	SectionExecutiveSummary     = "executive_summary"
	SectionCompanyDescription   = "company_description"
	SectionMarketAnalysis       = "market_analysis"
	SectionOrganization         = "organization"
	SectionProductLine          = "product_line"
	SectionMarketingSales       = "marketing_sales"
	SectionFinancialProjections = "financial_projections"
	SectionFundingOpportunities = "funding_opportunities"
	SectionStartupResources     = "startup_resources"
	SectionDomainSuggestions    = "domain_suggestions"
	SectionFounderMatches       = "founder_matches"
)

// ReportSectionNames lists every section of a pro report, in order.
var ReportSectionNames = []string{
	SectionExecutiveSummary,
	SectionCompanyDescription,
	SectionMarketAnalysis,
	SectionOrganization,
	SectionProductLine,
	SectionMarketingSales,
	SectionFinancialProjections,
	SectionFundingOpportunities,
	SectionStartupResources,
	SectionDomainSuggestions,
	SectionFounderMatches,
}

// ExecutiveSummary opens the report.
type ExecutiveSummary struct {
	Summary          string   `json:"summary"`
	MissionStatement string   `json:"mission_statement"`
	KeysToSuccess    []string `json:"keys_to_success"`
}

// CompanyDescription covers structure and objectives.
type CompanyDescription struct {
	Overview       string   `json:"overview"`
	LegalStructure string   `json:"legal_structure"`
	Objectives     []string `json:"objectives"`
}

// MarketAnalysisSection is the long-form market chapter.
type MarketAnalysisSection struct {
	IndustryOverview string   `json:"industry_overview"`
	TargetMarket     string   `json:"target_market"`
	MarketSize       string   `json:"market_size"`
	Trends           []string `json:"trends"`
}

// OrganizationSection covers team and hiring.
type OrganizationSection struct {
	Structure  string   `json:"structure"`
	KeyRoles   []string `json:"key_roles"`
	HiringPlan string   `json:"hiring_plan"`
}

// ProductLineSection describes the offering.
type ProductLineSection struct {
	Description     string   `json:"description"`
	Features        []string `json:"features"`
	Roadmap         string   `json:"roadmap"`
	Differentiators []string `json:"differentiators"`
}

// MarketingSalesSection covers go-to-market.
type MarketingSalesSection struct {
	Strategy      string   `json:"strategy"`
	Channels      []string `json:"channels"`
	PricingModel  string   `json:"pricing_model"`
	SalesApproach string   `json:"sales_approach"`
}

// FinancialProjectionsSection is the three-year outlook.
type FinancialProjectionsSection struct {
	RevenueModel   string   `json:"revenue_model"`
	YearOneRevenue string   `json:"year_one_revenue"`
	BreakEven      string   `json:"break_even"`
	Assumptions    []string `json:"assumptions"`
}

// CompanyStage buckets how far along a venture is, used by funding
// matching.
type CompanyStage string

const (
	StageIdea     CompanyStage = "idea"
	StagePreSeed  CompanyStage = "pre-seed"
	StageSeed     CompanyStage = "seed"
	StageSeriesA  CompanyStage = "series-a"
	StageAnyStage CompanyStage = "any"
)

// FundingOpportunity is one static record from the curated catalog.
type FundingOpportunity struct {
	Name          string           `yaml:"name" json:"name"`
	Description   string           `yaml:"description" json:"description"`
	Categories    []MarketCategory `yaml:"categories" json:"categories"`
	Stages        []CompanyStage   `yaml:"stages" json:"stages"`
	MinAmountUSD  int              `yaml:"min_amount_usd" json:"min_amount_usd"`
	MaxAmountUSD  int              `yaml:"max_amount_usd" json:"max_amount_usd"`
	DeadlineDays  int              `yaml:"deadline_days" json:"deadline_days"`
	URL           string           `yaml:"url" json:"url"`
}

// FundingMatch scores one opportunity against an idea.
type FundingMatch struct {
	Opportunity FundingOpportunity `json:"opportunity"`
	Score       int                `json:"score"`
}

// Resource is one curated startup resource.
type Resource struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// DomainSuggestion is one candidate domain with its availability verdict.
type DomainSuggestion struct {
	Domain    string `json:"domain"`
	Available bool   `json:"available"`
	Source    string `json:"source"`
}

// ProReport is the long-form business-plan document. Every section is a
// value type so a generated report always carries all eleven sections;
// Defaulted lists the sections that fell back to their static payloads.
type ProReport struct {
	ExecutiveSummary     ExecutiveSummary            `json:"executive_summary"`
	CompanyDescription   CompanyDescription          `json:"company_description"`
	MarketAnalysis       MarketAnalysisSection       `json:"market_analysis"`
	Organization         OrganizationSection         `json:"organization"`
	ProductLine          ProductLineSection          `json:"product_line"`
	MarketingSales       MarketingSalesSection       `json:"marketing_sales"`
	FinancialProjections FinancialProjectionsSection `json:"financial_projections"`
	FundingOpportunities []FundingMatch              `json:"funding_opportunities"`
	StartupResources     []Resource                  `json:"startup_resources"`
	DomainSuggestions    []DomainSuggestion          `json:"domain_suggestions"`
	FounderMatches       []FounderMatch              `json:"founder_matches"`
	Defaulted            []string                    `json:"defaulted,omitempty"`
	GeneratedAt          time.Time                   `json:"generated_at"`
}

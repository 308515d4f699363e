package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// MarketCategory is the vertical an idea targets.
type MarketCategory string

const (
	CategorySaaS       MarketCategory = "saas"
	CategoryEcommerce  MarketCategory = "ecommerce"
	CategoryFintech    MarketCategory = "fintech"
	CategoryHealthtech MarketCategory = "healthtech"
	CategoryEdtech     MarketCategory = "edtech"
	CategoryOther      MarketCategory = "other"
)

// AllMarketCategories lists every recognized category. Unrecognized input
// falls back to CategoryOther in the scoring lookup tables.
var AllMarketCategories = []MarketCategory{
	CategorySaaS,
	CategoryEcommerce,
	CategoryFintech,
	CategoryHealthtech,
	CategoryEdtech,
	CategoryOther,
}

// NormalizeCategory maps arbitrary input to a known category,
// tolerating case and whitespace.
func NormalizeCategory(raw string) MarketCategory {
	c := MarketCategory(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range AllMarketCategories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

// IdeaInput is the free-text submission a founder makes. It is the sole
// input to the rubric scorer and the seed for every provider prompt.
type IdeaInput struct {
	Title               string         `json:"title"`
	MarketCategory      MarketCategory `json:"market_category"`
	ProblemDescription  string         `json:"problem_description"`
	SolutionDescription string         `json:"solution_description"`
	TargetAudience      string         `json:"target_audience"`
}

// Idea is a persisted startup idea. ValidationScore and AnalysisReport are
// overwritten exactly once per validation run; a later pro report is
// attached into the existing AnalysisReport rather than replacing it.
type Idea struct {
	ID                  string          `json:"id"`
	OwnerID             string          `json:"owner_id"`
	Title               string          `json:"title"`
	MarketCategory      MarketCategory  `json:"market_category"`
	ProblemDescription  string          `json:"problem_description"`
	SolutionDescription string          `json:"solution_description"`
	TargetAudience      string          `json:"target_audience"`
	Public              bool            `json:"public"`
	ValidationScore     float64         `json:"validation_score"`
	AnalysisReport      *AnalysisReport `json:"analysis_report,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// Input returns the idea's scoring input fields.
func (i *Idea) Input() IdeaInput {
	return IdeaInput{
		Title:               i.Title,
		MarketCategory:      i.MarketCategory,
		ProblemDescription:  i.ProblemDescription,
		SolutionDescription: i.SolutionDescription,
		TargetAudience:      i.TargetAudience,
	}
}

// AnalysisReport is the structured blob stored on an idea: the latest
// validation result plus an optional pro report attached afterwards.
type AnalysisReport struct {
	Validation *ComprehensiveValidationResult `json:"validation,omitempty"`
	ProReport  *ProReport                     `json:"pro_report,omitempty"`
}

// Scan implements sql.Scanner so AnalysisReport can live in a JSON column.
func (r *AnalysisReport) Scan(src interface{}) error {
	if src == nil {
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("AnalysisReport: unsupported type %T", src)
	}

	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, r)
}

// Value implements driver.Valuer for AnalysisReport.
func (r *AnalysisReport) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

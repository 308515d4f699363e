package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// StoreSuite runs against an in-memory SQLite database; the GORM layer
// keeps the queries portable to PostgreSQL.
type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (s *StoreSuite) SetupTest() {
	store, err := NewSQLiteStore(":memory:")
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) createUser(email string, public, matching bool) *models.User {
	user := &models.User{
		Email:                email,
		Name:                 "Founder",
		Role:                 models.RoleEngineer,
		Location:             "Portland, Oregon",
		Bio:                  "Builds things",
		ProfilePublic:        public,
		AllowFounderMatching: matching,
		CreatedAt:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.store.CreateUser(s.ctx, user))
	return user
}

func (s *StoreSuite) createIdea(ownerID string, public bool) *models.Idea {
	idea := &models.Idea{
		OwnerID:             ownerID,
		Title:               "PlantPal",
		MarketCategory:      models.CategorySaaS,
		ProblemDescription:  "Gardeners forget watering schedules",
		SolutionDescription: "App sends reminders",
		TargetAudience:      "Hobby gardeners",
		Public:              public,
		CreatedAt:           time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.store.CreateIdea(s.ctx, idea))
	return idea
}

// =============================================================================
// GOOD SCENARIOS - Expected normal operations
// =============================================================================

func (s *StoreSuite) TestCreateAndLoadUser() {
	created := s.createUser("sam@example.com", true, true)
	s.NotEmpty(created.ID, "create assigns an ID")

	s.createIdea(created.ID, true)

	loaded, err := s.store.User(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("sam@example.com", loaded.Email)
	s.Equal(models.RoleEngineer, loaded.Role)
	s.Require().Len(loaded.Ideas, 1)
	s.Equal("PlantPal", loaded.Ideas[0].Title)
}

func (s *StoreSuite) TestUserIdeas_NewestFirst() {
	user := s.createUser("sam@example.com", true, true)

	older := s.createIdea(user.ID, true)
	newer := &models.Idea{
		OwnerID: user.ID, Title: "Second", MarketCategory: models.CategoryFintech,
		CreatedAt: older.CreatedAt.Add(24 * time.Hour),
	}
	s.Require().NoError(s.store.CreateIdea(s.ctx, newer))

	ideas, err := s.store.UserIdeas(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(ideas, 2)
	s.Equal("Second", ideas[0].Title)
	s.Equal("PlantPal", ideas[1].Title)
}

func (s *StoreSuite) TestUpdateIdeaValidation_RoundTripsReport() {
	user := s.createUser("sam@example.com", true, true)
	idea := s.createIdea(user.ID, true)

	result := &models.ComprehensiveValidationResult{
		OverallScore:    712.5,
		ConfidenceLevel: models.ConfidenceMedium,
		Recommendations: []string{"Validate the riskiest assumption"},
	}
	s.Require().NoError(s.store.UpdateIdeaValidation(s.ctx, idea.ID, result))

	loaded, err := s.store.Idea(s.ctx, idea.ID)
	s.Require().NoError(err)
	s.Equal(712.5, loaded.ValidationScore)
	s.Require().NotNil(loaded.AnalysisReport)
	s.Require().NotNil(loaded.AnalysisReport.Validation)
	s.Equal(models.ConfidenceMedium, loaded.AnalysisReport.Validation.ConfidenceLevel)
}

func (s *StoreSuite) TestAttachProReport_PreservesValidation() {
	user := s.createUser("sam@example.com", true, true)
	idea := s.createIdea(user.ID, true)

	validation := &models.ComprehensiveValidationResult{OverallScore: 700}
	s.Require().NoError(s.store.UpdateIdeaValidation(s.ctx, idea.ID, validation))

	report := &models.ProReport{Defaulted: []string{models.SectionExecutiveSummary}}
	s.Require().NoError(s.store.AttachProReport(s.ctx, idea.ID, report))

	loaded, err := s.store.Idea(s.ctx, idea.ID)
	s.Require().NoError(err)
	s.Require().NotNil(loaded.AnalysisReport.Validation, "attaching a report must not drop the validation")
	s.Equal(700.0, loaded.AnalysisReport.Validation.OverallScore)
	s.Require().NotNil(loaded.AnalysisReport.ProReport)
	s.Equal([]string{models.SectionExecutiveSummary}, loaded.AnalysisReport.ProReport.Defaulted)
}

func (s *StoreSuite) TestUpdateIdeaValidation_PreservesProReport() {
	user := s.createUser("sam@example.com", true, true)
	idea := s.createIdea(user.ID, true)

	s.Require().NoError(s.store.AttachProReport(s.ctx, idea.ID, &models.ProReport{}))
	s.Require().NoError(s.store.UpdateIdeaValidation(s.ctx, idea.ID, &models.ComprehensiveValidationResult{OverallScore: 650}))

	loaded, err := s.store.Idea(s.ctx, idea.ID)
	s.Require().NoError(err)
	s.NotNil(loaded.AnalysisReport.ProReport, "revalidation must not drop the pro report")
	s.Equal(650.0, loaded.AnalysisReport.Validation.OverallScore)
}

func (s *StoreSuite) TestMatchableUsers_FiltersPrivacyAndVisibility() {
	seeker := s.createUser("seeker@example.com", true, true)

	candidate := s.createUser("candidate@example.com", true, true)
	s.createIdea(candidate.ID, true)
	s.createIdea(candidate.ID, false)

	s.createUser("private@example.com", false, true)
	s.createUser("optout@example.com", true, false)

	users, err := s.store.MatchableUsers(s.ctx, seeker.ID)
	s.Require().NoError(err)
	s.Require().Len(users, 1, "private and opted-out users are excluded")
	s.Equal(candidate.ID, users[0].ID)
	s.Len(users[0].Ideas, 1, "only public ideas are preloaded")
	s.True(users[0].Ideas[0].Public)
}

func (s *StoreSuite) TestUpdatePrivacy() {
	user := s.createUser("sam@example.com", true, true)
	s.Require().NoError(s.store.UpdatePrivacy(s.ctx, user.ID, false, false))

	loaded, err := s.store.User(s.ctx, user.ID)
	s.Require().NoError(err)
	s.False(loaded.ProfilePublic)
	s.False(loaded.AllowFounderMatching)
}

// =============================================================================
// EDGE CASES - Missing rows, visibility flips
// =============================================================================

func (s *StoreSuite) TestUser_NotFound() {
	_, err := s.store.User(s.ctx, "u-ghost")

	var notFound *models.NotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal("user", notFound.Resource)
}

func (s *StoreSuite) TestUpdateIdeaValidation_UnknownIdea() {
	var notFound *models.NotFoundError
	err := s.store.UpdateIdeaValidation(s.ctx, "i-ghost", &models.ComprehensiveValidationResult{})
	s.Require().ErrorAs(err, &notFound)
}

func (s *StoreSuite) TestSetIdeaVisibility() {
	user := s.createUser("sam@example.com", true, true)
	idea := s.createIdea(user.ID, true)

	s.Require().NoError(s.store.SetIdeaVisibility(s.ctx, idea.ID, false))

	loaded, err := s.store.Idea(s.ctx, idea.ID)
	s.Require().NoError(err)
	s.False(loaded.Public)

	var notFound *models.NotFoundError
	s.Require().ErrorAs(s.store.SetIdeaVisibility(s.ctx, "i-ghost", true), &notFound)
}

func (s *StoreSuite) TestPing() {
	s.NoError(s.store.Ping())
}

package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// UserRow is the persisted founder profile.
type UserRow struct {
	ID                   string `gorm:"primaryKey;type:text"`
	Email                string `gorm:"uniqueIndex;not null"`
	Name                 string
	Role                 string `gorm:"index"`
	Location             string
	Bio                  string    `gorm:"type:text"`
	ProfilePublic        bool      `gorm:"index:idx_users_matchable,priority:1"`
	AllowFounderMatching bool      `gorm:"index:idx_users_matchable,priority:2"`
	CreatedAt            time.Time `gorm:"not null"`

	Ideas []IdeaRow `gorm:"foreignKey:OwnerID"`
}

func (UserRow) TableName() string { return "users" }

func (u *UserRow) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IdeaRow is the persisted startup idea. AnalysisReport lands in a text
// column through its Scanner/Valuer implementation.
type IdeaRow struct {
	ID                  string `gorm:"primaryKey;type:text"`
	OwnerID             string `gorm:"index;not null"`
	Title               string `gorm:"not null"`
	MarketCategory      string `gorm:"index"`
	ProblemDescription  string `gorm:"type:text"`
	SolutionDescription string `gorm:"type:text"`
	TargetAudience      string `gorm:"type:text"`
	Public              bool   `gorm:"index"`
	ValidationScore     float64
	AnalysisReport      *models.AnalysisReport `gorm:"type:text"`
	CreatedAt           time.Time              `gorm:"not null"`
}

func (IdeaRow) TableName() string { return "ideas" }

func (i *IdeaRow) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Row <-> domain conversions.

func userFromRow(row *UserRow) *models.User {
	u := &models.User{
		ID:                   row.ID,
		Email:                row.Email,
		Name:                 row.Name,
		Role:                 models.FounderRole(row.Role),
		Location:             row.Location,
		Bio:                  row.Bio,
		ProfilePublic:        row.ProfilePublic,
		AllowFounderMatching: row.AllowFounderMatching,
		CreatedAt:            row.CreatedAt,
	}
	for i := range row.Ideas {
		u.Ideas = append(u.Ideas, *ideaFromRow(&row.Ideas[i]))
	}
	return u
}

func rowFromUser(u *models.User) *UserRow {
	return &UserRow{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 u.Name,
		Role:                 string(u.Role),
		Location:             u.Location,
		Bio:                  u.Bio,
		ProfilePublic:        u.ProfilePublic,
		AllowFounderMatching: u.AllowFounderMatching,
		CreatedAt:            u.CreatedAt,
	}
}

func ideaFromRow(row *IdeaRow) *models.Idea {
	return &models.Idea{
		ID:                  row.ID,
		OwnerID:             row.OwnerID,
		Title:               row.Title,
		MarketCategory:      models.MarketCategory(row.MarketCategory),
		ProblemDescription:  row.ProblemDescription,
		SolutionDescription: row.SolutionDescription,
		TargetAudience:      row.TargetAudience,
		Public:              row.Public,
		ValidationScore:     row.ValidationScore,
		AnalysisReport:      row.AnalysisReport,
		CreatedAt:           row.CreatedAt,
	}
}

func rowFromIdea(i *models.Idea) *IdeaRow {
	return &IdeaRow{
		ID:                  i.ID,
		OwnerID:             i.OwnerID,
		Title:               i.Title,
		MarketCategory:      string(i.MarketCategory),
		ProblemDescription:  i.ProblemDescription,
		SolutionDescription: i.SolutionDescription,
		TargetAudience:      i.TargetAudience,
		Public:              i.Public,
		ValidationScore:     i.ValidationScore,
		AnalysisReport:      i.AnalysisReport,
		CreatedAt:           i.CreatedAt,
	}
}

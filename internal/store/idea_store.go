package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// CreateIdea persists an idea, assigning an ID if absent.
func (s *Store) CreateIdea(ctx context.Context, idea *models.Idea) error {
	row := rowFromIdea(idea)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create idea: %w", err)
	}
	idea.ID = row.ID
	idea.CreatedAt = row.CreatedAt
	return nil
}

// Idea loads one idea.
func (s *Store) Idea(ctx context.Context, id string) (*models.Idea, error) {
	var row IdeaRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Resource: "idea", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("load idea: %w", err)
	}
	return ideaFromRow(&row), nil
}

// UserIdeas lists a founder's ideas, newest first.
func (s *Store) UserIdeas(ctx context.Context, userID string) ([]models.Idea, error) {
	var rows []IdeaRow
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load user ideas: %w", err)
	}

	ideas := make([]models.Idea, 0, len(rows))
	for i := range rows {
		ideas = append(ideas, *ideaFromRow(&rows[i]))
	}
	return ideas, nil
}

// UpdateIdeaValidation records a validation run: the score and the
// validation blob. An existing pro report on the idea survives; only
// the validation half of the analysis report is replaced.
func (s *Store) UpdateIdeaValidation(ctx context.Context, ideaID string, result *models.ComprehensiveValidationResult) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row IdeaRow
		err := tx.First(&row, "id = ?", ideaID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Resource: "idea", ID: ideaID}
		}
		if err != nil {
			return fmt.Errorf("load idea for validation update: %w", err)
		}

		report := row.AnalysisReport
		if report == nil {
			report = &models.AnalysisReport{}
		}
		report.Validation = result

		return tx.Model(&IdeaRow{}).
			Where("id = ?", ideaID).
			Updates(map[string]any{
				"validation_score": result.OverallScore,
				"analysis_report":  report,
			}).Error
	})
}

// AttachProReport stores a generated pro report on the idea without
// touching the validation half of the analysis report.
func (s *Store) AttachProReport(ctx context.Context, ideaID string, proReport *models.ProReport) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row IdeaRow
		err := tx.First(&row, "id = ?", ideaID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Resource: "idea", ID: ideaID}
		}
		if err != nil {
			return fmt.Errorf("load idea for report attach: %w", err)
		}

		report := row.AnalysisReport
		if report == nil {
			report = &models.AnalysisReport{}
		}
		report.ProReport = proReport

		return tx.Model(&IdeaRow{}).
			Where("id = ?", ideaID).
			Update("analysis_report", report).Error
	})
}

// SetIdeaVisibility flips an idea's public flag.
func (s *Store) SetIdeaVisibility(ctx context.Context, ideaID string, public bool) error {
	result := s.db.WithContext(ctx).
		Model(&IdeaRow{}).
		Where("id = ?", ideaID).
		Update("public", public)
	if result.Error != nil {
		return fmt.Errorf("set idea visibility: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Resource: "idea", ID: ideaID}
	}
	return nil
}

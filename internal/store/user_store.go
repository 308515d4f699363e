package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/NoobSupreme1one/nucleus/pkg/models"
)

// CreateUser persists a founder profile, assigning an ID if absent.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	row := rowFromUser(user)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = row.ID
	user.CreatedAt = row.CreatedAt
	return nil
}

// User loads a founder with all of their ideas.
func (s *Store) User(ctx context.Context, id string) (*models.User, error) {
	var row UserRow
	err := s.db.WithContext(ctx).
		Preload("Ideas").
		First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Resource: "user", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return userFromRow(&row), nil
}

// UpdatePrivacy sets the profile visibility flags.
func (s *Store) UpdatePrivacy(ctx context.Context, userID string, profilePublic, allowMatching bool) error {
	result := s.db.WithContext(ctx).
		Model(&UserRow{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"profile_public":         profilePublic,
			"allow_founder_matching": allowMatching,
		})
	if result.Error != nil {
		return fmt.Errorf("update privacy: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Resource: "user", ID: userID}
	}
	return nil
}

// MatchableUsers returns the founder-matching candidate pool: public
// profiles that opted into matching, with only their public ideas
// preloaded, excluding the seeker.
func (s *Store) MatchableUsers(ctx context.Context, excludeID string) ([]models.User, error) {
	var rows []UserRow
	err := s.db.WithContext(ctx).
		Preload("Ideas", "public = ?", true).
		Where("profile_public = ? AND allow_founder_matching = ? AND id <> ?", true, true, excludeID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load matchable users: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for i := range rows {
		users = append(users, *userFromRow(&rows[i]))
	}
	return users, nil
}

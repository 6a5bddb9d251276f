package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"gorm.io/gorm"
)

// GormProfileStore keeps profile documents in Postgres. UpdatedAt stamps use
// the database clock (NOW()), not the application clock, so stamps stay
// monotonic across app instances with skewed clocks.
type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) GetDocument(ctx context.Context, principalID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).
		Where("principal_id = ?", principalID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile document: %w", err)
	}
	return &profile, nil
}

func (s *GormProfileStore) UpsertDocument(ctx context.Context, principalID string, fields ProfileFields) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.UserProfile
		err := tx.Where("principal_id = ?", principalID).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile := models.UserProfile{PrincipalID: principalID, Role: models.RoleStudent}
			applyFields(&profile, fields)
			if err := tx.Create(&profile).Error; err != nil {
				return fmt.Errorf("failed to create profile document: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("failed to load profile document: %w", err)
		}

		updates := fieldUpdates(fields)
		if len(updates) == 0 {
			return nil
		}
		updates["updated_at"] = gorm.Expr("NOW()")
		if err := tx.Model(&models.UserProfile{}).
			Where("principal_id = ?", principalID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update profile document: %w", err)
		}
		return nil
	})
}

func (s *GormProfileStore) TeacherAccessKey(ctx context.Context) (string, error) {
	var setting models.SiteSetting
	err := s.db.WithContext(ctx).
		Where("key = ?", models.SettingTeacherAccessKey).
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to fetch teacher access key: %w", err)
	}
	return setting.Value, nil
}

func (s *GormProfileStore) SetTeacherAccessKey(ctx context.Context, key string) error {
	setting := models.SiteSetting{Key: models.SettingTeacherAccessKey, Value: key}
	if err := s.db.WithContext(ctx).Save(&setting).Error; err != nil {
		return fmt.Errorf("failed to store teacher access key: %w", err)
	}
	return nil
}

func applyFields(profile *models.UserProfile, fields ProfileFields) {
	if fields.Email != nil {
		profile.Email = *fields.Email
	}
	if fields.DisplayName != nil {
		profile.DisplayName = *fields.DisplayName
	}
	if fields.Role != nil {
		profile.Role = *fields.Role
	}
	if fields.Bio != nil {
		profile.Bio = *fields.Bio
	}
	if fields.AvatarURL != nil {
		profile.AvatarURL = fields.AvatarURL
	}
}

func fieldUpdates(fields ProfileFields) map[string]interface{} {
	updates := make(map[string]interface{})
	if fields.Email != nil {
		updates["email"] = *fields.Email
	}
	if fields.DisplayName != nil {
		updates["display_name"] = *fields.DisplayName
	}
	if fields.Role != nil {
		updates["role"] = *fields.Role
	}
	if fields.Bio != nil {
		updates["bio"] = *fields.Bio
	}
	if fields.AvatarURL != nil {
		updates["avatar_url"] = *fields.AvatarURL
	}
	return updates
}

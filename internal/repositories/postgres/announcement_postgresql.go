package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type AnnouncementPostgreSQL struct {
	db *gorm.DB
}

func NewAnnouncementPostgreSQL(db *gorm.DB) repositories.AnnouncementRepository {
	return &AnnouncementPostgreSQL{db: db}
}

func (r *AnnouncementPostgreSQL) Create(ctx context.Context, a *models.Announcement) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *AnnouncementPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementPostgreSQL) Update(ctx context.Context, a *models.Announcement) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}
	return nil
}

func (r *AnnouncementPostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error
}

func (r *AnnouncementPostgreSQL) List(ctx context.Context, filters repositories.AnnouncementFilters) ([]*models.Announcement, error) {
	query := r.db.WithContext(ctx).Model(&models.Announcement{})

	if filters.Search != "" {
		pattern := searchPattern(filters.Search)
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}
	if filters.ImportantOnly {
		query = query.Where("important = ?", true)
	}
	if filters.PublishedOnly {
		query = query.Where("published = ?", true)
	}

	var items []*models.Announcement
	err := applyPaging(query, filters.Limit, filters.Offset).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return items, nil
}

func (r *AnnouncementPostgreSQL) Publish(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Announcement{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"published":    true,
			"published_at": at,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to publish announcement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type VideoClassPostgreSQL struct {
	db *gorm.DB
}

func NewVideoClassPostgreSQL(db *gorm.DB) repositories.VideoClassRepository {
	return &VideoClassPostgreSQL{db: db}
}

func (r *VideoClassPostgreSQL) Create(ctx context.Context, vc *models.VideoClass) error {
	if err := r.db.WithContext(ctx).Create(vc).Error; err != nil {
		return fmt.Errorf("failed to create video class: %w", err)
	}
	return nil
}

func (r *VideoClassPostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.VideoClass{}, id).Error
}

func (r *VideoClassPostgreSQL) List(ctx context.Context, filters repositories.VideoClassFilters) ([]*models.VideoClass, error) {
	query := r.db.WithContext(ctx).Model(&models.VideoClass{})

	if filters.Subject != "" {
		query = query.Where("subject = ?", filters.Subject)
	}
	if filters.Search != "" {
		pattern := searchPattern(filters.Search)
		query = query.Where("topic ILIKE ? OR subject ILIKE ? OR teacher ILIKE ?", pattern, pattern, pattern)
	}
	if filters.DateFrom != nil {
		query = query.Where("starts_at >= ?", *filters.DateFrom)
	}

	var items []*models.VideoClass
	err := applyPaging(query, filters.Limit, filters.Offset).
		Order("starts_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list video classes: %w", err)
	}
	return items, nil
}

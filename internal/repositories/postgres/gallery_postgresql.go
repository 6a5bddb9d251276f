package postgres

import (
	"context"
	"fmt"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type GalleryPostgreSQL struct {
	db *gorm.DB
}

func NewGalleryPostgreSQL(db *gorm.DB) repositories.GalleryRepository {
	return &GalleryPostgreSQL{db: db}
}

func (r *GalleryPostgreSQL) AddImage(ctx context.Context, img *models.GalleryImage) error {
	if err := r.db.WithContext(ctx).Create(img).Error; err != nil {
		return fmt.Errorf("failed to add gallery image: %w", err)
	}
	return nil
}

func (r *GalleryPostgreSQL) DeleteImage(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.GalleryImage{}, id).Error
}

func (r *GalleryPostgreSQL) ListImages(ctx context.Context, filters repositories.GalleryFilters) ([]*models.GalleryImage, error) {
	query := r.db.WithContext(ctx).Model(&models.GalleryImage{})
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}

	var items []*models.GalleryImage
	err := applyPaging(query, filters.Limit, filters.Offset).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}
	return items, nil
}

func (r *GalleryPostgreSQL) AddAchievement(ctx context.Context, a *models.Achievement) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to add achievement: %w", err)
	}
	return nil
}

func (r *GalleryPostgreSQL) ListAchievements(ctx context.Context) ([]*models.Achievement, error) {
	var items []*models.Achievement
	err := r.db.WithContext(ctx).
		Order("year DESC, created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return items, nil
}

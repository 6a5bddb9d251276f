package postgres

import (
	"context"
	"fmt"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type NewsPostgreSQL struct {
	db *gorm.DB
}

func NewNewsPostgreSQL(db *gorm.DB) repositories.NewsRepository {
	return &NewsPostgreSQL{db: db}
}

func (r *NewsPostgreSQL) Create(ctx context.Context, n *models.NewsItem) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("failed to create news item: %w", err)
	}
	return nil
}

func (r *NewsPostgreSQL) GetByID(ctx context.Context, id uint) (*models.NewsItem, error) {
	var n models.NewsItem
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NewsPostgreSQL) Update(ctx context.Context, n *models.NewsItem) error {
	if err := r.db.WithContext(ctx).Save(n).Error; err != nil {
		return fmt.Errorf("failed to update news item: %w", err)
	}
	return nil
}

func (r *NewsPostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.NewsItem{}, id).Error
}

func (r *NewsPostgreSQL) List(ctx context.Context, filters repositories.NewsFilters) ([]*models.NewsItem, error) {
	query := r.db.WithContext(ctx).Model(&models.NewsItem{})

	if filters.Search != "" {
		pattern := searchPattern(filters.Search)
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}
	if filters.Author != "" {
		query = query.Where("author = ?", filters.Author)
	}

	var items []*models.NewsItem
	err := applyPaging(query, filters.Limit, filters.Offset).
		Order("published_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	return items, nil
}

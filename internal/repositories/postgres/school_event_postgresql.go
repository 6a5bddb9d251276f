package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type SchoolEventPostgreSQL struct {
	db *gorm.DB
}

func NewSchoolEventPostgreSQL(db *gorm.DB) repositories.SchoolEventRepository {
	return &SchoolEventPostgreSQL{db: db}
}

func (r *SchoolEventPostgreSQL) Create(ctx context.Context, e *models.SchoolEvent) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *SchoolEventPostgreSQL) GetByID(ctx context.Context, id uint) (*models.SchoolEvent, error) {
	var e models.SchoolEvent
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *SchoolEventPostgreSQL) Update(ctx context.Context, e *models.SchoolEvent) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *SchoolEventPostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SchoolEvent{}, id).Error
}

func (r *SchoolEventPostgreSQL) List(ctx context.Context, filters repositories.EventFilters) ([]*models.SchoolEvent, error) {
	query := r.db.WithContext(ctx).Model(&models.SchoolEvent{})

	if filters.Search != "" {
		pattern := searchPattern(filters.Search)
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filters.DateFrom != nil {
		query = query.Where("starts_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("starts_at <= ?", *filters.DateTo)
	}

	var items []*models.SchoolEvent
	err := applyPaging(query, filters.Limit, filters.Offset).
		Order("starts_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return items, nil
}

func (r *SchoolEventPostgreSQL) Upcoming(ctx context.Context, limit int) ([]*models.SchoolEvent, error) {
	if limit <= 0 {
		limit = 5
	}
	var items []*models.SchoolEvent
	err := r.db.WithContext(ctx).
		Where("starts_at >= ?", time.Now()).
		Order("starts_at ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	return items, nil
}

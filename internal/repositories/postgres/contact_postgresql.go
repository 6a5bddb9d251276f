package postgres

import (
	"context"
	"fmt"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type ContactPostgreSQL struct {
	db *gorm.DB
}

func NewContactPostgreSQL(db *gorm.DB) repositories.ContactRepository {
	return &ContactPostgreSQL{db: db}
}

func (r *ContactPostgreSQL) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.Status = models.ContactPending
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

func (r *ContactPostgreSQL) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *ContactPostgreSQL) List(ctx context.Context, filters repositories.ContactFilters) ([]*models.ContactMessage, error) {
	query := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var items []*models.ContactMessage
	err := applyPaging(query, filters.Limit, filters.Offset).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return items, nil
}

func (r *ContactPostgreSQL) MarkResponded(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("status", models.ContactResponded)
	if result.Error != nil {
		return fmt.Errorf("failed to mark contact message responded: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

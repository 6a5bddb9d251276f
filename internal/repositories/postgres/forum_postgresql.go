package postgres

import (
	"context"
	"fmt"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type ForumPostgreSQL struct {
	db *gorm.DB
}

func NewForumPostgreSQL(db *gorm.DB) repositories.ForumRepository {
	return &ForumPostgreSQL{db: db}
}

func (r *ForumPostgreSQL) CreateQuestion(ctx context.Context, q *models.ForumQuestion) error {
	if err := r.db.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *ForumPostgreSQL) GetQuestion(ctx context.Context, id uint) (*models.ForumQuestion, error) {
	var q models.ForumQuestion
	err := r.db.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *ForumPostgreSQL) ListQuestions(ctx context.Context, filters repositories.ForumFilters) ([]*models.ForumQuestion, error) {
	query := r.db.WithContext(ctx).Model(&models.ForumQuestion{})

	if filters.Search != "" {
		pattern := searchPattern(filters.Search)
		query = query.Where("title ILIKE ? OR body ILIKE ?", pattern, pattern)
	}
	if filters.AskedBy != "" {
		query = query.Where("asked_by = ?", filters.AskedBy)
	}
	if filters.ResolvedOnly {
		query = query.Where("resolved = ?", true)
	}

	var items []*models.ForumQuestion
	err := applyPaging(query, filters.Limit, filters.Offset).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return items, nil
}

func (r *ForumPostgreSQL) AddAnswer(ctx context.Context, a *models.ForumAnswer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.ForumQuestion{}).
			Where("id = ?", a.QuestionID).
			Count(&exists).Error; err != nil {
			return fmt.Errorf("failed to check question: %w", err)
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("failed to create answer: %w", err)
		}
		return nil
	})
}

func (r *ForumPostgreSQL) MarkResolved(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.ForumQuestion{}).
		Where("id = ?", id).
		Update("resolved", true)
	if result.Error != nil {
		return fmt.Errorf("failed to resolve question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

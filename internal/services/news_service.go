package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/SPS-2025/school-portal-service/internal/errors"
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/validator"
	"gorm.io/gorm"
)

// ===== REQUEST TYPES =====

type CreateNewsRequest struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Content  string  `json:"content" validate:"required"`
	Author   string  `json:"author" validate:"max=100"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type UpdateNewsRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Content  *string `json:"content,omitempty"`
	Author   *string `json:"author,omitempty" validate:"omitempty,max=100"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// ===== SERVICE INTERFACE =====

type NewsService interface {
	Create(ctx context.Context, req CreateNewsRequest) (*models.NewsItem, error)
	GetByID(ctx context.Context, id uint) (*models.NewsItem, error)
	Update(ctx context.Context, id uint, req UpdateNewsRequest) (*models.NewsItem, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.NewsFilters) ([]*models.NewsItem, error)
}

type newsService struct {
	repo      repositories.Repository
	notifier  NotificationEventService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewNewsService(
	repo repositories.Repository,
	notifier NotificationEventService,
	logger *slog.Logger,
	v *validator.Validator,
) NewsService {
	return &newsService{
		repo:      repo,
		notifier:  notifier,
		logger:    logger,
		validator: v,
	}
}

func (s *newsService) Create(ctx context.Context, req CreateNewsRequest) (*models.NewsItem, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	item := &models.NewsItem{
		Title:       req.Title,
		Content:     req.Content,
		Author:      req.Author,
		ImageURL:    req.ImageURL,
		PublishedAt: time.Now(),
	}

	if err := s.repo.News().Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create news item: %w", err)
	}

	if err := s.notifier.NotifyNewsPublished(ctx, item); err != nil {
		s.logger.Warn("Failed to publish news event", "news_id", item.ID, "error", err)
	}

	s.logger.Info("News item created", "news_id", item.ID, "author", item.Author)
	return item, nil
}

func (s *newsService) GetByID(ctx context.Context, id uint) (*models.NewsItem, error) {
	item, err := s.repo.News().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to get news item: %w", err)
	}
	return item, nil
}

func (s *newsService) Update(ctx context.Context, id uint, req UpdateNewsRequest) (*models.NewsItem, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Content != nil {
		item.Content = *req.Content
	}
	if req.Author != nil {
		item.Author = *req.Author
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}

	if err := s.repo.News().Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update news item: %w", err)
	}
	return item, nil
}

func (s *newsService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.News().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete news item: %w", err)
	}
	s.logger.Info("News item deleted", "news_id", id)
	return nil
}

func (s *newsService) List(ctx context.Context, filters repositories.NewsFilters) ([]*models.NewsItem, error) {
	return s.repo.News().List(ctx, filters)
}

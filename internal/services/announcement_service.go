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

type CreateAnnouncementRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Content   string `json:"content" validate:"required"`
	Important bool   `json:"important"`
}

type UpdateAnnouncementRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Content   *string `json:"content,omitempty"`
	Important *bool   `json:"important,omitempty"`
}

// ===== SERVICE INTERFACE =====

type AnnouncementService interface {
	Create(ctx context.Context, req CreateAnnouncementRequest, createdBy string) (*models.Announcement, error)
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	Update(ctx context.Context, id uint, req UpdateAnnouncementRequest) (*models.Announcement, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.AnnouncementFilters) ([]*models.Announcement, error)
	Publish(ctx context.Context, id uint) (*models.Announcement, error)
}

type announcementService struct {
	repo      repositories.Repository
	notifier  NotificationEventService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAnnouncementService(
	repo repositories.Repository,
	notifier NotificationEventService,
	logger *slog.Logger,
	v *validator.Validator,
) AnnouncementService {
	return &announcementService{
		repo:      repo,
		notifier:  notifier,
		logger:    logger,
		validator: v,
	}
}

func (s *announcementService) Create(ctx context.Context, req CreateAnnouncementRequest, createdBy string) (*models.Announcement, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	announcement := &models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		Important: req.Important,
		CreatedBy: createdBy,
	}

	if err := s.repo.Announcements().Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.logger.Info("Announcement created",
		"announcement_id", announcement.ID,
		"created_by", createdBy)
	return announcement, nil
}

func (s *announcementService) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	announcement, err := s.repo.Announcements().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	return announcement, nil
}

func (s *announcementService) Update(ctx context.Context, id uint, req UpdateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	announcement, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Content != nil {
		announcement.Content = *req.Content
	}
	if req.Important != nil {
		announcement.Important = *req.Important
	}

	if err := s.repo.Announcements().Update(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}
	return announcement, nil
}

func (s *announcementService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Announcements().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	s.logger.Info("Announcement deleted", "announcement_id", id)
	return nil
}

func (s *announcementService) List(ctx context.Context, filters repositories.AnnouncementFilters) ([]*models.Announcement, error) {
	return s.repo.Announcements().List(ctx, filters)
}

func (s *announcementService) Publish(ctx context.Context, id uint) (*models.Announcement, error) {
	if err := s.repo.Announcements().Publish(ctx, id, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to publish announcement: %w", err)
	}

	announcement, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Notification delivery is best-effort.
	if err := s.notifier.NotifyAnnouncementPublished(ctx, announcement); err != nil {
		s.logger.Warn("Failed to publish announcement event",
			"announcement_id", id,
			"error", err)
	}

	return announcement, nil
}

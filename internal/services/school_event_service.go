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

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	Location    string    `json:"location" validate:"max=200"`
	ImageURL    *string   `json:"image_url,omitempty" validate:"omitempty,url"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	ImageURL    *string    `json:"image_url,omitempty" validate:"omitempty,url"`
}

// ===== SERVICE INTERFACE =====

type SchoolEventService interface {
	Create(ctx context.Context, req CreateEventRequest, createdBy string) (*models.SchoolEvent, error)
	GetByID(ctx context.Context, id uint) (*models.SchoolEvent, error)
	Update(ctx context.Context, id uint, req UpdateEventRequest) (*models.SchoolEvent, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.EventFilters) ([]*models.SchoolEvent, error)
	Upcoming(ctx context.Context, limit int) ([]*models.SchoolEvent, error)
}

type schoolEventService struct {
	repo      repositories.Repository
	notifier  NotificationEventService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSchoolEventService(
	repo repositories.Repository,
	notifier NotificationEventService,
	logger *slog.Logger,
	v *validator.Validator,
) SchoolEventService {
	return &schoolEventService{
		repo:      repo,
		notifier:  notifier,
		logger:    logger,
		validator: v,
	}
}

func (s *schoolEventService) Create(ctx context.Context, req CreateEventRequest, createdBy string) (*models.SchoolEvent, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}
	if req.StartsAt.Before(time.Now()) {
		return nil, ErrEventInPast
	}

	event := &models.SchoolEvent{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		CreatedBy:   createdBy,
	}

	if err := s.repo.Events().Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := s.notifier.NotifySchoolEventCreated(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event created event",
			"event_id", event.ID,
			"error", err)
	}

	s.logger.Info("School event created",
		"event_id", event.ID,
		"starts_at", event.StartsAt,
		"created_by", createdBy)
	return event, nil
}

func (s *schoolEventService) GetByID(ctx context.Context, id uint) (*models.SchoolEvent, error) {
	event, err := s.repo.Events().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *schoolEventService) Update(ctx context.Context, id uint, req UpdateEventRequest) (*models.SchoolEvent, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.ImageURL != nil {
		event.ImageURL = req.ImageURL
	}

	if err := s.repo.Events().Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *schoolEventService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Events().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	s.logger.Info("School event deleted", "event_id", id)
	return nil
}

func (s *schoolEventService) List(ctx context.Context, filters repositories.EventFilters) ([]*models.SchoolEvent, error) {
	return s.repo.Events().List(ctx, filters)
}

func (s *schoolEventService) Upcoming(ctx context.Context, limit int) ([]*models.SchoolEvent, error) {
	return s.repo.Events().Upcoming(ctx, limit)
}

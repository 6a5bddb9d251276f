package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/SPS-2025/school-portal-service/internal/errors"
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/validator"
)

// ===== REQUEST TYPES =====

type CreateVideoClassRequest struct {
	Subject  string    `json:"subject" validate:"required,max=100"`
	Topic    string    `json:"topic" validate:"required,max=200"`
	Teacher  string    `json:"teacher" validate:"max=100"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	JoinURL  string    `json:"join_url" validate:"required,url"`
}

// ===== SERVICE INTERFACE =====

type VideoClassService interface {
	Create(ctx context.Context, req CreateVideoClassRequest, createdBy string) (*models.VideoClass, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.VideoClassFilters) ([]*models.VideoClass, error)
}

type videoClassService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewVideoClassService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
) VideoClassService {
	return &videoClassService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *videoClassService) Create(ctx context.Context, req CreateVideoClassRequest, createdBy string) (*models.VideoClass, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	vc := &models.VideoClass{
		Subject:   req.Subject,
		Topic:     req.Topic,
		Teacher:   req.Teacher,
		StartsAt:  req.StartsAt,
		JoinURL:   req.JoinURL,
		CreatedBy: createdBy,
	}
	if err := s.repo.VideoClasses().Create(ctx, vc); err != nil {
		return nil, fmt.Errorf("failed to create video class: %w", err)
	}

	s.logger.Info("Video class created",
		"video_class_id", vc.ID,
		"subject", vc.Subject,
		"created_by", createdBy)
	return vc, nil
}

func (s *videoClassService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.VideoClasses().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete video class: %w", err)
	}
	return nil
}

func (s *videoClassService) List(ctx context.Context, filters repositories.VideoClassFilters) ([]*models.VideoClass, error) {
	return s.repo.VideoClasses().List(ctx, filters)
}

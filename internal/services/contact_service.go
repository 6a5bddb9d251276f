package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/SPS-2025/school-portal-service/internal/errors"
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/validator"
	"gorm.io/gorm"
)

// ===== REQUEST TYPES =====

type SubmitContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required"`
}

// ===== SERVICE INTERFACE =====

type ContactService interface {
	Submit(ctx context.Context, req SubmitContactRequest) (*models.ContactMessage, error)
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	List(ctx context.Context, filters repositories.ContactFilters) ([]*models.ContactMessage, error)
	MarkResponded(ctx context.Context, id uint) error
}

type contactService struct {
	repo      repositories.Repository
	notifier  NotificationEventService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewContactService(
	repo repositories.Repository,
	notifier NotificationEventService,
	logger *slog.Logger,
	v *validator.Validator,
) ContactService {
	return &contactService{
		repo:      repo,
		notifier:  notifier,
		logger:    logger,
		validator: v,
	}
}

func (s *contactService) Submit(ctx context.Context, req SubmitContactRequest) (*models.ContactMessage, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.repo.Contact().Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to submit contact message: %w", err)
	}

	if err := s.notifier.NotifyContactReceived(ctx, msg); err != nil {
		s.logger.Warn("Failed to publish contact received event",
			"message_id", msg.ID,
			"error", err)
	}

	s.logger.Info("Contact message received", "message_id", msg.ID)
	return msg, nil
}

func (s *contactService) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	msg, err := s.repo.Contact().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact message: %w", err)
	}
	return msg, nil
}

func (s *contactService) List(ctx context.Context, filters repositories.ContactFilters) ([]*models.ContactMessage, error) {
	return s.repo.Contact().List(ctx, filters)
}

func (s *contactService) MarkResponded(ctx context.Context, id uint) error {
	if err := s.repo.Contact().MarkResponded(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to mark contact message responded: %w", err)
	}
	return nil
}

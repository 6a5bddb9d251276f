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

type AskQuestionRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body"`
}

type AnswerQuestionRequest struct {
	Body string `json:"body" validate:"required"`
}

// ===== SERVICE INTERFACE =====

type ForumService interface {
	AskQuestion(ctx context.Context, req AskQuestionRequest, askedBy string) (*models.ForumQuestion, error)
	GetQuestion(ctx context.Context, id uint) (*models.ForumQuestion, error)
	ListQuestions(ctx context.Context, filters repositories.ForumFilters) ([]*models.ForumQuestion, error)
	AnswerQuestion(ctx context.Context, questionID uint, req AnswerQuestionRequest, answeredBy string) (*models.ForumAnswer, error)
	ResolveQuestion(ctx context.Context, id uint, requestedBy string) error
}

type forumService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewForumService(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
) ForumService {
	return &forumService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *forumService) AskQuestion(ctx context.Context, req AskQuestionRequest, askedBy string) (*models.ForumQuestion, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	question := &models.ForumQuestion{
		Title:   req.Title,
		Body:    req.Body,
		AskedBy: askedBy,
	}
	if err := s.repo.Forum().CreateQuestion(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.Info("Forum question created",
		"question_id", question.ID,
		"asked_by", askedBy)
	return question, nil
}

func (s *forumService) GetQuestion(ctx context.Context, id uint) (*models.ForumQuestion, error) {
	question, err := s.repo.Forum().GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

func (s *forumService) ListQuestions(ctx context.Context, filters repositories.ForumFilters) ([]*models.ForumQuestion, error) {
	return s.repo.Forum().ListQuestions(ctx, filters)
}

func (s *forumService) AnswerQuestion(ctx context.Context, questionID uint, req AnswerQuestionRequest, answeredBy string) (*models.ForumAnswer, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	answer := &models.ForumAnswer{
		QuestionID: questionID,
		Body:       req.Body,
		AnsweredBy: answeredBy,
	}
	if err := s.repo.Forum().AddAnswer(ctx, answer); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to add answer: %w", err)
	}

	s.logger.Info("Forum answer added",
		"question_id", questionID,
		"answer_id", answer.ID,
		"answered_by", answeredBy)
	return answer, nil
}

// ResolveQuestion marks a question resolved. Only the asker may resolve it.
func (s *forumService) ResolveQuestion(ctx context.Context, id uint, requestedBy string) error {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	if question.AskedBy != requestedBy {
		return ErrForbidden
	}
	if err := s.repo.Forum().MarkResolved(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to resolve question: %w", err)
	}
	return nil
}

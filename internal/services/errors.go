package services

import (
	"errors"

	apperrors "github.com/SPS-2025/school-portal-service/internal/errors"
	"gorm.io/gorm"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Content specific errors
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrNewsNotFound         = errors.New("news item not found")
	ErrEventInPast          = errors.New("event starts in the past")

	// Forum specific errors
	ErrQuestionNotFound = errors.New("question not found")

	// Contact specific errors
	ErrContactNotFound = errors.New("contact message not found")

	// Upload specific errors
	ErrEmptyUpload       = errors.New("uploaded file is empty")
	ErrUnsupportedUpload = errors.New("unsupported file type")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAnnouncementNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrNewsNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrContactNotFound) ||
		errors.Is(err, gorm.ErrRecordNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// IsForbidden checks if error represents a permission failure
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

package store

import (
	"context"
	"errors"

	"github.com/SPS-2025/school-portal-service/internal/models"
)

var (
	ErrDocumentNotFound = errors.New("profile document not found")
	ErrSettingNotFound  = errors.New("setting not found")
)

// ProfileFields is the writable subset of a profile document. Nil fields
// are left untouched on upsert (merge semantics); non-nil fields overwrite.
type ProfileFields struct {
	Email       *string
	DisplayName *string
	Role        *models.UserRole
	Bio         *string
	AvatarURL   *string
}

// ProfileStore is the document store holding one profile per principal.
// The store stamps UpdatedAt with its own clock on every write; stamps are
// monotonically non-decreasing, callers never supply them.
type ProfileStore interface {
	GetDocument(ctx context.Context, principalID string) (*models.UserProfile, error)
	UpsertDocument(ctx context.Context, principalID string, fields ProfileFields) error

	// TeacherAccessKey returns the shared secret gating teacher-role
	// elevation, held in the same store as the profile documents.
	TeacherAccessKey(ctx context.Context) (string, error)
	SetTeacherAccessKey(ctx context.Context, key string) error
}

func strptr(s string) *string { return &s }

// NewStudentFields is the initial document written at signup: student role,
// empty display name and bio.
func NewStudentFields(email string) ProfileFields {
	role := models.RoleStudent
	return ProfileFields{
		Email:       strptr(email),
		DisplayName: strptr(""),
		Role:        &role,
		Bio:         strptr(""),
	}
}

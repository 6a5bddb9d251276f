package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

// UserProfile is the Profile Store document for one principal. The row is
// keyed by the identity provider's principal id; the provider remains the
// owner of email/password, this table only carries portal-level fields.
type UserProfile struct {
	PrincipalID string   `json:"principal_id" gorm:"primaryKey;size:255"`
	Email       string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	DisplayName string   `json:"display_name" gorm:"size:100"`
	Role        UserRole `json:"role" gorm:"size:20;default:student"`
	Bio         string   `json:"bio" gorm:"size:1000"`
	AvatarURL   *string  `json:"avatar_url" gorm:"size:500"`

	Extras datatypes.JSON `json:"extras,omitempty"`

	// UpdatedAt is stamped by the store on every write, never by callers.
	UpdatedAt time.Time      `json:"updated_at"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// SessionUser is the in-memory merge of the identity provider's principal
// and the profile document, as exposed to the UI surface. It exists only
// while the provider reports an authenticated principal.
type SessionUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        UserRole  `json:"role"`
	Bio         string    `json:"bio"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

// ProfileDraft carries not-yet-persisted edits from a profile form.
// Role and TeacherAccessKey are only honored together: elevating to the
// teacher role requires the access key to match the stored secret.
type ProfileDraft struct {
	DisplayName      string   `json:"display_name" validate:"required,min=1,max=100"`
	Bio              string   `json:"bio" validate:"max=1000"`
	Role             UserRole `json:"role,omitempty" validate:"omitempty,user_role"`
	TeacherAccessKey string   `json:"teacher_access_key,omitempty"`

	// Optional avatar upload; forwarded to the blob store when set.
	AvatarName string `json:"-"`
	Avatar     []byte `json:"-"`
}

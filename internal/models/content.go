package models

import (
	"time"

	"gorm.io/gorm"
)

// ===== PORTAL CONTENT =====

type Announcement struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Title     string `json:"title" gorm:"not null;size:200"`
	Content   string `json:"content" gorm:"not null;type:text"`
	Important bool   `json:"important" gorm:"default:false"`
	Published bool   `json:"published" gorm:"default:false;index"`
	CreatedBy string `json:"created_by" gorm:"size:255;index"`

	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Announcement) TableName() string { return "announcements" }

type SchoolEvent struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Description string    `json:"description" gorm:"type:text"`
	StartsAt    time.Time `json:"starts_at" gorm:"not null;index"`
	Location    string    `json:"location" gorm:"size:200"`
	ImageURL    *string   `json:"image_url,omitempty" gorm:"size:500"`
	CreatedBy   string    `json:"created_by" gorm:"size:255;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (SchoolEvent) TableName() string { return "school_events" }

type NewsItem struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Title    string  `json:"title" gorm:"not null;size:200"`
	Content  string  `json:"content" gorm:"not null;type:text"`
	Author   string  `json:"author" gorm:"size:100"`
	ImageURL *string `json:"image_url,omitempty" gorm:"size:500"`

	PublishedAt time.Time      `json:"published_at" gorm:"index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (NewsItem) TableName() string { return "news_items" }

type GalleryImage struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Title      string `json:"title" gorm:"size:200"`
	URL        string `json:"url" gorm:"not null;size:500"`
	Category   string `json:"category" gorm:"size:100;index"`
	UploadedBy string `json:"uploaded_by" gorm:"size:255"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (GalleryImage) TableName() string { return "gallery_images" }

type Achievement struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:200"`
	Description string `json:"description" gorm:"type:text"`
	Year        int    `json:"year" gorm:"index"`
	ImageURL    *string `json:"image_url,omitempty" gorm:"size:500"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Achievement) TableName() string { return "achievements" }

// ===== SITE SECTIONS =====

// AboutSection is the only admin-editable content block of the public site.
type AboutSection struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Title   string `json:"title" gorm:"not null;size:200"`
	Content string `json:"content" gorm:"not null;type:text"`
	Order   int    `json:"order" gorm:"column:display_order;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AboutSection) TableName() string { return "about_sections" }

type AcademicProgram struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:200"`
	Description string `json:"description" gorm:"type:text"`
	Grades      string `json:"grades" gorm:"size:100"`
	Curriculum  string `json:"curriculum" gorm:"size:200"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AcademicProgram) TableName() string { return "academic_programs" }

type AdmissionRequirement struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:200"`
	Description string `json:"description" gorm:"type:text"`
	// Comma-separated list of required documents.
	Documents string `json:"documents" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdmissionRequirement) TableName() string { return "admission_requirements" }

// SiteSetting is a single key/value row; the teacher access key lives here.
type SiteSetting struct {
	Key       string    `json:"key" gorm:"primaryKey;size:100"`
	Value     string    `json:"value" gorm:"size:500"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SiteSetting) TableName() string { return "site_settings" }

const SettingTeacherAccessKey = "teacher_access_key"

// ===== DASHBOARD =====

type VideoClass struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Subject  string    `json:"subject" gorm:"not null;size:100;index"`
	Topic    string    `json:"topic" gorm:"not null;size:200"`
	Teacher  string    `json:"teacher" gorm:"size:100"`
	StartsAt time.Time `json:"starts_at" gorm:"index"`
	JoinURL  string    `json:"join_url" gorm:"size:500"`

	CreatedBy string         `json:"created_by" gorm:"size:255"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (VideoClass) TableName() string { return "video_classes" }

type ForumQuestion struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"not null;size:200"`
	Body     string `json:"body" gorm:"type:text"`
	AskedBy  string `json:"asked_by" gorm:"size:255;index"`
	Resolved bool   `json:"resolved" gorm:"default:false"`

	Answers []ForumAnswer `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ForumQuestion) TableName() string { return "forum_questions" }

type ForumAnswer struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Body       string `json:"body" gorm:"not null;type:text"`
	AnsweredBy string `json:"answered_by" gorm:"size:255"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ForumAnswer) TableName() string { return "forum_answers" }

// ===== CONTACT =====

type ContactStatus string

const (
	ContactPending   ContactStatus = "pending"
	ContactResponded ContactStatus = "responded"
)

type ContactMessage struct {
	ID      uint          `json:"id" gorm:"primaryKey"`
	Name    string        `json:"name" gorm:"not null;size:100"`
	Email   string        `json:"email" gorm:"not null;size:255"`
	Subject string        `json:"subject" gorm:"size:200"`
	Message string        `json:"message" gorm:"not null;type:text"`
	Status  ContactStatus `json:"status" gorm:"size:20;default:pending;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (ContactMessage) TableName() string { return "contact_messages" }

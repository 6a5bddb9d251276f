package repositories

import (
	"context"
	"time"

	"github.com/SPS-2025/school-portal-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// The dashboard list pages filter client-side in spirit; here the same
// predicates run in the store: Search is a case-insensitive substring match
// on title/content fields.

type AnnouncementFilters struct {
	Search        string `json:"search"`
	ImportantOnly bool   `json:"important_only"`
	PublishedOnly bool   `json:"published_only"`
	Limit         int    `json:"limit"`
	Offset        int    `json:"offset"`
}

type EventFilters struct {
	Search   string     `json:"search"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

type NewsFilters struct {
	Search string `json:"search"`
	Author string `json:"author"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type GalleryFilters struct {
	Category string `json:"category"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

type VideoClassFilters struct {
	Subject  string     `json:"subject"`
	Search   string     `json:"search"`
	DateFrom *time.Time `json:"date_from"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

type ForumFilters struct {
	Search       string `json:"search"`
	AskedBy      string `json:"asked_by"`
	ResolvedOnly bool   `json:"resolved_only"`
	Limit        int    `json:"limit"`
	Offset       int    `json:"offset"`
}

type ContactFilters struct {
	Status *models.ContactStatus `json:"status"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	GetByID(ctx context.Context, id uint) (*models.Announcement, error)
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters AnnouncementFilters) ([]*models.Announcement, error)
	Publish(ctx context.Context, id uint, at time.Time) error
}

type SchoolEventRepository interface {
	Create(ctx context.Context, e *models.SchoolEvent) error
	GetByID(ctx context.Context, id uint) (*models.SchoolEvent, error)
	Update(ctx context.Context, e *models.SchoolEvent) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters EventFilters) ([]*models.SchoolEvent, error)
	Upcoming(ctx context.Context, limit int) ([]*models.SchoolEvent, error)
}

type NewsRepository interface {
	Create(ctx context.Context, n *models.NewsItem) error
	GetByID(ctx context.Context, id uint) (*models.NewsItem, error)
	Update(ctx context.Context, n *models.NewsItem) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters NewsFilters) ([]*models.NewsItem, error)
}

type GalleryRepository interface {
	AddImage(ctx context.Context, img *models.GalleryImage) error
	DeleteImage(ctx context.Context, id uint) error
	ListImages(ctx context.Context, filters GalleryFilters) ([]*models.GalleryImage, error)
	AddAchievement(ctx context.Context, a *models.Achievement) error
	ListAchievements(ctx context.Context) ([]*models.Achievement, error)
}

type SiteContentRepository interface {
	ListAboutSections(ctx context.Context) ([]*models.AboutSection, error)
	UpsertAboutSection(ctx context.Context, s *models.AboutSection) error
	DeleteAboutSection(ctx context.Context, id uint) error
	ListPrograms(ctx context.Context) ([]*models.AcademicProgram, error)
	ListAdmissionRequirements(ctx context.Context) ([]*models.AdmissionRequirement, error)
}

type VideoClassRepository interface {
	Create(ctx context.Context, vc *models.VideoClass) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters VideoClassFilters) ([]*models.VideoClass, error)
}

type ForumRepository interface {
	CreateQuestion(ctx context.Context, q *models.ForumQuestion) error
	GetQuestion(ctx context.Context, id uint) (*models.ForumQuestion, error)
	ListQuestions(ctx context.Context, filters ForumFilters) ([]*models.ForumQuestion, error)
	AddAnswer(ctx context.Context, a *models.ForumAnswer) error
	MarkResolved(ctx context.Context, id uint) error
}

type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	List(ctx context.Context, filters ContactFilters) ([]*models.ContactMessage, error)
	MarkResponded(ctx context.Context, id uint) error
}

// Repository aggregates all content repositories.
type Repository interface {
	Announcements() AnnouncementRepository
	Events() SchoolEventRepository
	News() NewsRepository
	Gallery() GalleryRepository
	SiteContent() SiteContentRepository
	VideoClasses() VideoClassRepository
	Forum() ForumRepository
	Contact() ContactRepository
}

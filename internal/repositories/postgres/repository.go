package postgres

import (
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	announcements repositories.AnnouncementRepository
	events        repositories.SchoolEventRepository
	news          repositories.NewsRepository
	gallery       repositories.GalleryRepository
	siteContent   repositories.SiteContentRepository
	videoClasses  repositories.VideoClassRepository
	forum         repositories.ForumRepository
	contact       repositories.ContactRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		announcements: NewAnnouncementPostgreSQL(db),
		events:        NewSchoolEventPostgreSQL(db),
		news:          NewNewsPostgreSQL(db),
		gallery:       NewGalleryPostgreSQL(db),
		siteContent:   NewSiteContentPostgreSQL(db),
		videoClasses:  NewVideoClassPostgreSQL(db),
		forum:         NewForumPostgreSQL(db),
		contact:       NewContactPostgreSQL(db),
	}
}

func (r *repository) Announcements() repositories.AnnouncementRepository { return r.announcements }
func (r *repository) Events() repositories.SchoolEventRepository         { return r.events }
func (r *repository) News() repositories.NewsRepository                  { return r.news }
func (r *repository) Gallery() repositories.GalleryRepository            { return r.gallery }
func (r *repository) SiteContent() repositories.SiteContentRepository    { return r.siteContent }
func (r *repository) VideoClasses() repositories.VideoClassRepository    { return r.videoClasses }
func (r *repository) Forum() repositories.ForumRepository                { return r.forum }
func (r *repository) Contact() repositories.ContactRepository            { return r.contact }

// AutoMigrate creates/updates all portal tables, including the profile
// document and settings tables owned by the store package.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserProfile{},
		&models.SiteSetting{},
		&models.Announcement{},
		&models.SchoolEvent{},
		&models.NewsItem{},
		&models.GalleryImage{},
		&models.Achievement{},
		&models.AboutSection{},
		&models.AcademicProgram{},
		&models.AdmissionRequirement{},
		&models.VideoClass{},
		&models.ForumQuestion{},
		&models.ForumAnswer{},
		&models.ContactMessage{},
	)
}

// applyPaging applies sane defaults so unbounded lists never ship a whole
// table to the client.
func applyPaging(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return db.Limit(limit).Offset(offset)
}

func searchPattern(search string) string {
	return "%" + search + "%"
}

package services

import (
	"log/slog"

	"github.com/SPS-2025/school-portal-service/internal/cache"
	"github.com/SPS-2025/school-portal-service/internal/events"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/store"
	"github.com/SPS-2025/school-portal-service/internal/validator"
)

// ServiceManager aggregates all portal services.
type ServiceManager interface {
	Announcements() AnnouncementService
	Events() SchoolEventService
	News() NewsService
	Gallery() GalleryService
	SiteContent() SiteContentService
	VideoClasses() VideoClassService
	Forum() ForumService
	Contact() ContactService
	Export() ExportService
	Notifications() NotificationEventService
}

type serviceManager struct {
	announcements AnnouncementService
	events        SchoolEventService
	news          NewsService
	gallery       GalleryService
	siteContent   SiteContentService
	videoClasses  VideoClassService
	forum         ForumService
	contact       ContactService
	export        ExportService
	notifications NotificationEventService
}

func NewServiceManager(
	repo repositories.Repository,
	blobs store.BlobStore,
	cacheService cache.CacheService,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) ServiceManager {
	notifications := NewNotificationEventService(eventPublisher, logger)

	return &serviceManager{
		announcements: NewAnnouncementService(repo, notifications, logger, v),
		events:        NewSchoolEventService(repo, notifications, logger, v),
		news:          NewNewsService(repo, notifications, logger, v),
		gallery:       NewGalleryService(repo, blobs, logger, v),
		siteContent:   NewSiteContentService(repo, cacheService, logger, v),
		videoClasses:  NewVideoClassService(repo, logger, v),
		forum:         NewForumService(repo, logger, v),
		contact:       NewContactService(repo, notifications, logger, v),
		export:        NewExportService(repo, logger),
		notifications: notifications,
	}
}

func (m *serviceManager) Announcements() AnnouncementService      { return m.announcements }
func (m *serviceManager) Events() SchoolEventService              { return m.events }
func (m *serviceManager) News() NewsService                       { return m.news }
func (m *serviceManager) Gallery() GalleryService                 { return m.gallery }
func (m *serviceManager) SiteContent() SiteContentService         { return m.siteContent }
func (m *serviceManager) VideoClasses() VideoClassService         { return m.videoClasses }
func (m *serviceManager) Forum() ForumService                     { return m.forum }
func (m *serviceManager) Contact() ContactService                 { return m.contact }
func (m *serviceManager) Export() ExportService                   { return m.export }
func (m *serviceManager) Notifications() NotificationEventService { return m.notifications }

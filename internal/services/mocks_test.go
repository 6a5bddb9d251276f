package services

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/SPS-2025/school-portal-service/internal/cache"
	"github.com/SPS-2025/school-portal-service/internal/events"
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/store"
	"github.com/SPS-2025/school-portal-service/internal/validator"
	"gorm.io/gorm"
)

// fakeRepository is an in-memory repositories.Repository used by the service
// tests. IDs are assigned sequentially per entity type.
type fakeRepository struct {
	announcements fakeAnnouncementRepo
	schoolEvents  fakeEventRepo
	news          fakeNewsRepo
	gallery       fakeGalleryRepo
	siteContent   fakeSiteContentRepo
	videoClasses  fakeVideoClassRepo
	forum         fakeForumRepo
	contact       fakeContactRepo
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{}
}

func (r *fakeRepository) Announcements() repositories.AnnouncementRepository { return &r.announcements }
func (r *fakeRepository) Events() repositories.SchoolEventRepository         { return &r.schoolEvents }
func (r *fakeRepository) News() repositories.NewsRepository                  { return &r.news }
func (r *fakeRepository) Gallery() repositories.GalleryRepository            { return &r.gallery }
func (r *fakeRepository) SiteContent() repositories.SiteContentRepository    { return &r.siteContent }
func (r *fakeRepository) VideoClasses() repositories.VideoClassRepository    { return &r.videoClasses }
func (r *fakeRepository) Forum() repositories.ForumRepository                { return &r.forum }
func (r *fakeRepository) Contact() repositories.ContactRepository            { return &r.contact }

// ===== ANNOUNCEMENTS =====

type fakeAnnouncementRepo struct {
	items  []*models.Announcement
	nextID uint
}

func (f *fakeAnnouncementRepo) Create(ctx context.Context, a *models.Announcement) error {
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	copied := *a
	f.items = append(f.items, &copied)
	return nil
}

func (f *fakeAnnouncementRepo) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	for _, a := range f.items {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAnnouncementRepo) Update(ctx context.Context, a *models.Announcement) error {
	for i, existing := range f.items {
		if existing.ID == a.ID {
			copied := *a
			f.items[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAnnouncementRepo) Delete(ctx context.Context, id uint) error {
	for i, a := range f.items {
		if a.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeAnnouncementRepo) List(ctx context.Context, filters repositories.AnnouncementFilters) ([]*models.Announcement, error) {
	var out []*models.Announcement
	for _, a := range f.items {
		if filters.PublishedOnly && !a.Published {
			continue
		}
		if filters.ImportantOnly && !a.Important {
			continue
		}
		if filters.Search != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(filters.Search)) {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeAnnouncementRepo) Publish(ctx context.Context, id uint, at time.Time) error {
	for _, a := range f.items {
		if a.ID == id {
			a.Published = true
			a.PublishedAt = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ===== SCHOOL EVENTS =====

type fakeEventRepo struct {
	items  []*models.SchoolEvent
	nextID uint
}

func (f *fakeEventRepo) Create(ctx context.Context, e *models.SchoolEvent) error {
	f.nextID++
	e.ID = f.nextID
	copied := *e
	f.items = append(f.items, &copied)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id uint) (*models.SchoolEvent, error) {
	for _, e := range f.items {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, e *models.SchoolEvent) error {
	for i, existing := range f.items {
		if existing.ID == e.ID {
			copied := *e
			f.items[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeEventRepo) Delete(ctx context.Context, id uint) error {
	for i, e := range f.items {
		if e.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context, filters repositories.EventFilters) ([]*models.SchoolEvent, error) {
	out := make([]*models.SchoolEvent, 0, len(f.items))
	for _, e := range f.items {
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeEventRepo) Upcoming(ctx context.Context, limit int) ([]*models.SchoolEvent, error) {
	var out []*models.SchoolEvent
	now := time.Now()
	for _, e := range f.items {
		if e.StartsAt.After(now) {
			copied := *e
			out = append(out, &copied)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ===== NEWS =====

type fakeNewsRepo struct {
	items  []*models.NewsItem
	nextID uint
}

func (f *fakeNewsRepo) Create(ctx context.Context, n *models.NewsItem) error {
	f.nextID++
	n.ID = f.nextID
	copied := *n
	f.items = append(f.items, &copied)
	return nil
}

func (f *fakeNewsRepo) GetByID(ctx context.Context, id uint) (*models.NewsItem, error) {
	for _, n := range f.items {
		if n.ID == id {
			copied := *n
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNewsRepo) Update(ctx context.Context, n *models.NewsItem) error {
	for i, existing := range f.items {
		if existing.ID == n.ID {
			copied := *n
			f.items[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNewsRepo) Delete(ctx context.Context, id uint) error {
	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeNewsRepo) List(ctx context.Context, filters repositories.NewsFilters) ([]*models.NewsItem, error) {
	out := make([]*models.NewsItem, 0, len(f.items))
	for _, n := range f.items {
		copied := *n
		out = append(out, &copied)
	}
	return out, nil
}

// ===== GALLERY =====

type fakeGalleryRepo struct {
	images       []*models.GalleryImage
	achievements []*models.Achievement
	nextID       uint
}

func (f *fakeGalleryRepo) AddImage(ctx context.Context, img *models.GalleryImage) error {
	f.nextID++
	img.ID = f.nextID
	copied := *img
	f.images = append(f.images, &copied)
	return nil
}

func (f *fakeGalleryRepo) DeleteImage(ctx context.Context, id uint) error {
	for i, img := range f.images {
		if img.ID == id {
			f.images = append(f.images[:i], f.images[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeGalleryRepo) ListImages(ctx context.Context, filters repositories.GalleryFilters) ([]*models.GalleryImage, error) {
	var out []*models.GalleryImage
	for _, img := range f.images {
		if filters.Category != "" && img.Category != filters.Category {
			continue
		}
		copied := *img
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeGalleryRepo) AddAchievement(ctx context.Context, a *models.Achievement) error {
	f.nextID++
	a.ID = f.nextID
	copied := *a
	f.achievements = append(f.achievements, &copied)
	return nil
}

func (f *fakeGalleryRepo) ListAchievements(ctx context.Context) ([]*models.Achievement, error) {
	out := make([]*models.Achievement, 0, len(f.achievements))
	for _, a := range f.achievements {
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

// ===== SITE CONTENT =====

type fakeSiteContentRepo struct {
	sections []*models.AboutSection
	nextID   uint
	reads    int
}

func (f *fakeSiteContentRepo) ListAboutSections(ctx context.Context) ([]*models.AboutSection, error) {
	f.reads++
	out := make([]*models.AboutSection, 0, len(f.sections))
	for _, s := range f.sections {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeSiteContentRepo) UpsertAboutSection(ctx context.Context, s *models.AboutSection) error {
	if s.ID == 0 {
		f.nextID++
		s.ID = f.nextID
	}
	for i, existing := range f.sections {
		if existing.ID == s.ID {
			copied := *s
			f.sections[i] = &copied
			return nil
		}
	}
	copied := *s
	f.sections = append(f.sections, &copied)
	return nil
}

func (f *fakeSiteContentRepo) DeleteAboutSection(ctx context.Context, id uint) error {
	for i, s := range f.sections {
		if s.ID == id {
			f.sections = append(f.sections[:i], f.sections[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeSiteContentRepo) ListPrograms(ctx context.Context) ([]*models.AcademicProgram, error) {
	return nil, nil
}

func (f *fakeSiteContentRepo) ListAdmissionRequirements(ctx context.Context) ([]*models.AdmissionRequirement, error) {
	return nil, nil
}

// ===== VIDEO CLASSES =====

type fakeVideoClassRepo struct {
	items  []*models.VideoClass
	nextID uint
}

func (f *fakeVideoClassRepo) Create(ctx context.Context, vc *models.VideoClass) error {
	f.nextID++
	vc.ID = f.nextID
	copied := *vc
	f.items = append(f.items, &copied)
	return nil
}

func (f *fakeVideoClassRepo) Delete(ctx context.Context, id uint) error {
	for i, vc := range f.items {
		if vc.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeVideoClassRepo) List(ctx context.Context, filters repositories.VideoClassFilters) ([]*models.VideoClass, error) {
	var out []*models.VideoClass
	for _, vc := range f.items {
		if filters.Subject != "" && vc.Subject != filters.Subject {
			continue
		}
		copied := *vc
		out = append(out, &copied)
	}
	return out, nil
}

// ===== FORUM =====

type fakeForumRepo struct {
	questions []*models.ForumQuestion
	answers   []*models.ForumAnswer
	nextID    uint
}

func (f *fakeForumRepo) CreateQuestion(ctx context.Context, q *models.ForumQuestion) error {
	f.nextID++
	q.ID = f.nextID
	copied := *q
	f.questions = append(f.questions, &copied)
	return nil
}

func (f *fakeForumRepo) GetQuestion(ctx context.Context, id uint) (*models.ForumQuestion, error) {
	for _, q := range f.questions {
		if q.ID == id {
			copied := *q
			for _, a := range f.answers {
				if a.QuestionID == id {
					copied.Answers = append(copied.Answers, *a)
				}
			}
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeForumRepo) ListQuestions(ctx context.Context, filters repositories.ForumFilters) ([]*models.ForumQuestion, error) {
	out := make([]*models.ForumQuestion, 0, len(f.questions))
	for _, q := range f.questions {
		copied := *q
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeForumRepo) AddAnswer(ctx context.Context, a *models.ForumAnswer) error {
	if _, err := f.GetQuestion(ctx, a.QuestionID); err != nil {
		return err
	}
	f.nextID++
	a.ID = f.nextID
	copied := *a
	f.answers = append(f.answers, &copied)
	return nil
}

func (f *fakeForumRepo) MarkResolved(ctx context.Context, id uint) error {
	for _, q := range f.questions {
		if q.ID == id {
			q.Resolved = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ===== CONTACT =====

type fakeContactRepo struct {
	items  []*models.ContactMessage
	nextID uint
}

func (f *fakeContactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	f.nextID++
	msg.ID = f.nextID
	msg.Status = models.ContactPending
	msg.CreatedAt = time.Now()
	copied := *msg
	f.items = append(f.items, &copied)
	return nil
}

func (f *fakeContactRepo) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	for _, msg := range f.items {
		if msg.ID == id {
			copied := *msg
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeContactRepo) List(ctx context.Context, filters repositories.ContactFilters) ([]*models.ContactMessage, error) {
	var out []*models.ContactMessage
	for _, msg := range f.items {
		if filters.Status != nil && msg.Status != *filters.Status {
			continue
		}
		copied := *msg
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeContactRepo) MarkResponded(ctx context.Context, id uint) error {
	for _, msg := range f.items {
		if msg.ID == id {
			msg.Status = models.ContactResponded
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ===== TEST WIRING =====

type serviceTestEnv struct {
	repo      *fakeRepository
	blobs     *store.MemoryBlobStore
	cache     *cache.MemoryCache
	publisher *events.MockEventPublisher
	services  ServiceManager
}

func newServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newFakeRepository()
	blobs := store.NewMemoryBlobStore()
	memCache := cache.NewMemoryCache()
	publisher := events.NewMockEventPublisher(logger)

	manager := NewServiceManager(repo, blobs, memCache, publisher, logger, validator.New())

	return &serviceTestEnv{
		repo:      repo,
		blobs:     blobs,
		cache:     memCache,
		publisher: publisher,
		services:  manager,
	}
}

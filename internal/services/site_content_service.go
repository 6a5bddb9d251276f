package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SPS-2025/school-portal-service/internal/cache"
	apperrors "github.com/SPS-2025/school-portal-service/internal/errors"
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/validator"
)

const (
	cacheKeyAboutSections = "site:about_sections"
	cacheKeyPrograms      = "site:academic_programs"
	cacheKeyAdmissions    = "site:admission_requirements"
	siteContentCacheTTL   = 10 * time.Minute
)

// ===== REQUEST TYPES =====

type UpsertAboutSectionRequest struct {
	ID      uint   `json:"id,omitempty"`
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Order   int    `json:"order"`
}

// ===== SERVICE INTERFACE =====

// SiteContentService serves the public site sections. Reads go through the
// cache; admin writes invalidate it.
type SiteContentService interface {
	AboutSections(ctx context.Context) ([]*models.AboutSection, error)
	UpsertAboutSection(ctx context.Context, req UpsertAboutSectionRequest) (*models.AboutSection, error)
	DeleteAboutSection(ctx context.Context, id uint) error
	AcademicPrograms(ctx context.Context) ([]*models.AcademicProgram, error)
	AdmissionRequirements(ctx context.Context) ([]*models.AdmissionRequirement, error)
}

type siteContentService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSiteContentService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	logger *slog.Logger,
	v *validator.Validator,
) SiteContentService {
	return &siteContentService{
		repo:      repo,
		cache:     cacheService,
		logger:    logger,
		validator: v,
	}
}

func (s *siteContentService) AboutSections(ctx context.Context) ([]*models.AboutSection, error) {
	var sections []*models.AboutSection
	err := s.cache.Get(ctx, cacheKeyAboutSections, &sections)
	if err == nil {
		return sections, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("About sections cache read failed", "error", err)
	}

	sections, err = s.repo.SiteContent().ListAboutSections(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyAboutSections, sections, siteContentCacheTTL); err != nil {
		s.logger.Warn("About sections cache write failed", "error", err)
	}
	return sections, nil
}

func (s *siteContentService) UpsertAboutSection(ctx context.Context, req UpsertAboutSectionRequest) (*models.AboutSection, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	section := &models.AboutSection{
		ID:      req.ID,
		Title:   req.Title,
		Content: req.Content,
		Order:   req.Order,
	}
	if err := s.repo.SiteContent().UpsertAboutSection(ctx, section); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyAboutSections)

	s.logger.Info("About section saved", "section_id", section.ID)
	return section, nil
}

func (s *siteContentService) DeleteAboutSection(ctx context.Context, id uint) error {
	if err := s.repo.SiteContent().DeleteAboutSection(ctx, id); err != nil {
		return fmt.Errorf("failed to delete about section: %w", err)
	}
	s.invalidate(ctx, cacheKeyAboutSections)
	return nil
}

func (s *siteContentService) AcademicPrograms(ctx context.Context) ([]*models.AcademicProgram, error) {
	var programs []*models.AcademicProgram
	if err := s.cache.Get(ctx, cacheKeyPrograms, &programs); err == nil {
		return programs, nil
	}

	programs, err := s.repo.SiteContent().ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyPrograms, programs, siteContentCacheTTL); err != nil {
		s.logger.Warn("Programs cache write failed", "error", err)
	}
	return programs, nil
}

func (s *siteContentService) AdmissionRequirements(ctx context.Context) ([]*models.AdmissionRequirement, error) {
	var reqs []*models.AdmissionRequirement
	if err := s.cache.Get(ctx, cacheKeyAdmissions, &reqs); err == nil {
		return reqs, nil
	}

	reqs, err := s.repo.SiteContent().ListAdmissionRequirements(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKeyAdmissions, reqs, siteContentCacheTTL); err != nil {
		s.logger.Warn("Admission requirements cache write failed", "error", err)
	}
	return reqs, nil
}

func (s *siteContentService) invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("Cache invalidation failed", "key", key, "error", err)
	}
}

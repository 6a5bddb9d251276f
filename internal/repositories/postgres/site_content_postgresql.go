package postgres

import (
	"context"
	"fmt"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"gorm.io/gorm"
)

type SiteContentPostgreSQL struct {
	db *gorm.DB
}

func NewSiteContentPostgreSQL(db *gorm.DB) repositories.SiteContentRepository {
	return &SiteContentPostgreSQL{db: db}
}

func (r *SiteContentPostgreSQL) ListAboutSections(ctx context.Context) ([]*models.AboutSection, error) {
	var sections []*models.AboutSection
	err := r.db.WithContext(ctx).
		Order("display_order ASC").
		Find(&sections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list about sections: %w", err)
	}
	return sections, nil
}

func (r *SiteContentPostgreSQL) UpsertAboutSection(ctx context.Context, s *models.AboutSection) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return fmt.Errorf("failed to save about section: %w", err)
	}
	return nil
}

func (r *SiteContentPostgreSQL) DeleteAboutSection(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AboutSection{}, id).Error
}

func (r *SiteContentPostgreSQL) ListPrograms(ctx context.Context) ([]*models.AcademicProgram, error) {
	var programs []*models.AcademicProgram
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&programs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list academic programs: %w", err)
	}
	return programs, nil
}

func (r *SiteContentPostgreSQL) ListAdmissionRequirements(ctx context.Context) ([]*models.AdmissionRequirement, error) {
	var reqs []*models.AdmissionRequirement
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list admission requirements: %w", err)
	}
	return reqs, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "github.com/SPS-2025/school-portal-service/internal/errors"
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/store"
	"github.com/SPS-2025/school-portal-service/internal/validator"
)

// ===== REQUEST TYPES =====

type UploadGalleryImageRequest struct {
	Title    string `json:"title" validate:"max=200"`
	Category string `json:"category" validate:"max=100"`
	Filename string `json:"filename" validate:"required"`
	Data     []byte `json:"-"`
}

type CreateAchievementRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description"`
	Year        int     `json:"year" validate:"omitempty,min=1900,max=2100"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// ===== SERVICE INTERFACE =====

type GalleryService interface {
	UploadImage(ctx context.Context, req UploadGalleryImageRequest, uploadedBy string) (*models.GalleryImage, error)
	DeleteImage(ctx context.Context, id uint) error
	ListImages(ctx context.Context, filters repositories.GalleryFilters) ([]*models.GalleryImage, error)
	AddAchievement(ctx context.Context, req CreateAchievementRequest) (*models.Achievement, error)
	ListAchievements(ctx context.Context) ([]*models.Achievement, error)
}

type galleryService struct {
	repo      repositories.Repository
	blobs     store.BlobStore
	logger    *slog.Logger
	validator *validator.Validator
}

func NewGalleryService(
	repo repositories.Repository,
	blobs store.BlobStore,
	logger *slog.Logger,
	v *validator.Validator,
) GalleryService {
	return &galleryService{
		repo:      repo,
		blobs:     blobs,
		logger:    logger,
		validator: v,
	}
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func (s *galleryService) UploadImage(ctx context.Context, req UploadGalleryImageRequest, uploadedBy string) (*models.GalleryImage, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}
	if len(req.Data) == 0 {
		return nil, ErrEmptyUpload
	}
	ext := strings.ToLower(filepath.Ext(req.Filename))
	if !allowedImageExtensions[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedUpload, ext)
	}

	url, err := s.blobs.Upload(ctx, "gallery", req.Filename, req.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload gallery image: %w", err)
	}

	img := &models.GalleryImage{
		Title:      req.Title,
		URL:        url,
		Category:   req.Category,
		UploadedBy: uploadedBy,
	}
	if err := s.repo.Gallery().AddImage(ctx, img); err != nil {
		return nil, fmt.Errorf("failed to save gallery image: %w", err)
	}

	s.logger.Info("Gallery image uploaded",
		"image_id", img.ID,
		"category", img.Category,
		"uploaded_by", uploadedBy)
	return img, nil
}

func (s *galleryService) DeleteImage(ctx context.Context, id uint) error {
	if err := s.repo.Gallery().DeleteImage(ctx, id); err != nil {
		return fmt.Errorf("failed to delete gallery image: %w", err)
	}
	s.logger.Info("Gallery image deleted", "image_id", id)
	return nil
}

func (s *galleryService) ListImages(ctx context.Context, filters repositories.GalleryFilters) ([]*models.GalleryImage, error) {
	return s.repo.Gallery().ListImages(ctx, filters)
}

func (s *galleryService) AddAchievement(ctx context.Context, req CreateAchievementRequest) (*models.Achievement, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrors.ToValidationErrors(err)
	}

	achievement := &models.Achievement{
		Title:       req.Title,
		Description: req.Description,
		Year:        req.Year,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.Gallery().AddAchievement(ctx, achievement); err != nil {
		return nil, fmt.Errorf("failed to add achievement: %w", err)
	}
	return achievement, nil
}

func (s *galleryService) ListAchievements(ctx context.Context) ([]*models.Achievement, error) {
	return s.repo.Gallery().ListAchievements(ctx)
}

package handlers

import (
	"io"
	"net/http"

	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/services"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const maxGalleryImageBytes = 10 << 20

type GalleryHandler struct {
	BaseHandler
	gallery services.GalleryService
}

func NewGalleryHandler(gallery services.GalleryService, logger utils.Logger) *GalleryHandler {
	return &GalleryHandler{
		BaseHandler: NewBaseHandler(logger),
		gallery:     gallery,
	}
}

// ListImages lists gallery images
// @Summary List gallery images
// @Tags gallery
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {object} SuccessResponse
// @Router /gallery [get]
func (h *GalleryHandler) ListImages(c *gin.Context) {
	filters := repositories.GalleryFilters{
		Category: c.Query("category"),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	}

	items, err := h.gallery.ListImages(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Gallery images retrieved", Data: items})
}

// UploadImage uploads a gallery image
// @Summary Upload gallery image
// @Tags gallery
// @Accept mpfd
// @Produce json
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /gallery [post]
func (h *GalleryHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Missing image file", Details: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxGalleryImageBytes))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to read image file", err)
		return
	}

	req := services.UploadGalleryImageRequest{
		Title:    c.PostForm("title"),
		Category: c.PostForm("category"),
		Filename: header.Filename,
		Data:     data,
	}

	img, err := h.gallery.UploadImage(c.Request.Context(), req, c.GetString(ctxKeyUserID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Image uploaded", Data: img})
}

// DeleteImage deletes a gallery image
// @Summary Delete gallery image
// @Tags gallery
// @Param id path uint true "Image ID"
// @Success 200 {object} SuccessResponse
// @Router /gallery/{id} [delete]
func (h *GalleryHandler) DeleteImage(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	if err := h.gallery.DeleteImage(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Image deleted"})
}

// ListAchievements lists school achievements
// @Summary List achievements
// @Tags gallery
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /achievements [get]
func (h *GalleryHandler) ListAchievements(c *gin.Context) {
	items, err := h.gallery.ListAchievements(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Achievements retrieved", Data: items})
}

// AddAchievement records a school achievement
// @Summary Add achievement
// @Tags gallery
// @Accept json
// @Produce json
// @Param achievement body services.CreateAchievementRequest true "Achievement data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /achievements [post]
func (h *GalleryHandler) AddAchievement(c *gin.Context) {
	var req services.CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	item, err := h.gallery.AddAchievement(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Achievement added", Data: item})
}

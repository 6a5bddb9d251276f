package handlers

import (
	"net/http"
	"time"

	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/services"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type VideoClassHandler struct {
	BaseHandler
	videoClasses services.VideoClassService
}

func NewVideoClassHandler(videoClasses services.VideoClassService, logger utils.Logger) *VideoClassHandler {
	return &VideoClassHandler{
		BaseHandler:  NewBaseHandler(logger),
		videoClasses: videoClasses,
	}
}

// ListVideoClasses lists scheduled video classes
// @Summary List video classes
// @Tags video-classes
// @Produce json
// @Param subject query string false "Subject filter"
// @Param search query string false "Topic/teacher substring"
// @Param from query string false "RFC3339 lower bound on start time"
// @Success 200 {object} SuccessResponse
// @Router /video-classes [get]
func (h *VideoClassHandler) ListVideoClasses(c *gin.Context) {
	filters := repositories.VideoClassFilters{
		Subject: c.Query("subject"),
		Search:  c.Query("search"),
		Limit:   queryInt(c, "limit"),
		Offset:  queryInt(c, "offset"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filters.DateFrom = &t
		}
	}

	items, err := h.videoClasses.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Video classes retrieved", Data: items})
}

// CreateVideoClass schedules a video class
// @Summary Create video class
// @Tags video-classes
// @Accept json
// @Produce json
// @Param class body services.CreateVideoClassRequest true "Class data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /video-classes [post]
func (h *VideoClassHandler) CreateVideoClass(c *gin.Context) {
	var req services.CreateVideoClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	item, err := h.videoClasses.Create(c.Request.Context(), req, c.GetString(ctxKeyUserID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Video class created", Data: item})
}

// DeleteVideoClass removes a scheduled video class
// @Summary Delete video class
// @Tags video-classes
// @Param id path uint true "Video class ID"
// @Success 200 {object} SuccessResponse
// @Router /video-classes/{id} [delete]
func (h *VideoClassHandler) DeleteVideoClass(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	if err := h.videoClasses.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Video class deleted"})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/services"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	BaseHandler
	announcements services.AnnouncementService
}

func NewAnnouncementHandler(announcements services.AnnouncementService, logger utils.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:   NewBaseHandler(logger),
		announcements: announcements,
	}
}

// ListAnnouncements lists announcements
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Param search query string false "Title/content substring"
// @Param important query bool false "Important only"
// @Param published query bool false "Published only"
// @Success 200 {object} SuccessResponse
// @Router /announcements [get]
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	filters := repositories.AnnouncementFilters{
		Search:        c.Query("search"),
		ImportantOnly: c.Query("important") == "true",
		PublishedOnly: c.Query("published") == "true",
		Limit:         queryInt(c, "limit"),
		Offset:        queryInt(c, "offset"),
	}

	items, err := h.announcements.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcements retrieved", Data: items})
}

// GetAnnouncement retrieves one announcement
// @Summary Get announcement
// @Tags announcements
// @Produce json
// @Param id path uint true "Announcement ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	item, err := h.announcements.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement retrieved", Data: item})
}

// CreateAnnouncement creates a new announcement
// @Summary Create announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param announcement body services.CreateAnnouncementRequest true "Announcement data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /announcements [post]
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var req services.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	item, err := h.announcements.Create(c.Request.Context(), req, c.GetString(ctxKeyUserID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Announcement created", Data: item})
}

// UpdateAnnouncement updates an announcement
// @Summary Update announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param id path uint true "Announcement ID"
// @Param announcement body services.UpdateAnnouncementRequest true "Fields to update"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /announcements/{id} [put]
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	item, err := h.announcements.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement updated", Data: item})
}

// DeleteAnnouncement deletes an announcement
// @Summary Delete announcement
// @Tags announcements
// @Param id path uint true "Announcement ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	if err := h.announcements.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement deleted"})
}

// PublishAnnouncement publishes an announcement
// @Summary Publish announcement
// @Tags announcements
// @Param id path uint true "Announcement ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /announcements/{id}/publish [post]
func (h *AnnouncementHandler) PublishAnnouncement(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	item, err := h.announcements.Publish(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Announcement published", Data: item})
}

// queryInt parses an optional numeric query parameter, 0 when absent.
func queryInt(c *gin.Context, key string) int {
	v, _ := strconv.Atoi(c.Query(key))
	return v
}

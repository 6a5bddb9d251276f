package handlers

import (
	"net/http"

	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/services"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	BaseHandler
	news services.NewsService
}

func NewNewsHandler(news services.NewsService, logger utils.Logger) *NewsHandler {
	return &NewsHandler{
		BaseHandler: NewBaseHandler(logger),
		news:        news,
	}
}

// ListNews lists news items
// @Summary List news
// @Tags news
// @Produce json
// @Param search query string false "Title/content substring"
// @Param author query string false "Author filter"
// @Success 200 {object} SuccessResponse
// @Router /news [get]
func (h *NewsHandler) ListNews(c *gin.Context) {
	filters := repositories.NewsFilters{
		Search: c.Query("search"),
		Author: c.Query("author"),
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}

	items, err := h.news.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "News retrieved", Data: items})
}

// GetNews retrieves one news item
// @Summary Get news item
// @Tags news
// @Produce json
// @Param id path uint true "News ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /news/{id} [get]
func (h *NewsHandler) GetNews(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	item, err := h.news.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "News item retrieved", Data: item})
}

// CreateNews creates a news item
// @Summary Create news item
// @Tags news
// @Accept json
// @Produce json
// @Param news body services.CreateNewsRequest true "News data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /news [post]
func (h *NewsHandler) CreateNews(c *gin.Context) {
	var req services.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	item, err := h.news.Create(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "News item created", Data: item})
}

// UpdateNews updates a news item
// @Summary Update news item
// @Tags news
// @Accept json
// @Produce json
// @Param id path uint true "News ID"
// @Param news body services.UpdateNewsRequest true "Fields to update"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /news/{id} [put]
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	item, err := h.news.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "News item updated", Data: item})
}

// DeleteNews deletes a news item
// @Summary Delete news item
// @Tags news
// @Param id path uint true "News ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /news/{id} [delete]
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	if err := h.news.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "News item deleted"})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/services"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	BaseHandler
	events services.SchoolEventService
}

func NewEventHandler(events services.SchoolEventService, logger utils.Logger) *EventHandler {
	return &EventHandler{
		BaseHandler: NewBaseHandler(logger),
		events:      events,
	}
}

// ListEvents lists school events
// @Summary List events
// @Tags events
// @Produce json
// @Param search query string false "Title substring"
// @Param from query string false "RFC3339 lower bound on start time"
// @Param to query string false "RFC3339 upper bound on start time"
// @Success 200 {object} SuccessResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	filters := repositories.EventFilters{
		Search: c.Query("search"),
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filters.DateFrom = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filters.DateTo = &t
		}
	}

	items, err := h.events.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Events retrieved", Data: items})
}

// UpcomingEvents lists the next events on the calendar
// @Summary Upcoming events
// @Tags events
// @Produce json
// @Param limit query int false "Max events (default 5)"
// @Success 200 {object} SuccessResponse
// @Router /events/upcoming [get]
func (h *EventHandler) UpcomingEvents(c *gin.Context) {
	limit := queryInt(c, "limit")
	if limit <= 0 {
		limit = 5
	}

	items, err := h.events.Upcoming(c.Request.Context(), limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Upcoming events retrieved", Data: items})
}

// GetEvent retrieves one event
// @Summary Get event
// @Tags events
// @Produce json
// @Param id path uint true "Event ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	item, err := h.events.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Event retrieved", Data: item})
}

// CreateEvent creates a school event
// @Summary Create event
// @Tags events
// @Accept json
// @Produce json
// @Param event body services.CreateEventRequest true "Event data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	item, err := h.events.Create(c.Request.Context(), req, c.GetString(ctxKeyUserID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Event created", Data: item})
}

// UpdateEvent updates a school event
// @Summary Update event
// @Tags events
// @Accept json
// @Produce json
// @Param id path uint true "Event ID"
// @Param event body services.UpdateEventRequest true "Fields to update"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	item, err := h.events.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Event updated", Data: item})
}

// DeleteEvent deletes a school event
// @Summary Delete event
// @Tags events
// @Param id path uint true "Event ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	if err := h.events.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Event deleted"})
}

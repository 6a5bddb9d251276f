package handlers

import (
	"net/http"

	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/services"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	BaseHandler
	contact services.ContactService
	export  services.ExportService
}

func NewContactHandler(contact services.ContactService, export services.ExportService, logger utils.Logger) *ContactHandler {
	return &ContactHandler{
		BaseHandler: NewBaseHandler(logger),
		contact:     contact,
		export:      export,
	}
}

// SubmitMessage accepts a message from the public contact form
// @Summary Submit contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param message body services.SubmitContactRequest true "Message data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	var req services.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	msg, err := h.contact.Submit(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Message received", Data: msg})
}

// ListMessages lists contact messages for admins
// @Summary List contact messages
// @Tags contact
// @Produce json
// @Param status query string false "pending or responded"
// @Success 200 {object} SuccessResponse
// @Router /admin/contact [get]
func (h *ContactHandler) ListMessages(c *gin.Context) {
	filters := repositories.ContactFilters{
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}
	if status := c.Query("status"); status != "" {
		s := models.ContactStatus(status)
		filters.Status = &s
	}

	items, err := h.contact.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Contact messages retrieved", Data: items})
}

// MarkResponded marks a contact message as responded
// @Summary Mark responded
// @Tags contact
// @Param id path uint true "Message ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/contact/{id}/respond [post]
func (h *ContactHandler) MarkResponded(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	if err := h.contact.MarkResponded(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Message marked responded"})
}

// ExportMessages downloads contact messages as a spreadsheet
// @Summary Export contact messages
// @Tags contact
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /admin/contact/export [get]
func (h *ContactHandler) ExportMessages(c *gin.Context) {
	filters := repositories.ContactFilters{
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}
	if status := c.Query("status"); status != "" {
		s := models.ContactStatus(status)
		filters.Status = &s
	}

	data, err := h.export.ExportContactMessages(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+h.export.ExportContactMessagesFilename())
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

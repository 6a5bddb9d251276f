package handlers

import (
	"net/http"

	"github.com/SPS-2025/school-portal-service/internal/services"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// SiteHandler serves the public site sections: about, academics, admissions.
type SiteHandler struct {
	BaseHandler
	siteContent services.SiteContentService
}

func NewSiteHandler(siteContent services.SiteContentService, logger utils.Logger) *SiteHandler {
	return &SiteHandler{
		BaseHandler: NewBaseHandler(logger),
		siteContent: siteContent,
	}
}

// AboutSections returns the about-page sections in display order
// @Summary About sections
// @Tags site
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /site/about [get]
func (h *SiteHandler) AboutSections(c *gin.Context) {
	sections, err := h.siteContent.AboutSections(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "About sections retrieved", Data: sections})
}

// UpsertAboutSection creates or replaces an about section
// @Summary Save about section
// @Tags site
// @Accept json
// @Produce json
// @Param section body services.UpsertAboutSectionRequest true "Section data"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /site/about [put]
func (h *SiteHandler) UpsertAboutSection(c *gin.Context) {
	var req services.UpsertAboutSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	section, err := h.siteContent.UpsertAboutSection(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "About section saved", Data: section})
}

// DeleteAboutSection removes an about section
// @Summary Delete about section
// @Tags site
// @Param id path uint true "Section ID"
// @Success 200 {object} SuccessResponse
// @Router /site/about/{id} [delete]
func (h *SiteHandler) DeleteAboutSection(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	if err := h.siteContent.DeleteAboutSection(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "About section deleted"})
}

// AcademicPrograms returns the academics page content
// @Summary Academic programs
// @Tags site
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /site/academics [get]
func (h *SiteHandler) AcademicPrograms(c *gin.Context) {
	programs, err := h.siteContent.AcademicPrograms(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Academic programs retrieved", Data: programs})
}

// AdmissionRequirements returns the admissions page content
// @Summary Admission requirements
// @Tags site
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /site/admissions [get]
func (h *SiteHandler) AdmissionRequirements(c *gin.Context) {
	reqs, err := h.siteContent.AdmissionRequirements(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Admission requirements retrieved", Data: reqs})
}

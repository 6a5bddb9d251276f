package handlers

import (
	"net/http"

	"github.com/SPS-2025/school-portal-service/internal/repositories"
	"github.com/SPS-2025/school-portal-service/internal/services"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ForumHandler struct {
	BaseHandler
	forum services.ForumService
}

func NewForumHandler(forum services.ForumService, logger utils.Logger) *ForumHandler {
	return &ForumHandler{
		BaseHandler: NewBaseHandler(logger),
		forum:       forum,
	}
}

// ListQuestions lists forum questions
// @Summary List questions
// @Tags forum
// @Produce json
// @Param search query string false "Title/body substring"
// @Param resolved query bool false "Resolved only"
// @Success 200 {object} SuccessResponse
// @Router /forum/questions [get]
func (h *ForumHandler) ListQuestions(c *gin.Context) {
	filters := repositories.ForumFilters{
		Search:       c.Query("search"),
		AskedBy:      c.Query("asked_by"),
		ResolvedOnly: c.Query("resolved") == "true",
		Limit:        queryInt(c, "limit"),
		Offset:       queryInt(c, "offset"),
	}

	items, err := h.forum.ListQuestions(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Questions retrieved", Data: items})
}

// GetQuestion retrieves a question with its answers
// @Summary Get question
// @Tags forum
// @Produce json
// @Param id path uint true "Question ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /forum/questions/{id} [get]
func (h *ForumHandler) GetQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	question, err := h.forum.GetQuestion(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Question retrieved", Data: question})
}

// AskQuestion posts a new question
// @Summary Ask question
// @Tags forum
// @Accept json
// @Produce json
// @Param question body services.AskQuestionRequest true "Question data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /forum/questions [post]
func (h *ForumHandler) AskQuestion(c *gin.Context) {
	var req services.AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	question, err := h.forum.AskQuestion(c.Request.Context(), req, c.GetString(ctxKeyUserID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Question posted", Data: question})
}

// AnswerQuestion posts an answer to a question
// @Summary Answer question
// @Tags forum
// @Accept json
// @Produce json
// @Param id path uint true "Question ID"
// @Param answer body services.AnswerQuestionRequest true "Answer data"
// @Success 201 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /forum/questions/{id}/answers [post]
func (h *ForumHandler) AnswerQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.AnswerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request payload", Details: err.Error()})
		return
	}

	answer, err := h.forum.AnswerQuestion(c.Request.Context(), id, req, c.GetString(ctxKeyUserID))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Answer posted", Data: answer})
}

// ResolveQuestion marks a question resolved
// @Summary Resolve question
// @Tags forum
// @Param id path uint true "Question ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /forum/questions/{id}/resolve [post]
func (h *ForumHandler) ResolveQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	if err := h.forum.ResolveQuestion(c.Request.Context(), id, c.GetString(ctxKeyUserID)); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Question resolved"})
}

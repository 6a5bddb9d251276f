package handlers

import (
	"io"
	"net/http"
	"strings"

	apperrors "github.com/SPS-2025/school-portal-service/internal/errors"
	"github.com/SPS-2025/school-portal-service/internal/models"
	"github.com/SPS-2025/school-portal-service/internal/services"
	"github.com/SPS-2025/school-portal-service/internal/session"
	"github.com/SPS-2025/school-portal-service/internal/utils"
	"github.com/SPS-2025/school-portal-service/internal/validator"
	"github.com/gin-gonic/gin"
)

const maxAvatarBytes = 5 << 20

type AuthHandler struct {
	BaseHandler
	registry      *session.Registry
	auth          *AuthMiddleware
	notifications services.NotificationEventService
	validator     *validator.Validator
}

func NewAuthHandler(
	registry *session.Registry,
	auth *AuthMiddleware,
	notifications services.NotificationEventService,
	v *validator.Validator,
	logger utils.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   NewBaseHandler(logger),
		registry:      registry,
		auth:          auth,
		notifications: notifications,
		validator:     v,
	}
}

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SessionResponse struct {
	Token    string              `json:"token,omitempty"`
	User     *models.SessionUser `json:"user,omitempty"`
	Redirect session.Route       `json:"redirect"`
}

// Login authenticates a user and opens a portal session
// @Summary Log in
// @Description Authenticates credentials and returns a session bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.handleServiceError(c, apperrors.ToValidationErrors(err))
		return
	}

	sessionID, mgr := h.registry.Create()
	result, err := mgr.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.registry.Remove(sessionID)
		h.handleServiceError(c, err)
		return
	}

	token, err := h.auth.IssueToken(sessionID)
	if err != nil {
		h.registry.Remove(sessionID)
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to issue session token", err)
		return
	}

	h.LogRequest(c, "User logged in", "principal_id", result.User.ID)
	c.JSON(http.StatusOK, SessionResponse{
		Token:    token,
		User:     result.User,
		Redirect: result.Redirect,
	})
}

// Signup registers a new account
// @Summary Sign up
// @Description Creates an account with a student profile and opens a session
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Credentials"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.handleServiceError(c, apperrors.ToValidationErrors(err))
		return
	}

	sessionID, mgr := h.registry.Create()
	result, err := mgr.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.registry.Remove(sessionID)
		h.handleServiceError(c, err)
		return
	}

	token, err := h.auth.IssueToken(sessionID)
	if err != nil {
		h.registry.Remove(sessionID)
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to issue session token", err)
		return
	}

	if err := h.notifications.NotifyUserRegistered(c.Request.Context(), result.User.ID, result.User.Email, result.User.Role); err != nil {
		h.LogError(c, err, "Failed to publish user registered event")
	}

	c.JSON(http.StatusCreated, SessionResponse{
		Token:    token,
		User:     result.User,
		Redirect: result.Redirect,
	})
}

// Logout ends the current session
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	mgr := ManagerFromContext(c)
	result, err := mgr.Logout(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.registry.Remove(SessionIDFromContext(c))

	c.JSON(http.StatusOK, SessionResponse{Redirect: result.Redirect})
}

// Me returns the session snapshot
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} gin.H
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	mgr := ManagerFromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"state":      mgr.State(),
		"user":       mgr.User(),
		"is_loading": mgr.IsLoading(),
	})
}

// UpdateProfile saves profile edits for the signed-in user
// @Summary Update profile
// @Description Persists a profile draft; accepts multipart form with an optional avatar file
// @Tags auth
// @Accept mpfd
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	mgr := ManagerFromContext(c)
	before := mgr.User()

	draft, err := h.bindProfileDraft(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.ValidateStruct(draft); err != nil {
		h.handleServiceError(c, apperrors.ToValidationErrors(err))
		return
	}

	result, err := mgr.UpdateProfile(c.Request.Context(), draft)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	roleElevated := before != nil && before.Role != models.RoleTeacher && result.User.Role == models.RoleTeacher
	if err := h.notifications.NotifyProfileUpdated(c.Request.Context(), result.User, roleElevated, len(draft.Avatar) > 0); err != nil {
		h.LogError(c, err, "Failed to publish profile updated event")
	}

	c.JSON(http.StatusOK, SessionResponse{
		User:     result.User,
		Redirect: result.Redirect,
	})
}

// bindProfileDraft accepts either a JSON body or a multipart form carrying
// an avatar file.
func (h *AuthHandler) bindProfileDraft(c *gin.Context) (models.ProfileDraft, error) {
	var draft models.ProfileDraft

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		draft.DisplayName = c.PostForm("display_name")
		draft.Bio = c.PostForm("bio")
		draft.Role = models.UserRole(c.PostForm("role"))
		draft.TeacherAccessKey = c.PostForm("teacher_access_key")

		file, header, err := c.Request.FormFile("avatar")
		if err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
			if readErr != nil {
				return draft, readErr
			}
			draft.Avatar = data
			draft.AvatarName = header.Filename
		}
		return draft, nil
	}

	err := c.ShouldBindJSON(&draft)
	return draft, err
}

package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vincehvac/servicepro-crm/internal/domain/auth"
	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
	"github.com/vincehvac/servicepro-crm/internal/pkg/response"
	service "github.com/vincehvac/servicepro-crm/internal/service/auth"
)

type AuthHandler struct {
	authService *service.Service
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Register creates an internal team account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, registerStatus(err), err.Error(), err)
		return
	}

	response.Success(c, http.StatusCreated, "account created", result)
}

// Login signs a user in with email and password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid credentials", err)
		return
	}

	response.Success(c, http.StatusOK, "signed in", result)
}

// Logout revokes the caller's session.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		response.Unauthorized(c, "no active session")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		h.logger.Error("failed to revoke session", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "failed to sign out", err)
		return
	}

	response.Success(c, http.StatusOK, "signed out", nil)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Unauthorized(c, "authentication required")
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.NotFound(c, "user not found")
		return
	}

	response.Success(c, http.StatusOK, "user retrieved", user)
}

// registerStatus maps registration failures: the local form checks and
// duplicate emails are client errors, everything else is the backend's.
func registerStatus(err error) int {
	switch {
	case xerrors.Is(err, service.ErrPasswordTooShort),
		xerrors.Is(err, service.ErrPasswordMismatch),
		xerrors.Is(err, xerrors.ErrInvalidInput),
		xerrors.Is(err, xerrors.ErrDuplicateEntry):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

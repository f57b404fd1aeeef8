package transport

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inner-garden/internal/middleware"
	"inner-garden/internal/service"
)

// LoginRequest represents the admin login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted session token.
type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthHandler handles admin authentication.
type AuthHandler struct {
	sessions service.SessionService
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions service.SessionService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/admin/login", h.Login)
}

// Login validates admin credentials and issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessions.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotConfigured):
			middleware.RespondWithError(w, http.StatusServiceUnavailable, "admin access is not configured")
		case errors.Is(err, service.ErrInvalidCredentials):
			// Same body for wrong email and wrong password.
			h.logger.Debug("Admin login rejected")
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
		default:
			h.logger.Error("Admin login failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		}
		return
	}

	h.logger.Info("Admin logged in")
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{
		Success:   true,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

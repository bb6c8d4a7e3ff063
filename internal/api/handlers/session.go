package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type SessionHandler struct {
	sessionService SessionService
	validator      *validator.Validate
}

func NewSessionHandler(sessionService SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, validator: validator.New()}
}

func (h *SessionHandler) GetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.sessionService.View())
	}
}

// Login exchanges a Google credential for a backend session.
func (h *SessionHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		user, err := h.sessionService.Login(r.Context(), req.Credential)
		if err != nil {
			logger.Warn("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User logged in", slog.String("user_id", user.PublicID))
		response.Success(w, http.StatusOK, models.SessionView{Authenticated: true, User: user})
	}
}

func (h *SessionHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.sessionService.Logout(r.Context())

		middleware.LoggerFromContext(r.Context()).Info("User logged out")
		response.Success(w, http.StatusOK, models.SessionView{})
	}
}

// UpdateProfile takes a multipart form with name, phone and an optional
// avatar file.
func (h *SessionHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := parseMultipart(w, r); err != nil {
			logger.Warn("Invalid profile form", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		req := models.UpdateProfileRequest{
			Name:  strings.TrimSpace(r.FormValue("name")),
			Phone: strings.TrimSpace(r.FormValue("phone")),
		}

		if !utils.Validate(w, &req, h.validator) {
			logger.Warn("Invalid profile input")
			return
		}

		avatar, filename, err := formFile(r, "avatar")
		if err != nil {
			response.Error(w, err)
			return
		}
		req.Avatar = avatar
		req.AvatarFilename = filename

		user, err := h.sessionService.UpdateProfile(r.Context(), &req)
		if err != nil {
			logger.Warn("Profile update failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Profile updated")
		response.Success(w, http.StatusOK, user)
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/api/response"
	"github.com/ndewijer/Banking-Admin-Backend/internal/apperrors"
	"github.com/ndewijer/Banking-Admin-Backend/internal/bankapi"
	"github.com/ndewijer/Banking-Admin-Backend/internal/logger"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
	"github.com/ndewijer/Banking-Admin-Backend/internal/service"
	"github.com/ndewijer/Banking-Admin-Backend/internal/session"
	"github.com/ndewijer/Banking-Admin-Backend/internal/validation"
)

// HomePath is where a successful login lands.
const HomePath = "/users/manage"

// AuthHandler handles login, logout and the login page state.
type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// LoginPageResponse is the state of the login page.
type LoginPageResponse struct {
	Error    string `json:"error,omitempty"`
	SignedIn bool   `json:"signedIn"`
	Redirect string `json:"redirect,omitempty"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	User     model.User `json:"user"`
	Redirect string     `json:"redirect"`
}

// LoginPage reports the login page state. The gate redirects non-admins here with
// error=unauthorized, which is translated into the access denied message.
//
// Endpoint: GET /login
// Response: 200 OK with LoginPageResponse
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	page := LoginPageResponse{}
	if r.URL.Query().Get("error") == "unauthorized" {
		page.Error = apperrors.ErrAdminRequired.Error()
	}
	if sc, err := h.sessions.Load(r); err == nil && sc.IsAdmin() {
		page.SignedIn = true
		page.Redirect = HomePath
	}
	response.RespondJSON(w, http.StatusOK, page)
}

// Login exchanges credentials for a session and sets the session cookies.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (username, password)
// Response: 200 OK with LoginResponse
// Error: 400 Bad Request if the body is invalid
// Error: 401 Unauthorized with the bank API's message, or the generic login failure
// Error: 403 Forbidden for accounts without the admin role
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		respondServiceError(w, r, err, "validation failed")
		return
	}

	sc, err := h.authService.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAdminRequired):
			response.RespondError(w, http.StatusForbidden, apperrors.ErrAdminRequired.Error(), "")
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			response.RespondError(w, http.StatusUnauthorized, bankapi.MessageOf(err, apperrors.ErrInvalidCredentials.Error()), "")
		default:
			respondServiceError(w, r, err, apperrors.ErrInvalidCredentials.Error())
		}
		return
	}

	if err := h.sessions.Persist(w, sc); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("failed to persist session")
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrInvalidCredentials.Error(), "")
		return
	}

	response.RespondJSON(w, http.StatusOK, LoginResponse{User: sc.User, Redirect: HomePath})
}

// Logout clears the session cookies.
//
// Endpoint: POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.sessions.Clear(w)
	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ForgotPassword is a placeholder; password resets are handled by the bank API operators.
//
// Endpoint: GET /forgot-password
// Response: 200 OK
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset is not available online. Please contact your administrator.",
	})
}

// Me returns the signed-in staff member.
//
// Endpoint: GET /api/auth/me
// Response: 200 OK with session.Context
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, session.FromContext(r.Context()))
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/api/response"
	"github.com/ndewijer/Banking-Admin-Backend/internal/apperrors"
	"github.com/ndewijer/Banking-Admin-Backend/internal/service"
	"github.com/ndewijer/Banking-Admin-Backend/internal/validation"
)

// UserHandler handles HTTP requests for the manage-users, add-user and user detail pages.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns the manage-users table.
//
// Endpoint: GET /users/manage?role=All|Admin|User&q=
// Response: 200 OK with array of model.UserSummary
// Error: 400 Bad Request if role is not recognised
// Error: 502 Bad Gateway if the bank API fails
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseUserFilter(r.URL.Query().Get("role"), r.URL.Query().Get("q"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	users, err := h.userService.ListUsers(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveUsers.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, users)
}

// CreateUser registers a new account.
//
// Endpoint: POST /users/add
// Request Body: CreateUserRequest
// Response: 201 Created with model.User
// Error: 400 Bad Request with per-field messages if validation fails
// Error: 502 Bad Gateway if the bank API rejects the account
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateUserRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateUser(req); err != nil {
		respondServiceError(w, r, err, "validation failed")
		return
	}

	user, err := h.userService.RegisterUser(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToCreateUser.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, user)
}

// GetUser returns an account for the edit form.
//
// Endpoint: GET /users/manage/{id}
// Response: 200 OK with model.User
// Error: 404 Not Found if the account does not exist
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveUser.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, user)
}

// UpdateUser patches an account.
//
// Endpoint: PATCH /users/manage/{id}
// Request Body: UpdateUserRequest (all fields optional; empty password keeps the current one)
// Response: 200 OK with model.User
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the account does not exist
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateUserRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateUser(req); err != nil {
		respondServiceError(w, r, err, "validation failed")
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToUpdateUser.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, user)
}

// UserDetail returns an account overview with one page of labelled transactions.
//
// Endpoint: GET /users/{id}?page=1&limit=10
// Response: 200 OK with model.UserDetail
// Error: 400 Bad Request if pagination parameters are invalid
// Error: 404 Not Found if the account does not exist
func (h *UserHandler) UserDetail(w http.ResponseWriter, r *http.Request) {
	page, limit, err := request.ParsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	detail, err := h.userService.GetUserDetail(r.Context(), chi.URLParam(r, "id"), page, limit)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveUser.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, detail)
}

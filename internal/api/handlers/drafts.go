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

// DraftHandler serves the add-transaction form. The form state lives server-side as a draft
// owned by the signed-in staff member; every mutation returns the recomputed balance preview.
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
	}
}

// CreateDraft opens a draft when the form mounts.
//
// Endpoint: POST /transactions/add/drafts
// Request Body: CreateDraftRequest (taxonomyVersion, optional email)
// Response: 201 Created with model.DraftView
// Error: 400 Bad Request if the version or email is invalid
func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateDraftRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateDraft(req); err != nil {
		respondServiceError(w, r, err, "validation failed")
		return
	}

	view, err := h.draftService.Create(r.Context(), ownerID(r), req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToSaveDraft.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, view)
}

// ListDrafts returns the caller's open drafts, most recently edited first.
//
// Endpoint: GET /transactions/add/drafts
// Response: 200 OK with array of model.Draft
func (h *DraftHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	drafts, err := h.draftService.List(r.Context(), ownerID(r))
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveDraft.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, drafts)
}

// GetDraft returns a draft with its preview.
//
// Endpoint: GET /transactions/add/drafts/{id}
// Response: 200 OK with model.DraftView
// Error: 403 Forbidden if the draft belongs to another staff member
// Error: 404 Not Found if the draft does not exist, expired or was submitted
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.draftService.Get(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveDraft.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// UpdateDraft applies a field patch and returns the recomputed preview. A failed balance
// lookup is reported in lookupError rather than as an HTTP error.
//
// Endpoint: PATCH /transactions/add/drafts/{id}
// Request Body: UpdateDraftRequest (all fields optional)
// Response: 200 OK with model.DraftView
// Error: 400 Bad Request if a value can never be valid
// Error: 404 Not Found if the draft does not exist
func (h *DraftHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateDraftRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	view, err := h.draftService.Update(r.Context(), ownerID(r), chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToSaveDraft.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// SubmitDraft records the draft with the bank API and consumes it.
//
// Endpoint: POST /transactions/add/drafts/{id}/submit
// Response: 201 Created with model.SubmissionResult
// Error: 400 Bad Request if the draft is incomplete
// Error: 404 Not Found if the draft does not exist or was already submitted
// Error: 409 Conflict if the draft is being submitted concurrently
// Error: 502 Bad Gateway if the bank API rejects the transaction; the draft is kept
func (h *DraftHandler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	result, err := h.draftService.Submit(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToCreateTransaction.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}

// DiscardDraft deletes a draft when the form is abandoned.
//
// Endpoint: DELETE /transactions/add/drafts/{id}
// Response: 204 No Content
// Error: 404 Not Found if the draft does not exist
func (h *DraftHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.draftService.Discard(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToSaveDraft.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Preview computes a balance preview without a stored draft.
//
// Endpoint: POST /transactions/add/preview
// Request Body: PreviewRequest
// Response: 200 OK with model.BalancePreview
// Error: 400 Bad Request if the type, version or amount is invalid
func (h *DraftHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.PreviewRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidatePreview(req); err != nil {
		respondServiceError(w, r, err, "validation failed")
		return
	}

	preview, err := h.draftService.Quote(req)
	if err != nil {
		respondServiceError(w, r, err, "failed to compute preview")
		return
	}

	response.RespondJSON(w, http.StatusOK, preview)
}

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

// TransactionHandler handles HTTP requests for editing recorded transactions.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /transactions/{id}
// Response: 200 OK with model.Transaction
// Error: 404 Not Found if transaction not found
// Error: 502 Bad Gateway if the bank API fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.transactionService.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveTransaction.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// UpdateTransaction handles PATCH requests to update an existing transaction.
// The amount is entered unsigned and signed by the transaction type before it is sent.
//
// Endpoint: PATCH /transactions/{id}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated model.Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if transaction not found
// Error: 502 Bad Gateway if the bank API rejects the update
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		respondServiceError(w, r, err, "validation failed")
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToUpdateTransaction.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /transactions/{id}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if transaction not found
// Error: 502 Bad Gateway if the bank API fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToDeleteTransaction.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

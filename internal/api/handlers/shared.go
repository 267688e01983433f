package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/response"
	"github.com/ndewijer/Banking-Admin-Backend/internal/apperrors"
	"github.com/ndewijer/Banking-Admin-Backend/internal/bankapi"
	"github.com/ndewijer/Banking-Admin-Backend/internal/ledger"
	"github.com/ndewijer/Banking-Admin-Backend/internal/logger"
	"github.com/ndewijer/Banking-Admin-Backend/internal/session"
	"github.com/ndewijer/Banking-Admin-Backend/internal/validation"
)

// parseJSON decodes the request body into T. Unknown fields are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("invalid JSON: %w", err)
	}
	return v, nil
}

// ownerID is the id of the signed-in staff member, as injected by the gate.
func ownerID(r *http.Request) string {
	sc := session.FromContext(r.Context())
	if sc == nil {
		return ""
	}
	return sc.User.ID.String()
}

var notFoundErrors = []error{
	apperrors.ErrDraftNotFound,
	apperrors.ErrUserNotFound,
	apperrors.ErrTransactionNotFound,
}

var badInputErrors = []error{
	ledger.ErrUnknownTransactionType,
	ledger.ErrUnknownTaxonomyVersion,
	ledger.ErrNonPositiveAmount,
	validation.ErrInvalidAmount,
}

// respondServiceError maps a service error onto a status code. fallback is the message shown
// for failures that carry no user-facing text of their own.
//
//	*validation.Error         400 with the field messages as details
//	ledger input errors       400
//	*NotFound sentinels       404
//	ErrDraftForbidden         403
//	ErrAdminRequired          403
//	ErrDraftInFlight          409
//	*bankapi.Error            502 with the bank API's own message, 404 stays 404
//	anything else             500
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}
	for _, target := range badInputErrors {
		if errors.Is(err, target) {
			response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
			return
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			response.RespondError(w, http.StatusNotFound, target.Error(), err.Error())
			return
		}
	}

	switch {
	case errors.Is(err, apperrors.ErrDraftForbidden):
		response.RespondError(w, http.StatusForbidden, apperrors.ErrDraftForbidden.Error(), "")
		return
	case errors.Is(err, apperrors.ErrAdminRequired):
		response.RespondError(w, http.StatusForbidden, apperrors.ErrAdminRequired.Error(), "")
		return
	case errors.Is(err, apperrors.ErrDraftInFlight):
		response.RespondError(w, http.StatusConflict, apperrors.ErrDraftInFlight.Error(), "")
		return
	}

	log := logger.FromContext(r.Context())
	var apiErr *bankapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			response.RespondError(w, http.StatusNotFound, bankapi.MessageOf(err, fallback), err.Error())
			return
		}
		log.Warn().Err(err).Int("upstream_status", apiErr.StatusCode).Msg(fallback)
		response.RespondError(w, http.StatusBadGateway, bankapi.MessageOf(err, fallback), err.Error())
		return
	}

	log.Error().Err(err).Msg(fallback)
	response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
}

// Package middleware provides HTTP middleware for request validation, session gating and
// request logging.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/response"
	"github.com/ndewijer/Banking-Admin-Backend/internal/validation"
)

// ValidateDraftIDMiddleware validates that the id URL parameter is present and is a valid UUID.
// Draft ids are issued by this service; bank API ids are opaque and are not checked.
// Returns 400 Bad Request if the id is missing or invalid.
//
// Example usage in router:
//
//	r.Route("/drafts/{id}", func(r chi.Router) {
//	    r.Use(middleware.ValidateDraftIDMiddleware)
//	    r.Get("/", handler.GetDraft)
//	    r.Patch("/", handler.UpdateDraft)
//	})
func ValidateDraftIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if id == "" {
			response.RespondError(w, http.StatusBadRequest, "valid draft ID is required", "")
			return
		}

		if err := validation.ValidateUUID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

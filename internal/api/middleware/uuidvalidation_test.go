package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/middleware"
	"github.com/ndewijer/Banking-Admin-Backend/internal/testutil"
)

func TestValidateDraftIDMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantCalled bool
		wantStatus int
	}{
		{"passes through valid UUID", "550e8400-e29b-41d4-a716-446655440000", true, http.StatusOK},
		{"returns 400 for invalid UUID", "invalid-id", false, http.StatusBadRequest},
		{"returns 400 for bank API style id", "42", false, http.StatusBadRequest},
		{"returns 400 for empty id", "", false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := testutil.NewRequestWithURLParams(http.MethodGet, "/transactions/add/drafts/x", map[string]string{"id": tt.id})
			w := httptest.NewRecorder()
			middleware.ValidateDraftIDMiddleware(next).ServeHTTP(w, req)

			if handlerCalled != tt.wantCalled {
				t.Errorf("Expected handler called=%v, got %v", tt.wantCalled, handlerCalled)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

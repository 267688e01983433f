package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
	"github.com/ndewijer/Banking-Admin-Backend/internal/testutil"
)

func setupTransactionHandler(t *testing.T) (*TransactionHandler, *testutil.MockBankAPI) {
	t.Helper()
	bank := testutil.NewMockBankAPI().
		WithTransaction(model.Transaction{
			ID:          "t-1",
			UserID:      "u-1",
			Description: "Electric bill",
			Amount:      testutil.Dec("-80"),
			Type:        "bill_payment",
			Date:        "2025-04-01",
		})
	return NewTransactionHandler(testutil.NewTestTransactionService(t, bank)), bank
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns transaction successfully", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/transactions/t-1", map[string]string{"id": "t-1"})
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		response := testutil.DecodeJSON[model.Transaction](t, w)
		if response.Description != "Electric bill" {
			t.Errorf("Expected description 'Electric bill', got '%s'", response.Description)
		}
	})

	t.Run("returns 404 when transaction not found", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/transactions/t-9", map[string]string{"id": "t-9"})
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("signs the amount by the stored type", func(t *testing.T) {
		handler, bank := setupTransactionHandler(t)

		amount := decimal.RequireFromString("95")
		req := testutil.NewJSONRequest(t, http.MethodPatch, "/transactions/t-1",
			request.UpdateTransactionRequest{Amount: &amount}, map[string]string{"id": "t-1"})
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if got := *bank.TransactionPatches[0].Amount; got != "-95.00" {
			t.Errorf("Expected amount '-95.00', got '%s'", got)
		}
	})

	t.Run("returns 400 for a blank description", func(t *testing.T) {
		handler, bank := setupTransactionHandler(t)

		desc := "   "
		req := testutil.NewJSONRequest(t, http.MethodPatch, "/transactions/t-1",
			request.UpdateTransactionRequest{Description: &desc}, map[string]string{"id": "t-1"})
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		if len(bank.TransactionPatches) != 0 {
			t.Error("Expected no update to reach the bank API")
		}
	})

	t.Run("returns 400 for an unknown type", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		typ := "teleport"
		req := testutil.NewJSONRequest(t, http.MethodPatch, "/transactions/t-1",
			request.UpdateTransactionRequest{Type: &typ}, map[string]string{"id": "t-1"})
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 when transaction not found", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		desc := "Updated bill"
		req := testutil.NewJSONRequest(t, http.MethodPatch, "/transactions/t-9",
			request.UpdateTransactionRequest{Description: &desc}, map[string]string{"id": "t-9"})
		w := httptest.NewRecorder()

		handler.UpdateTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("deletes transaction successfully", func(t *testing.T) {
		handler, bank := setupTransactionHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/transactions/t-1", map[string]string{"id": "t-1"})
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
		if _, ok := bank.Transactions["t-1"]; ok {
			t.Error("Expected transaction to be removed")
		}
	})

	t.Run("returns 404 when transaction not found", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/transactions/t-9", map[string]string{"id": "t-9"})
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
)

func ptr[T any](v T) *T { return &v }

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	if err == nil {
		return nil
	}
	var vErr *Error
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *validation.Error, got %T: %v", err, err)
	}
	return vErr.Fields
}

func validUser() request.CreateUserRequest {
	return request.CreateUserRequest{
		Name:          "Ada Lovelace",
		Email:         "ada@bank.test",
		Password:      "analytical",
		Phone:         "555-0100",
		Address:       "12 St James's Square",
		AccountName:   "Ada L",
		AccountNumber: "000123",
		AccountType:   "checking",
		Role:          "User",
	}
}

func TestValidateCreateUser(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		if err := ValidateCreateUser(validUser()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*request.CreateUserRequest)
		field  string
		msg    string
	}{
		{"missing name", func(r *request.CreateUserRequest) { r.Name = " " }, "name", "Name is required"},
		{"bad email", func(r *request.CreateUserRequest) { r.Email = "ada@bank" }, "email", "Invalid email address"},
		{"short password", func(r *request.CreateUserRequest) { r.Password = "1234567" }, "password", "Password must be at least 8 characters"},
		{"missing account type", func(r *request.CreateUserRequest) { r.AccountType = "" }, "accountType", "Account type is required"},
		{"unknown role", func(r *request.CreateUserRequest) { r.Role = "Owner" }, "role", "Role must be Admin or User"},
		{"non-numeric balance", func(r *request.CreateUserRequest) { r.Balance = "lots" }, "balance", "Balance must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUser()
			tt.mutate(&req)
			got := fields(t, ValidateCreateUser(req))
			if got[tt.field] != tt.msg {
				t.Errorf("Expected %s error %q, got %v", tt.field, tt.msg, got)
			}
		})
	}

	t.Run("email match is case-insensitive", func(t *testing.T) {
		req := validUser()
		req.Email = "ADA@BANK.TEST"
		if err := ValidateCreateUser(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}

func TestValidateUpdateUser(t *testing.T) {
	t.Run("empty request is valid", func(t *testing.T) {
		if err := ValidateUpdateUser(request.UpdateUserRequest{}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("empty password keeps the current one", func(t *testing.T) {
		if err := ValidateUpdateUser(request.UpdateUserRequest{Password: ptr("")}); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		got := fields(t, ValidateUpdateUser(request.UpdateUserRequest{Password: ptr("12345")}))
		if got["password"] != "Password must be at least 6 characters" {
			t.Errorf("Unexpected errors: %v", got)
		}
	})

	t.Run("blank name", func(t *testing.T) {
		got := fields(t, ValidateUpdateUser(request.UpdateUserRequest{Name: ptr("")}))
		if _, ok := got["name"]; !ok {
			t.Errorf("Expected name error, got %v", got)
		}
	})
}

func TestValidateUpdateTransaction(t *testing.T) {
	t.Run("current and legacy tags are accepted", func(t *testing.T) {
		for _, typ := range []string{"zelle_debit", "wire"} {
			if err := ValidateUpdateTransaction(request.UpdateTransactionRequest{Type: ptr(typ)}); err != nil {
				t.Errorf("Type %q: expected no error, got %v", typ, err)
			}
		}
	})

	t.Run("invalid fields", func(t *testing.T) {
		got := fields(t, ValidateUpdateTransaction(request.UpdateTransactionRequest{
			Description: ptr(""),
			Amount:      ptr(decimal.Zero),
			Type:        ptr("transfer"),
			Date:        ptr("20/04/2025"),
		}))
		for _, f := range []string{"description", "amount", "type", "date"} {
			if _, ok := got[f]; !ok {
				t.Errorf("Expected %s error, got %v", f, got)
			}
		}
	})
}

func TestValidateDraftSubmission(t *testing.T) {
	amount := decimal.RequireFromString("1250")
	complete := func() *model.Draft {
		return &model.Draft{
			TaxonomyVersion: "v2",
			Email:           "ada@bank.test",
			Amount:          &amount,
			Type:            "ach_debit",
			Description:     "Rent payment",
			Date:            "2025-04-20",
			CreatedAt:       time.Now(),
		}
	}

	t.Run("complete draft", func(t *testing.T) {
		if err := ValidateDraftSubmission(complete()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("short description", func(t *testing.T) {
		d := complete()
		d.Description = "Rent"
		got := fields(t, ValidateDraftSubmission(d))
		if got["description"] != "Description must be at least 5 characters" {
			t.Errorf("Unexpected errors: %v", got)
		}
	})

	t.Run("legacy tag on a current draft", func(t *testing.T) {
		d := complete()
		d.Type = "debit"
		got := fields(t, ValidateDraftSubmission(d))
		if _, ok := got["type"]; !ok {
			t.Errorf("Expected type error, got %v", got)
		}
	})

	t.Run("legacy tag on a legacy draft", func(t *testing.T) {
		d := complete()
		d.TaxonomyVersion = "v1"
		d.Type = "debit"
		if err := ValidateDraftSubmission(d); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("empty draft reports every field", func(t *testing.T) {
		got := fields(t, ValidateDraftSubmission(&model.Draft{TaxonomyVersion: "v2"}))
		for _, f := range []string{"email", "amount", "type", "description", "date"} {
			if _, ok := got[f]; !ok {
				t.Errorf("Expected %s error, got %v", f, got)
			}
		}
	})
}

func TestValidateUpdateDraft(t *testing.T) {
	t.Run("isReceiving on a current draft", func(t *testing.T) {
		got := fields(t, ValidateUpdateDraft(request.UpdateDraftRequest{IsReceiving: ptr(true)}, 2))
		if _, ok := got["isReceiving"]; !ok {
			t.Errorf("Expected isReceiving error, got %v", got)
		}
	})

	t.Run("clearing the type is allowed", func(t *testing.T) {
		if err := ValidateUpdateDraft(request.UpdateDraftRequest{Type: ptr("")}, 2); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		got := fields(t, ValidateUpdateDraft(request.UpdateDraftRequest{Amount: ptr(decimal.NewFromInt(-5))}, 2))
		if got["amount"] != "Amount must be greater than 0" {
			t.Errorf("Unexpected errors: %v", got)
		}
	})
}

func TestError_Error(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "second", "a": "first"}}
	if err.Error() != "a: first; b: second" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("")
	if err != nil || !d.IsZero() {
		t.Errorf("Expected zero for empty input, got %v, %v", d, err)
	}
	if _, err := ParseAmount("12,50"); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount, got %v", err)
	}
}

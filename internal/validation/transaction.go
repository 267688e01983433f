package validation

import (
	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/ledger"
)

// ValidateUpdateTransaction validates the edit-transaction form.
// All fields are optional, but if provided:
//   - description: must not be empty
//   - amount: must be greater than 0
//   - type: must be a tag of either taxonomy version
//   - date: must be in YYYY-MM-DD format
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Description != nil && blank(*req.Description) {
		errors["description"] = "Description is required"
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		errors["amount"] = "Amount must be greater than 0"
	}
	if req.Type != nil {
		if _, err := ledger.VersionOf(ledger.TransactionType(*req.Type)); err != nil {
			errors["type"] = "Invalid transaction type"
		}
	}
	if req.Date != nil && !IsDate(*req.Date) {
		errors["date"] = "Date must be in YYYY-MM-DD format"
	}

	return result(errors)
}

package request

import "github.com/shopspring/decimal"

// UpdateTransactionRequest is the edit-transaction form. Amount is the unsigned magnitude;
// the sign is derived from Type.
type UpdateTransactionRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Date        *string          `json:"date,omitempty"`
}

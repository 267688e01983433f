package request

import "github.com/shopspring/decimal"

// CreateDraftRequest opens a transaction draft. Version defaults to the current taxonomy.
type CreateDraftRequest struct {
	TaxonomyVersion string `json:"taxonomyVersion"`
	Email           string `json:"email"`
}

// UpdateDraftRequest mutates a draft. Nil fields are left unchanged. Setting Email triggers
// a fresh balance lookup.
type UpdateDraftRequest struct {
	Email       *string          `json:"email,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *string          `json:"type,omitempty"`
	IsPending   *bool            `json:"isPending,omitempty"`
	IsReceiving *bool            `json:"isReceiving,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *string          `json:"date,omitempty"`
}

// PreviewRequest asks for a stateless balance preview.
type PreviewRequest struct {
	TaxonomyVersion string           `json:"taxonomyVersion"`
	Type            string           `json:"type"`
	Amount          decimal.Decimal  `json:"amount"`
	IsPending       bool             `json:"isPending"`
	IsReceiving     bool             `json:"isReceiving"`
	CurrentBalance  *decimal.Decimal `json:"currentBalance,omitempty"`
}

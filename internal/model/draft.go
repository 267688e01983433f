package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Draft is the server-held state of a transaction entry form. It is created empty, mutated
// field by field and consumed once on submission.
//
// CurrentBalance caches the target account balance for the lifetime of the draft; it is nil
// until the email lookup succeeds. Generation increases whenever the target email changes and is
// used to discard lookup results that arrive for a previous target.
type Draft struct {
	ID              string           `json:"id"`
	OwnerID         string           `json:"ownerId"`
	TaxonomyVersion string           `json:"taxonomyVersion"`
	Email           string           `json:"email"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Type            string           `json:"type"`
	IsPending       bool             `json:"isPending"`
	IsReceiving     bool             `json:"isReceiving"`
	Description     string           `json:"description"`
	Date            string           `json:"date"`
	CurrentBalance  *decimal.Decimal `json:"currentBalance,omitempty"`
	Generation      int64            `json:"generation"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// BalancePreview is derived from a draft and never stored.
type BalancePreview struct {
	CurrentBalance   *decimal.Decimal `json:"currentBalance"`
	SignedDelta      *decimal.Decimal `json:"signedDelta"`
	ProjectedBalance *decimal.Decimal `json:"projectedBalance"`
	Class            string           `json:"class,omitempty"`
}

// DraftView is a draft together with its live preview and any non-fatal form errors.
type DraftView struct {
	Draft       *Draft         `json:"draft"`
	Preview     BalancePreview `json:"preview"`
	LookupError string         `json:"lookupError,omitempty"`
	PreviewNote string         `json:"previewNote,omitempty"`
}

// SubmissionResult is returned once a draft has been consumed.
type SubmissionResult struct {
	Transaction     Transaction `json:"transaction"`
	SubmittedAmount string      `json:"submittedAmount"`
}

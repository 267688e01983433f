package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/apperrors"
	"github.com/ndewijer/Banking-Admin-Backend/internal/bankapi"
	"github.com/ndewijer/Banking-Admin-Backend/internal/ledger"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
)

// TransactionService handles edits to recorded transactions.
// New transactions are recorded through DraftService.
type TransactionService struct {
	bank bankapi.API
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(bank bankapi.API) *TransactionService {
	return &TransactionService{bank: bank}
}

// GetTransaction retrieves a single transaction for the edit form.
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	tx, err := scoped(ctx, s.bank).GetTransaction(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.ErrTransactionNotFound)
	}
	return tx, nil
}

// UpdateTransaction patches a transaction. The request must already have passed
// validation.ValidateUpdateTransaction.
//
// The form carries an unsigned amount. It is signed by the class of the new type or, when the
// type is unchanged, of the stored type. A type-only edit re-signs the stored amount, so the
// persisted sign always follows the recorded type.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	bank := scoped(ctx, s.bank)

	patch := bankapi.UpdateTransactionRequest{
		Description: req.Description,
		Type:        req.Type,
		Date:        req.Date,
	}
	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		patch.Description = &trimmed
	}

	if req.Amount != nil || req.Type != nil {
		var (
			typ    string
			amount decimal.Decimal
		)
		if req.Type == nil || req.Amount == nil {
			current, err := bank.GetTransaction(ctx, id)
			if err != nil {
				return nil, mapNotFound(err, apperrors.ErrTransactionNotFound)
			}
			typ = current.Type
			amount = current.Amount.Abs()
		}
		if req.Type != nil {
			typ = *req.Type
		}
		if req.Amount != nil {
			amount = *req.Amount
		}

		signed, err := ledger.SignedAmount(ledger.TransactionType(typ), amount)
		if err != nil {
			return nil, err
		}
		wire := ledger.WireAmount(signed)
		patch.Amount = &wire
	}

	tx, err := bank.UpdateTransaction(ctx, id, patch)
	if err != nil {
		return nil, mapNotFound(err, apperrors.ErrTransactionNotFound)
	}
	return tx, nil
}

// DeleteTransaction removes a transaction.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if err := scoped(ctx, s.bank).DeleteTransaction(ctx, id); err != nil {
		return mapNotFound(err, apperrors.ErrTransactionNotFound)
	}
	return nil
}

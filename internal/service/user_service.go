package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/apperrors"
	"github.com/ndewijer/Banking-Admin-Backend/internal/bankapi"
	"github.com/ndewijer/Banking-Admin-Backend/internal/ledger"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
	"github.com/ndewijer/Banking-Admin-Backend/internal/validation"
)

// UserService handles user account operations on behalf of the signed-in admin.
type UserService struct {
	bank bankapi.API
}

// NewUserService creates a new UserService.
func NewUserService(bank bankapi.API) *UserService {
	return &UserService{bank: bank}
}

// ListUsers returns the manage-users table: every account matching the role filter whose name
// or email contains the search text (case-insensitive).
func (s *UserService) ListUsers(ctx context.Context, filter request.UserFilter) ([]model.UserSummary, error) {
	users, err := scoped(ctx, s.bank).ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(filter.Query)
	summaries := []model.UserSummary{}
	for _, u := range users {
		if filter.Role != "" && filter.Role != model.RoleAll && u.RoleName() != filter.Role {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(u.Name), query) &&
			!strings.Contains(strings.ToLower(u.Email), query) {
			continue
		}
		summaries = append(summaries, model.UserSummary{
			ID:          u.ID.String(),
			Name:        u.Name,
			Email:       u.Email,
			Role:        u.RoleName(),
			AccountType: u.AccountType,
			Balance:     ledger.FormatCurrency(u.Balance),
		})
	}
	return summaries, nil
}

// GetUser returns a single account for the edit form.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := scoped(ctx, s.bank).GetUser(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// RegisterUser creates an account. The request must already have passed
// validation.ValidateCreateUser.
func (s *UserService) RegisterUser(ctx context.Context, req request.CreateUserRequest) (*model.User, error) {
	balance, err := validation.ParseAmount(req.Balance)
	if err != nil {
		return nil, err
	}
	credit, err := validation.ParseAmount(req.AvailableCredit)
	if err != nil {
		return nil, err
	}

	user, err := scoped(ctx, s.bank).Register(ctx, bankapi.RegisterUserRequest{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(req.Email),
		Password:        req.Password,
		Phone:           req.Phone,
		Address:         req.Address,
		AccountName:     req.AccountName,
		AccountType:     req.AccountType,
		AccountNumber:   req.AccountNumber,
		Role:            req.Role == model.RoleAdmin,
		Balance:         balance,
		AvailableCredit: credit,
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser patches an account. Fields left nil are not sent and an empty password keeps the
// current one.
func (s *UserService) UpdateUser(ctx context.Context, id string, req request.UpdateUserRequest) (*model.User, error) {
	patch := bankapi.UpdateUserRequest{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		AccountName:   req.AccountName,
		AccountType:   req.AccountType,
		AccountNumber: req.AccountNumber,
	}
	if req.Password != nil && *req.Password != "" {
		patch.Password = req.Password
	}
	if req.Role != nil {
		isAdmin := *req.Role == model.RoleAdmin
		patch.Role = &isAdmin
	}
	if req.Balance != nil {
		d, err := validation.ParseAmount(*req.Balance)
		if err != nil {
			return nil, err
		}
		patch.Balance = &d
	}
	if req.AvailableCredit != nil {
		d, err := validation.ParseAmount(*req.AvailableCredit)
		if err != nil {
			return nil, err
		}
		patch.AvailableCredit = &d
	}

	user, err := scoped(ctx, s.bank).UpdateUser(ctx, id, patch)
	if err != nil {
		return nil, mapNotFound(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// GetUserDetail loads an account and one page of its transaction history concurrently and
// renders the history rows with signed amount labels.
//
// PresentBalance is the ledger balance reported by the bank API. AvailableBalance additionally
// holds back pending debits visible on the fetched page.
func (s *UserService) GetUserDetail(ctx context.Context, id string, page, limit int) (*model.UserDetail, error) {
	bank := scoped(ctx, s.bank)

	var (
		user *model.User
		txs  *model.TransactionPage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := bank.GetUser(gctx, id)
		if err != nil {
			return mapNotFound(err, apperrors.ErrUserNotFound)
		}
		user = u
		return nil
	})
	g.Go(func() error {
		p, err := bank.ListTransactions(gctx, id, page, limit)
		if err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
		}
		txs = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]model.TransactionListRow, 0, len(txs.Transactions))
	holds := decimal.Zero
	for _, tx := range txs.Transactions {
		row := transactionRow(tx)
		if tx.IsPending && !row.Credit {
			holds = holds.Add(tx.Amount.Abs())
		}
		rows = append(rows, row)
	}

	return &model.UserDetail{
		User:             *user,
		PresentBalance:   ledger.FormatCurrency(user.Balance),
		AvailableBalance: ledger.FormatCurrency(user.Balance.Sub(holds)),
		AvailableCredit:  ledger.FormatCurrency(user.AvailableCredit),
		Transactions:     rows,
		Pagination:       txs.Pagination,
	}, nil
}

// transactionRow renders a recorded transaction for display. Current-taxonomy rows take their
// sign from the type's class. Legacy rows were signed by the receiving flag, so their label
// follows that flag or, when absent, the stored amount. Unknown tags use the stored amount.
func transactionRow(tx model.Transaction) model.TransactionListRow {
	row := model.TransactionListRow{
		ID:          tx.ID.String(),
		Date:        tx.Date,
		Description: tx.Description,
		Type:        tx.Type,
		Pending:     tx.IsPending,
	}

	t := ledger.TransactionType(tx.Type)
	label := ""
	if v, err := ledger.VersionOf(t); err == nil && v == ledger.TaxonomyCurrent {
		label, _ = ledger.FormatAmountLabel(tx.Amount, t)
	}
	if label == "" {
		received := !tx.Amount.IsNegative()
		if tx.IsReceiving != nil {
			received = *tx.IsReceiving
		}
		label = "-" + ledger.FormatCurrency(tx.Amount.Abs())
		if received {
			label = "+" + ledger.FormatCurrency(tx.Amount.Abs())
		}
	}
	row.Amount = label
	row.Credit = strings.HasPrefix(label, "+")

	if tx.UpdatedBalance != nil {
		row.Balance = ledger.FormatCurrency(*tx.UpdatedBalance)
	}
	return row
}

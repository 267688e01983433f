package bankapi

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
)

// envelope is the response shape shared by all bank API endpoints. Only the fields relevant to
// the endpoint are populated.
type envelope struct {
	Status     string            `json:"status"`
	Message    string            `json:"message"`
	Error      string            `json:"error"`
	Token      string            `json:"token"`
	User       *model.User       `json:"user"`
	Data       envelopeData      `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
}

type envelopeData struct {
	User         *model.User         `json:"user"`
	Users        []model.User        `json:"users"`
	Transaction  *model.Transaction  `json:"transaction"`
	Transactions []model.Transaction `json:"transactions"`
	Pagination   *model.Pagination   `json:"pagination"`
}

// LoginResult is the outcome of POST /auth/login.
type LoginResult struct {
	Token string
	User  model.User
}

// RegisterUserRequest is the body of POST /auth/register.
type RegisterUserRequest struct {
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Password        string          `json:"password"`
	Phone           string          `json:"phone"`
	Address         string          `json:"address"`
	AccountName     string          `json:"accountName"`
	AccountType     string          `json:"accountType"`
	AccountNumber   string          `json:"accountNumber"`
	Role            bool            `json:"role"`
	Balance         decimal.Decimal `json:"balance"`
	AvailableCredit decimal.Decimal `json:"availableCredit"`
}

// UpdateUserRequest is the body of PATCH /users/{id}. Nil fields are not sent.
type UpdateUserRequest struct {
	Name            *string          `json:"name,omitempty"`
	Email           *string          `json:"email,omitempty"`
	Phone           *string          `json:"phone,omitempty"`
	Address         *string          `json:"address,omitempty"`
	AccountName     *string          `json:"accountName,omitempty"`
	AccountType     *string          `json:"accountType,omitempty"`
	AccountNumber   *string          `json:"accountNumber,omitempty"`
	Role            *bool            `json:"role,omitempty"`
	Balance         *decimal.Decimal `json:"balance,omitempty"`
	AvailableCredit *decimal.Decimal `json:"availableCredit,omitempty"`
	Password        *string          `json:"password,omitempty"`
}

// CreateTransactionRequest is the body of POST /transactions. Amount is already signed and
// rendered with two decimals. Exactly one of IsPending and IsReceiving is set, depending on the
// taxonomy version the draft was written against.
type CreateTransactionRequest struct {
	Email       string `json:"email"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	IsPending   *bool  `json:"isPending,omitempty"`
	IsReceiving *bool  `json:"isReceiving,omitempty"`
}

// UpdateTransactionRequest is the body of PATCH /transactions/{id}.
type UpdateTransactionRequest struct {
	Description *string `json:"description,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Type        *string `json:"type,omitempty"`
	Date        *string `json:"date,omitempty"`
}

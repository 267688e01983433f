package model

import (
	"github.com/shopspring/decimal"
)

// Transaction is a recorded transaction as returned by the bank API.
type Transaction struct {
	ID             ID               `json:"id"`
	UserID         ID               `json:"userId"`
	Description    string           `json:"description"`
	Amount         decimal.Decimal  `json:"amount"`
	Type           string           `json:"type"`
	Date           string           `json:"date"`
	IsPending      bool             `json:"isPending,omitempty"`
	IsReceiving    *bool            `json:"isReceiving,omitempty"`
	UpdatedBalance *decimal.Decimal `json:"updatedBalance,omitempty"`
}

// TransactionListRow is a read-only display row for a user's transaction history.
type TransactionListRow struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Credit      bool   `json:"credit"`
	Balance     string `json:"balance,omitempty"`
	Pending     bool   `json:"pending"`
}

// Pagination describes one page of a paged listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// TransactionPage is a page of a user's transactions.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}

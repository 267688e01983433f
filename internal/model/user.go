package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a bank customer or staff account as returned by the bank API.
// Role is true for administrators.
type User struct {
	ID              ID              `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone,omitempty"`
	Address         string          `json:"address,omitempty"`
	AccountName     string          `json:"accountName,omitempty"`
	AccountNumber   string          `json:"accountNumber,omitempty"`
	AccountType     string          `json:"accountType,omitempty"`
	Role            bool            `json:"role"`
	Balance         decimal.Decimal `json:"balance"`
	AvailableCredit decimal.Decimal `json:"availableCredit"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}

// RoleName maps the boolean role flag to the label used by the user list filter.
func (u User) RoleName() string {
	if u.Role {
		return RoleAdmin
	}
	return RoleUser
}

// Role filter labels.
const (
	RoleAll   = "All"
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// UserSummary is a row of the manage-users list.
type UserSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	AccountType string `json:"accountType"`
	Balance     string `json:"balance"`
}

// UserDetail is the account overview with its most recent transactions.
type UserDetail struct {
	User             User                 `json:"user"`
	AvailableBalance string               `json:"availableBalance"`
	PresentBalance   string               `json:"presentBalance"`
	AvailableCredit  string               `json:"availableCredit"`
	Transactions     []TransactionListRow `json:"transactions"`
	Pagination       Pagination           `json:"pagination"`
}

package request

// CreateUserRequest is the add-user form. Role is the label "Admin" or "User"; Balance and
// AvailableCredit are the raw form strings and default to 0 when empty.
type CreateUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	AccountName     string `json:"accountName"`
	AccountNumber   string `json:"accountNumber"`
	AccountType     string `json:"accountType"`
	Role            string `json:"role"`
	Balance         string `json:"balance"`
	AvailableCredit string `json:"availableCredit"`
}

// UpdateUserRequest is the edit-user form. Nil fields are left unchanged; an empty password
// means "keep the current one".
type UpdateUserRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Password        *string `json:"password,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	AccountName     *string `json:"accountName,omitempty"`
	AccountNumber   *string `json:"accountNumber,omitempty"`
	AccountType     *string `json:"accountType,omitempty"`
	Role            *string `json:"role,omitempty"`
	Balance         *string `json:"balance,omitempty"`
	AvailableCredit *string `json:"availableCredit,omitempty"`
}

// UserFilter narrows the manage-users list.
type UserFilter struct {
	Role  string
	Query string
}

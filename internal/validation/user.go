package validation

import (
	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
)

// Password length rules. New accounts need a longer password than a reset from the edit form.
const (
	MinPasswordLength        = 8
	MinUpdatedPasswordLength = 6
)

// ValidateCreateUser validates the add-user form.
//
// Required fields:
//   - name, phone, address, accountName, accountNumber, accountType
//   - email: must look like an address
//   - password: at least 8 characters
//   - role: "Admin" or "User"
//   - balance, availableCredit: numeric when present
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateUser(req request.CreateUserRequest) error {
	errors := make(map[string]string)

	if blank(req.Name) {
		errors["name"] = "Name is required"
	}
	if blank(req.Email) {
		errors["email"] = "Email is required"
	} else if !IsEmail(req.Email) {
		errors["email"] = "Invalid email address"
	}
	if req.Password == "" {
		errors["password"] = "Password is required"
	} else if len(req.Password) < MinPasswordLength {
		errors["password"] = "Password must be at least 8 characters"
	}
	if blank(req.Phone) {
		errors["phone"] = "Phone number is required"
	}
	if blank(req.Address) {
		errors["address"] = "Address is required"
	}
	if blank(req.AccountName) {
		errors["accountName"] = "Account name is required"
	}
	if blank(req.AccountNumber) {
		errors["accountNumber"] = "Account number is required"
	}
	if blank(req.AccountType) {
		errors["accountType"] = "Account type is required"
	}
	if !validRole(req.Role) {
		errors["role"] = "Role must be Admin or User"
	}
	if _, err := ParseAmount(req.Balance); err != nil {
		errors["balance"] = "Balance must be a number"
	}
	if _, err := ParseAmount(req.AvailableCredit); err != nil {
		errors["availableCredit"] = "Available credit must be a number"
	}

	return result(errors)
}

// ValidateUpdateUser validates the edit-user form. All fields are optional, but provided
// fields follow the create rules; a non-empty password needs at least 6 characters.
func ValidateUpdateUser(req request.UpdateUserRequest) error {
	errors := make(map[string]string)

	required := map[string]*string{
		"name":          req.Name,
		"phone":         req.Phone,
		"address":       req.Address,
		"accountName":   req.AccountName,
		"accountNumber": req.AccountNumber,
		"accountType":   req.AccountType,
	}
	for field, value := range required {
		if value != nil && blank(*value) {
			errors[field] = field + " cannot be empty"
		}
	}

	if req.Email != nil && !IsEmail(*req.Email) {
		errors["email"] = "Invalid email address"
	}
	if req.Password != nil && *req.Password != "" && len(*req.Password) < MinUpdatedPasswordLength {
		errors["password"] = "Password must be at least 6 characters"
	}
	if req.Role != nil && !validRole(*req.Role) {
		errors["role"] = "Role must be Admin or User"
	}
	if req.Balance != nil {
		if _, err := ParseAmount(*req.Balance); err != nil {
			errors["balance"] = "Balance must be a number"
		}
	}
	if req.AvailableCredit != nil {
		if _, err := ParseAmount(*req.AvailableCredit); err != nil {
			errors["availableCredit"] = "Available credit must be a number"
		}
	}

	return result(errors)
}

func validRole(role string) bool {
	return role == model.RoleAdmin || role == model.RoleUser
}

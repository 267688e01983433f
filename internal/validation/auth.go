package validation

import "github.com/ndewijer/Banking-Admin-Backend/internal/api/request"

// ValidateLogin checks that both credentials were entered.
func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)
	if blank(req.Username) {
		errors["username"] = "Username is required"
	}
	if req.Password == "" {
		errors["password"] = "Password is required"
	}
	return result(errors)
}

package request

import (
	"fmt"
	"strconv"
	"strings"
)

// Default page size of a user's transaction history.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParsePagination extracts page and limit from query parameters.
//
// Validation rules:
//   - page: positive integer (defaults to 1)
//   - limit: between 1 and 100 (defaults to 10)
func ParsePagination(pageParam, limitParam string) (page, limit int, err error) {
	page, limit = DefaultPage, DefaultLimit

	if pageParam != "" {
		page, err = strconv.Atoi(pageParam)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page: must be a positive number")
		}
	}

	if limitParam != "" {
		limit, err = strconv.Atoi(limitParam)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid limit: must be a number")
		}
		if limit < 1 || limit > MaxLimit {
			return 0, 0, fmt.Errorf("invalid limit: must be between 1 and %d", MaxLimit)
		}
	}

	return page, limit, nil
}

// ParseUserFilter reads the manage-users role filter and search text. The role is matched
// case-insensitively against "All", "Admin" and "User"; empty means "All".
func ParseUserFilter(roleParam, queryParam string) (UserFilter, error) {
	filter := UserFilter{Role: "All", Query: strings.TrimSpace(queryParam)}

	switch strings.ToLower(strings.TrimSpace(roleParam)) {
	case "", "all":
	case "admin":
		filter.Role = "Admin"
	case "user":
		filter.Role = "User"
	default:
		return UserFilter{}, fmt.Errorf("invalid role: must be All, Admin or User")
	}

	return filter, nil
}

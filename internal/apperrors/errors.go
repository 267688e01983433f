package apperrors

import "errors"

// Domain entity errors represent missing entities. They are returned when the bank API or the
// draft store reports that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that no user matches the given ID or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDraftNotFound indicates that a draft does not exist, was discarded, expired or was
	// already submitted.
	ErrDraftNotFound = errors.New("draft not found")
)

// Authentication and authorization errors.
var (
	// ErrInvalidCredentials is the generic login failure shown when the bank API gives no reason.
	ErrInvalidCredentials = errors.New("Login failed. Please check your credentials.") //nolint:staticcheck // user-facing message

	// ErrAdminRequired rejects logins by accounts without the admin role flag.
	ErrAdminRequired = errors.New("Access denied. Admin privileges required.") //nolint:staticcheck // user-facing message

	// ErrDraftInFlight indicates a submit already running for the same draft.
	ErrDraftInFlight = errors.New("draft is already being submitted")

	// ErrDraftForbidden indicates a draft owned by another staff member.
	ErrDraftForbidden = errors.New("draft belongs to another user")
)

// Operation failure errors represent failures talking to the bank API or the draft store.
var (
	ErrFailedToRetrieveUsers        = errors.New("failed to retrieve users")
	ErrFailedToRetrieveUser         = errors.New("failed to retrieve user")
	ErrFailedToCreateUser           = errors.New("Error adding user. Please try again.") //nolint:staticcheck // user-facing message
	ErrFailedToUpdateUser           = errors.New("failed to update user")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("Failed to fetch transaction details.") //nolint:staticcheck // user-facing message
	ErrFailedToCreateTransaction    = errors.New("failed to create transaction")
	ErrFailedToUpdateTransaction    = errors.New("Failed to update transaction. Please try again.") //nolint:staticcheck // user-facing message
	ErrFailedToDeleteTransaction    = errors.New("failed to delete transaction")
	ErrFailedToLookupBalance        = errors.New("failed to fetch user balance")
	ErrFailedToRetrieveDraft        = errors.New("failed to retrieve draft")
	ErrFailedToSaveDraft            = errors.New("failed to save draft")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)

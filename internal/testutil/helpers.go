package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Banking-Admin-Backend/internal/bankapi"
	"github.com/ndewijer/Banking-Admin-Backend/internal/repository"
	"github.com/ndewijer/Banking-Admin-Backend/internal/service"
)

// DraftTTL is the draft lifetime used by NewTestDraftService.
const DraftTTL = time.Hour

func NewTestAuthService(t *testing.T, bank bankapi.API) *service.AuthService {
	t.Helper()
	return service.NewAuthService(bank, zerolog.Nop())
}

func NewTestUserService(t *testing.T, bank bankapi.API) *service.UserService {
	t.Helper()
	return service.NewUserService(bank)
}

func NewTestTransactionService(t *testing.T, bank bankapi.API) *service.TransactionService {
	t.Helper()
	return service.NewTransactionService(bank)
}

// NewTestDraftService creates a DraftService backed by db and bank with a one-hour TTL.
func NewTestDraftService(t *testing.T, db *sql.DB, bank bankapi.API) *service.DraftService {
	t.Helper()
	return service.NewDraftService(repository.NewDraftRepository(db), bank, DraftTTL, zerolog.Nop())
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

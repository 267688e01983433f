package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Banking-Admin-Backend/internal/bankapi"
	"github.com/ndewijer/Banking-Admin-Backend/internal/session"
)

// scoped returns the bank API client acting as the signed-in staff member. Outside a session
// (login, tests without a gate) the unauthenticated client is returned.
func scoped(ctx context.Context, bank bankapi.API) bankapi.API {
	if sc := session.FromContext(ctx); sc != nil && sc.Token != "" {
		return bank.WithToken(sc.Token)
	}
	return bank
}

// mapNotFound replaces a bank API 404 with the domain sentinel so handlers can match it with
// errors.Is. Other errors are returned unchanged.
func mapNotFound(err, notFound error) error {
	if bankapi.IsNotFound(err) {
		return fmt.Errorf("%w: %w", notFound, err)
	}
	return err
}

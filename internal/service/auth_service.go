package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/apperrors"
	"github.com/ndewijer/Banking-Admin-Backend/internal/bankapi"
	"github.com/ndewijer/Banking-Admin-Backend/internal/session"
)

// AuthService exchanges staff credentials for a session.
type AuthService struct {
	bank bankapi.API
	log  zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(bank bankapi.API, log zerolog.Logger) *AuthService {
	return &AuthService{
		bank: bank,
		log:  log.With().Str("component", "auth").Logger(),
	}
}

// Login authenticates against the bank API and returns the session to persist.
//
// Accounts without the admin role flag are rejected with apperrors.ErrAdminRequired; the
// token is never stored for them. Bank API failures are wrapped in
// apperrors.ErrInvalidCredentials and keep the upstream *bankapi.Error, so callers can show the
// API's own message via bankapi.MessageOf.
func (s *AuthService) Login(ctx context.Context, req request.LoginRequest) (*session.Context, error) {
	res, err := s.bank.Login(ctx, req.Username, req.Password)
	if err != nil {
		s.log.Info().Str("username", req.Username).Err(err).Msg("login failed")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidCredentials, err)
	}

	if !res.User.Role {
		s.log.Warn().Str("user_id", res.User.ID.String()).Msg("login rejected: admin role required")
		return nil, apperrors.ErrAdminRequired
	}

	expiresAt, err := session.TokenExpiry(res.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidCredentials, err)
	}

	s.log.Info().Str("user_id", res.User.ID.String()).Msg("staff login")
	return &session.Context{Token: res.Token, User: res.User, ExpiresAt: expiresAt}, nil
}

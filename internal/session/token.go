package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

// ErrMalformedToken is returned when the bearer token is not a compact JWS.
var ErrMalformedToken = errors.New("malformed session token")

// The bank API issues the token; we only read its expiry and never hold the verification key.
var tokenAlgorithms = []jose.SignatureAlgorithm{
	jose.HS256, jose.HS384, jose.HS512,
	jose.RS256, jose.RS384, jose.RS512,
	jose.ES256, jose.ES384, jose.ES512,
	jose.PS256, jose.PS384, jose.PS512,
	jose.EdDSA,
}

// TokenExpiry decodes the exp claim of a JWT without verifying its signature.
// A token without exp returns nil; the cookie lifetime still bounds the session.
func TokenExpiry(raw string) (*time.Time, error) {
	tok, err := jwt.ParseSigned(raw, tokenAlgorithms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	var claims jwt.Claims
	if err := tok.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.Expiry == nil {
		return nil, nil
	}
	exp := claims.Expiry.Time()
	return &exp, nil
}

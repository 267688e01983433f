package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
	"github.com/ndewijer/Banking-Admin-Backend/internal/session"
)

var testSigningKey = []byte("test-signing-key-0123456789abcdef")

// SignTestToken issues an HS256 JWT for subject that expires at exp.
func SignTestToken(t *testing.T, subject string, exp time.Time) string {
	t.Helper()
	sig, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: testSigningKey},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		t.Fatalf("Failed to create signer: %v", err)
	}
	raw, err := jwt.Signed(sig).Claims(jwt.Claims{
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(time.Now()),
		Expiry:   jwt.NewNumericDate(exp),
	}).Serialize()
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return raw
}

// NewTestSessionManager creates a session manager with a random key.
func NewTestSessionManager(t *testing.T) *session.Manager {
	t.Helper()
	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate session key: %v", err)
	}
	m, err := session.NewManager(session.Options{Key: key.Encode(), MaxAge: 24 * time.Hour}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to create session manager: %v", err)
	}
	return m
}

// NewTestSession returns a valid session for user with a token expiring in an hour.
func NewTestSession(t *testing.T, user model.User) *session.Context {
	t.Helper()
	exp := time.Now().Add(time.Hour)
	return &session.Context{
		Token:     SignTestToken(t, user.ID.String(), exp),
		User:      user,
		ExpiresAt: &exp,
	}
}

// AdminUser is the signed-in staff member used by handler tests.
func AdminUser() model.User {
	return NewUser("admin-1", "admin@bank.test").WithName("Grace Admin").Admin().Build()
}

// SessionCookies returns the cookies m would set for sc.
func SessionCookies(t *testing.T, m *session.Manager, sc *session.Context) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	if err := m.Persist(w, sc); err != nil {
		t.Fatalf("Failed to persist session: %v", err)
	}
	return w.Result().Cookies()
}

// WithSession attaches sc to the request context, as the gate does for authenticated requests.
func WithSession(req *http.Request, sc *session.Context) *http.Request {
	return req.WithContext(session.WithContext(req.Context(), sc))
}

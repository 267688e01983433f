// Package session holds the signed-in staff member's credentials for the lifetime of a request.
//
// A session lives in two cookies, "token" (the bank API bearer JWT) and "userData" (the JSON user
// profile). Both are sealed with fernet so the role flag cannot be edited client-side. Handlers
// never read the cookies themselves: the gate loads the session once and injects it into the
// request context.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
)

// Cookie names.
const (
	TokenCookie    = "token"
	UserDataCookie = "userData"
)

// Errors returned by Load.
var (
	ErrNoSession     = errors.New("no session cookies")
	ErrTamperedValue = errors.New("session cookie failed verification")
	ErrBadUserData   = errors.New("session user data is not valid JSON")
	ErrExpired       = errors.New("session token expired")
)

// Context is the authenticated staff member: the bearer token for the bank API and the decoded
// user profile. Role is the admin flag.
type Context struct {
	Token     string     `json:"-"`
	User      model.User `json:"user"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// IsAdmin reports whether the session user carries the admin role flag.
func (c *Context) IsAdmin() bool {
	return c != nil && c.User.Role
}

// Manager loads, persists and clears sessions.
type Manager struct {
	key    *fernet.Key
	maxAge time.Duration
	secure bool
	now    func() time.Time
}

// Options configures a Manager.
type Options struct {
	// Key is a base64 fernet key. An empty key generates an ephemeral one, which invalidates
	// every session on restart.
	Key    string
	MaxAge time.Duration
	Secure bool
}

// NewManager validates the key and returns a Manager.
func NewManager(opts Options, log zerolog.Logger) (*Manager, error) {
	var key *fernet.Key
	if opts.Key == "" {
		key = new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		log.Warn().Msg("SESSION_KEY not set, using an ephemeral key; sessions will not survive a restart")
	} else {
		k, err := fernet.DecodeKey(opts.Key)
		if err != nil {
			return nil, fmt.Errorf("invalid session key: %w", err)
		}
		key = k
	}

	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}

	return &Manager{
		key:    key,
		maxAge: maxAge,
		secure: opts.Secure,
		now:    time.Now,
	}, nil
}

// Load reads and verifies both session cookies. A session is valid when both cookies are
// present, unsealed, the user data decodes and the token has not expired.
func (m *Manager) Load(r *http.Request) (*Context, error) {
	tokenCookie, err := r.Cookie(TokenCookie)
	if err != nil || tokenCookie.Value == "" {
		return nil, ErrNoSession
	}
	userCookie, err := r.Cookie(UserDataCookie)
	if err != nil || userCookie.Value == "" {
		return nil, ErrNoSession
	}

	token, err := m.open(tokenCookie.Value)
	if err != nil {
		return nil, err
	}
	userData, err := m.open(userCookie.Value)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(userData, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadUserData, err)
	}

	expiresAt, err := TokenExpiry(string(token))
	if err != nil {
		return nil, err
	}
	if expiresAt != nil && expiresAt.Before(m.now()) {
		return nil, ErrExpired
	}

	return &Context{Token: string(token), User: user, ExpiresAt: expiresAt}, nil
}

// Persist writes both cookies for sc.
func (m *Manager) Persist(w http.ResponseWriter, sc *Context) error {
	userData, err := json.Marshal(sc.User)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}
	sealedToken, err := m.seal([]byte(sc.Token))
	if err != nil {
		return err
	}
	sealedUser, err := m.seal(userData)
	if err != nil {
		return err
	}

	expires := m.now().Add(m.maxAge)
	http.SetCookie(w, m.cookie(TokenCookie, sealedToken, expires))
	http.SetCookie(w, m.cookie(UserDataCookie, sealedUser, expires))
	return nil
}

// Clear expires both cookies.
func (m *Manager) Clear(w http.ResponseWriter) {
	for _, name := range []string{TokenCookie, UserDataCookie} {
		c := m.cookie(name, "", time.Unix(0, 0))
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (m *Manager) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func (m *Manager) seal(msg []byte) (string, error) {
	tok, err := fernet.EncryptAndSign(msg, m.key)
	if err != nil {
		return "", fmt.Errorf("failed to seal session cookie: %w", err)
	}
	return string(tok), nil
}

func (m *Manager) open(value string) ([]byte, error) {
	msg := fernet.VerifyAndDecrypt([]byte(value), m.maxAge, []*fernet.Key{m.key})
	if msg == nil {
		return nil, ErrTamperedValue
	}
	return msg, nil
}

type ctxKey struct{}

// WithContext stores sc in ctx.
func WithContext(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// FromContext returns the session stored by the gate, or nil on public routes.
func FromContext(ctx context.Context) *Context {
	sc, _ := ctx.Value(ctxKey{}).(*Context)
	return sc
}

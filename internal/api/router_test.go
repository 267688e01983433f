package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Banking-Admin-Backend/internal/config"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
	"github.com/ndewijer/Banking-Admin-Backend/internal/session"
	"github.com/ndewijer/Banking-Admin-Backend/internal/testutil"
)

type routerFixture struct {
	handler  http.Handler
	sessions *session.Manager
	bank     *testutil.MockBankAPI
}

func setupRouter(t *testing.T) routerFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	bank := testutil.NewMockBankAPI().
		WithUser(testutil.NewUser("u-1", "ada@bank.test").WithBalance("20249.75").Build()).
		WithUser(testutil.AdminUser())
	sessions := testutil.NewTestSessionManager(t)

	svc := Services{
		System:       testutil.NewTestSystemService(t, db),
		Auth:         testutil.NewTestAuthService(t, bank),
		Users:        testutil.NewTestUserService(t, bank),
		Transactions: testutil.NewTestTransactionService(t, bank),
		Drafts:       testutil.NewTestDraftService(t, db, bank),
	}
	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}

	return routerFixture{
		handler:  NewRouter(svc, sessions, cfg, zerolog.Nop()),
		sessions: sessions,
		bank:     bank,
	}
}

func (f routerFixture) do(t *testing.T, method, path, body string, user *model.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		for _, c := range testutil.SessionCookies(t, f.sessions, testutil.NewTestSession(t, *user)) {
			req.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicRoutes(t *testing.T) {
	f := setupRouter(t)

	for _, path := range []string{"/api/system/health", "/api/system/version", "/login", "/forgot-password"} {
		w := f.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_GatedRoutes(t *testing.T) {
	f := setupRouter(t)
	admin := testutil.AdminUser()
	customer := testutil.NewUser("u-1", "ada@bank.test").Build()

	t.Run("anonymous requests are sent to login", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/users/manage", "", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("customers cannot open admin pages", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/transactions/add/drafts", `{}`, &customer)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login?error=unauthorized", w.Header().Get("Location"))
	})

	t.Run("admins reach the users list", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/users/manage?role=User", "", &admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "ada@bank.test")
	})

	t.Run("session token is forwarded to the bank api", func(t *testing.T) {
		before := len(f.bank.Tokens)
		w := f.do(t, http.MethodGet, "/users/u-1", "", &admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Greater(t, len(f.bank.Tokens), before)
		assert.NotEmpty(t, f.bank.Tokens[len(f.bank.Tokens)-1])
	})

	t.Run("draft ids must be UUIDs", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/transactions/add/drafts/not-a-uuid", "", &admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("taxonomy is available to any signed-in user", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/transactions/taxonomy?version=v1", "", &customer)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_DraftLifecycle(t *testing.T) {
	f := setupRouter(t)
	admin := testutil.AdminUser()

	w := f.do(t, http.MethodPost, "/transactions/add/drafts", `{"email":"ada@bank.test"}`, &admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	view := testutil.DecodeJSON[model.DraftView](t, w)
	id := view.Draft.ID

	w = f.do(t, http.MethodPatch, "/transactions/add/drafts/"+id,
		`{"amount":"1250","type":"ach_debit","description":"Payment to Vendor"}`, &admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view = testutil.DecodeJSON[model.DraftView](t, w)
	assert.Equal(t, "18999.75", view.Preview.ProjectedBalance.String())

	w = f.do(t, http.MethodGet, "/transactions/add/drafts", "", &admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, testutil.DecodeJSON[[]model.Draft](t, w), 1)

	w = f.do(t, http.MethodPost, "/transactions/add/drafts/"+id+"/submit", "", &admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "-1250.00", f.bank.Created[0].Amount)

	w = f.do(t, http.MethodPost, "/transactions/add/drafts/"+id+"/submit", "", &admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_LoginFlow(t *testing.T) {
	f := setupRouter(t)
	f.bank.WithLoginToken(testutil.NewTestSession(t, testutil.AdminUser()).Token)

	w := f.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin@bank.test","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/users/manage", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

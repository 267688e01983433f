// Package bankapi is the JSON/HTTP client for the remote banking REST API that owns users,
// balances and transactions.
package bankapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
)

// API is the set of bank API operations the services depend on.
// Client implements it; tests use testutil.MockBankAPI.
type API interface {
	WithToken(token string) API
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, req RegisterUserRequest) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*model.User, error)
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*model.Transaction, error)
	ListTransactions(ctx context.Context, userID string, page, limit int) (*model.TransactionPage, error)
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, req UpdateTransactionRequest) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

var _ API = (*Client)(nil)

// Error is a non-2xx response from the bank API. Message carries the API's own explanation
// when it sent one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bank api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("bank api: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the bank API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// MessageOf returns the bank API's message for err, or fallback when it gave none.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Client talks JSON to a fixed base URL. The zero token means unauthenticated calls;
// WithToken returns a copy that sends "Authorization: Bearer <token>".
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	log        zerolog.Logger
}

// NewClient creates a client for baseURL (e.g. "http://chase-bank-api.vercel.app/api").
// A nil httpClient uses a default http.Client.
func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log.With().Str("component", "bankapi").Logger(),
	}
}

// WithToken returns a copy of the client that authenticates as the holder of token.
func (c *Client) WithToken(token string) API {
	clone := *c
	clone.token = token
	return &clone
}

// Login exchanges credentials for a bearer token and the user's profile.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &env); err != nil {
		return nil, err
	}
	user := env.user()
	if env.Token == "" || user == nil {
		return nil, fmt.Errorf("bank api: login response missing token or user")
	}
	return &LoginResult{Token: env.Token, User: *user}, nil
}

// Register creates a user account.
func (c *Client) Register(ctx context.Context, req RegisterUserRequest) (*model.User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &env); err != nil {
		return nil, err
	}
	return env.user(), nil
}

// ListUsers returns every user account.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Status != "" && env.Status != "success" {
		return nil, &Error{StatusCode: http.StatusOK, Message: "Failed to fetch users."}
	}
	if env.Data.Users == nil {
		return []model.User{}, nil
	}
	return env.Data.Users, nil
}

// GetUser fetches a user by id.
func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return nil, err
	}
	return requireUser(env.user())
}

// GetUserByEmail fetches a user, and with it the current balance, by email address.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/users/email/"+url.PathEscape(email), nil, nil, &env); err != nil {
		return nil, err
	}
	return requireUser(env.user())
}

// UpdateUser patches a user. Only non-nil fields are sent.
func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*model.User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), nil, req, &env); err != nil {
		return nil, err
	}
	return env.user(), nil
}

// CreateTransaction records a transaction. The amount must already carry its sign.
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*model.Transaction, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, req, &env); err != nil {
		return nil, err
	}
	if env.Data.Transaction == nil {
		return nil, fmt.Errorf("bank api: create transaction response missing transaction")
	}
	return env.Data.Transaction, nil
}

// ListTransactions returns one page of a user's transactions.
func (c *Client) ListTransactions(ctx context.Context, userID string, page, limit int) (*model.TransactionPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var env envelope
	if err := c.do(ctx, http.MethodGet, "/transactions/"+url.PathEscape(userID), query, nil, &env); err != nil {
		return nil, err
	}

	result := &model.TransactionPage{
		Transactions: env.Data.Transactions,
		Pagination:   model.Pagination{Page: page, Limit: limit, Total: len(env.Data.Transactions)},
	}
	if result.Transactions == nil {
		result.Transactions = []model.Transaction{}
	}
	switch {
	case env.Data.Pagination != nil:
		result.Pagination = *env.Data.Pagination
	case env.Pagination != nil:
		result.Pagination = *env.Pagination
	}
	return result, nil
}

// GetTransaction fetches a single transaction.
func (c *Client) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/transactions/getTransactionById/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return nil, err
	}
	if env.Data.Transaction == nil {
		return nil, &Error{StatusCode: http.StatusNotFound, Message: "transaction not found"}
	}
	return env.Data.Transaction, nil
}

// UpdateTransaction patches a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id string, req UpdateTransactionRequest) (*model.Transaction, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPatch, "/transactions/"+url.PathEscape(id), nil, req, &env); err != nil {
		return nil, err
	}
	return env.Data.Transaction, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil, nil)
}

// do executes a request against the bank API. A nil body sends no payload; a nil out discards
// the response body. Non-2xx responses are returned as *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("bank api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bank api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("bank api: read response: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("bank api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var env envelope
		if json.Unmarshal(data, &env) == nil {
			apiErr.Message = env.Message
			if apiErr.Message == "" {
				apiErr.Message = env.Error
			}
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("bank api: decode response: %w", err)
	}
	return nil
}

func (e *envelope) user() *model.User {
	if e.Data.User != nil {
		return e.Data.User
	}
	return e.User
}

func requireUser(u *model.User) (*model.User, error) {
	if u == nil {
		return nil, &Error{StatusCode: http.StatusNotFound, Message: "user not found"}
	}
	return u, nil
}

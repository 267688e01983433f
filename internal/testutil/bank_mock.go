package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Banking-Admin-Backend/internal/bankapi"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
)

// MockBankAPI is an in-memory implementation of bankapi.API for testing.
// It keeps users and transactions in maps and records every call.
type MockBankAPI struct {
	mu sync.Mutex

	// Users and Transactions are keyed by id.
	Users        map[string]model.User
	Transactions map[string]model.Transaction

	// LoginToken is returned by a successful Login. Login succeeds for any user whose email
	// matches the username and whose password is Password.
	LoginToken string
	Password   string

	// MockError is returned from every call when set; MethodErrors overrides it per method name.
	MockError    error
	MethodErrors map[string]error

	// BeforeEmailLookup, when set, runs before GetUserByEmail reads its result.
	BeforeEmailLookup func(email string)

	// Recorded requests.
	Calls              []string
	Tokens             []string
	Registered         []bankapi.RegisterUserRequest
	UserPatches        []bankapi.UpdateUserRequest
	Created            []bankapi.CreateTransactionRequest
	TransactionPatches []bankapi.UpdateTransactionRequest

	nextID int
}

var _ bankapi.API = (*MockBankAPI)(nil)

// NewMockBankAPI creates an empty mock bank.
func NewMockBankAPI() *MockBankAPI {
	return &MockBankAPI{
		Users:        map[string]model.User{},
		Transactions: map[string]model.Transaction{},
		MethodErrors: map[string]error{},
		Password:     "password123",
	}
}

// WithUser adds a user account.
func (m *MockBankAPI) WithUser(u model.User) *MockBankAPI {
	m.Users[u.ID.String()] = u
	return m
}

// WithTransaction adds a recorded transaction.
func (m *MockBankAPI) WithTransaction(tx model.Transaction) *MockBankAPI {
	m.Transactions[tx.ID.String()] = tx
	return m
}

// WithError configures the mock to fail every call with err.
func (m *MockBankAPI) WithError(err error) *MockBankAPI {
	m.MockError = err
	return m
}

// WithMethodError configures a single method to fail with err.
func (m *MockBankAPI) WithMethodError(method string, err error) *MockBankAPI {
	m.MethodErrors[method] = err
	return m
}

// WithLoginToken sets the token returned by Login.
func (m *MockBankAPI) WithLoginToken(token string) *MockBankAPI {
	m.LoginToken = token
	return m
}

// CallCount returns how often method was called.
func (m *MockBankAPI) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == method {
			n++
		}
	}
	return n
}

// NotFound is the error the mock returns for unknown ids.
func NotFound(msg string) error {
	return &bankapi.Error{StatusCode: http.StatusNotFound, Message: msg}
}

func (m *MockBankAPI) call(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, method)
	if err, ok := m.MethodErrors[method]; ok {
		return err
	}
	return m.MockError
}

func (m *MockBankAPI) newID(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

// WithToken records the token and returns the same mock.
func (m *MockBankAPI) WithToken(token string) bankapi.API {
	m.mu.Lock()
	m.Tokens = append(m.Tokens, token)
	m.mu.Unlock()
	return m
}

func (m *MockBankAPI) Login(_ context.Context, username, password string) (*bankapi.LoginResult, error) {
	if err := m.call("Login"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Email == username && password == m.Password {
			return &bankapi.LoginResult{Token: m.LoginToken, User: u}, nil
		}
	}
	return nil, &bankapi.Error{StatusCode: http.StatusUnauthorized, Message: "Incorrect email or password"}
}

func (m *MockBankAPI) Register(_ context.Context, req bankapi.RegisterUserRequest) (*model.User, error) {
	if err := m.call("Register"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Registered = append(m.Registered, req)
	u := model.User{
		ID:              model.ID(m.newID("u")),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		AccountName:     req.AccountName,
		AccountNumber:   req.AccountNumber,
		AccountType:     req.AccountType,
		Role:            req.Role,
		Balance:         req.Balance,
		AvailableCredit: req.AvailableCredit,
	}
	m.Users[u.ID.String()] = u
	return &u, nil
}

func (m *MockBankAPI) ListUsers(_ context.Context) ([]model.User, error) {
	if err := m.call("ListUsers"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]model.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MockBankAPI) GetUser(_ context.Context, id string) (*model.User, error) {
	if err := m.call("GetUser"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return nil, NotFound("user not found")
	}
	return &u, nil
}

func (m *MockBankAPI) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if err := m.call("GetUserByEmail"); err != nil {
		return nil, err
	}
	if m.BeforeEmailLookup != nil {
		m.BeforeEmailLookup(email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, NotFound("No user with that email")
}

func (m *MockBankAPI) UpdateUser(_ context.Context, id string, req bankapi.UpdateUserRequest) (*model.User, error) {
	if err := m.call("UpdateUser"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return nil, NotFound("user not found")
	}
	m.UserPatches = append(m.UserPatches, req)
	setString(&u.Name, req.Name)
	setString(&u.Email, req.Email)
	setString(&u.Phone, req.Phone)
	setString(&u.Address, req.Address)
	setString(&u.AccountName, req.AccountName)
	setString(&u.AccountType, req.AccountType)
	setString(&u.AccountNumber, req.AccountNumber)
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Balance != nil {
		u.Balance = *req.Balance
	}
	if req.AvailableCredit != nil {
		u.AvailableCredit = *req.AvailableCredit
	}
	m.Users[id] = u
	return &u, nil
}

func (m *MockBankAPI) CreateTransaction(_ context.Context, req bankapi.CreateTransactionRequest) (*model.Transaction, error) {
	if err := m.call("CreateTransaction"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, req)

	var owner *model.User
	for id := range m.Users {
		if u := m.Users[id]; u.Email == req.Email {
			owner = &u
			break
		}
	}
	if owner == nil {
		return nil, NotFound("No user with that email")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, &bankapi.Error{StatusCode: http.StatusBadRequest, Message: "invalid amount"}
	}
	tx := model.Transaction{
		ID:          model.ID(m.newID("t")),
		UserID:      owner.ID,
		Description: req.Description,
		Amount:      amount,
		Type:        req.Type,
		Date:        req.Date,
		IsReceiving: req.IsReceiving,
	}
	if req.IsPending != nil {
		tx.IsPending = *req.IsPending
	}
	m.Transactions[tx.ID.String()] = tx
	return &tx, nil
}

func (m *MockBankAPI) ListTransactions(_ context.Context, userID string, page, limit int) (*model.TransactionPage, error) {
	if err := m.call("ListTransactions"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	all := []model.Transaction{}
	for _, tx := range m.Transactions {
		if tx.UserID.String() == userID {
			all = append(all, tx)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	pages := (len(all) + limit - 1) / limit

	return &model.TransactionPage{
		Transactions: all[start:end],
		Pagination:   model.Pagination{Page: page, Limit: limit, Total: len(all), Pages: pages},
	}, nil
}

func (m *MockBankAPI) GetTransaction(_ context.Context, id string) (*model.Transaction, error) {
	if err := m.call("GetTransaction"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.Transactions[id]
	if !ok {
		return nil, NotFound("transaction not found")
	}
	return &tx, nil
}

func (m *MockBankAPI) UpdateTransaction(_ context.Context, id string, req bankapi.UpdateTransactionRequest) (*model.Transaction, error) {
	if err := m.call("UpdateTransaction"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.Transactions[id]
	if !ok {
		return nil, NotFound("transaction not found")
	}
	m.TransactionPatches = append(m.TransactionPatches, req)
	setString(&tx.Description, req.Description)
	setString(&tx.Type, req.Type)
	setString(&tx.Date, req.Date)
	if req.Amount != nil {
		tx.Amount = decimal.RequireFromString(*req.Amount)
	}
	m.Transactions[id] = tx
	return &tx, nil
}

func (m *MockBankAPI) DeleteTransaction(_ context.Context, id string) error {
	if err := m.call("DeleteTransaction"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Transactions[id]; !ok {
		return NotFound("transaction not found")
	}
	delete(m.Transactions, id)
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

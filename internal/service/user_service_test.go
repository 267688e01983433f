package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/apperrors"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
	"github.com/ndewijer/Banking-Admin-Backend/internal/testutil"
)

func usersBank() *testutil.MockBankAPI {
	return testutil.NewMockBankAPI().
		WithUser(testutil.NewUser("u-1", "ada@bank.test").WithName("Ada Lovelace").WithBalance("20249.75").Build()).
		WithUser(testutil.NewUser("u-2", "grace@bank.test").WithName("Grace Hopper").Admin().Build()).
		WithUser(testutil.NewUser("u-3", "alan@example.org").WithName("Alan Turing").Build())
}

func TestUserService_ListUsers(t *testing.T) {
	tests := []struct {
		name   string
		filter request.UserFilter
		want   []string
	}{
		{"all", request.UserFilter{Role: "All"}, []string{"u-1", "u-2", "u-3"}},
		{"admins", request.UserFilter{Role: "Admin"}, []string{"u-2"}},
		{"users", request.UserFilter{Role: "User"}, []string{"u-1", "u-3"}},
		{"search by name is case-insensitive", request.UserFilter{Role: "All", Query: "ADA"}, []string{"u-1"}},
		{"search by email", request.UserFilter{Role: "All", Query: "bank.test"}, []string{"u-1", "u-2"}},
		{"role and search combine", request.UserFilter{Role: "User", Query: "bank.test"}, []string{"u-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewTestUserService(t, usersBank())

			users, err := svc.ListUsers(context.Background(), tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(users))
			for _, u := range users {
				ids = append(ids, u.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("formats balance and role", func(t *testing.T) {
		svc := testutil.NewTestUserService(t, usersBank())
		users, err := svc.ListUsers(context.Background(), request.UserFilter{Query: "ada"})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "$20,249.75", users[0].Balance)
		assert.Equal(t, "User", users[0].Role)
	})
}

func TestUserService_RegisterUser(t *testing.T) {
	bank := usersBank()
	svc := testutil.NewTestUserService(t, bank)

	user, err := svc.RegisterUser(context.Background(), request.CreateUserRequest{
		Name:          " Edsger ",
		Email:         "edsger@bank.test",
		Password:      "structured",
		Phone:         "555",
		Address:       "Austin",
		AccountName:   "Edsger D",
		AccountNumber: "42",
		AccountType:   "savings",
		Role:          "Admin",
		Balance:       "100.5",
	})
	require.NoError(t, err)

	assert.True(t, user.Role)
	require.Len(t, bank.Registered, 1)
	assert.Equal(t, "Edsger", bank.Registered[0].Name)
	assert.Equal(t, "100.5", bank.Registered[0].Balance.String())
	assert.True(t, bank.Registered[0].AvailableCredit.IsZero())
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Run("empty password is not sent", func(t *testing.T) {
		bank := usersBank()
		svc := testutil.NewTestUserService(t, bank)

		_, err := svc.UpdateUser(context.Background(), "u-1", request.UpdateUserRequest{
			Name:     ptr("Ada King"),
			Password: ptr(""),
			Role:     ptr("Admin"),
		})
		require.NoError(t, err)

		require.Len(t, bank.UserPatches, 1)
		assert.Nil(t, bank.UserPatches[0].Password)
		require.NotNil(t, bank.UserPatches[0].Role)
		assert.True(t, *bank.UserPatches[0].Role)
		assert.Equal(t, "Ada King", bank.Users["u-1"].Name)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := testutil.NewTestUserService(t, usersBank())
		_, err := svc.UpdateUser(context.Background(), "u-404", request.UpdateUserRequest{})
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUserService_GetUserDetail(t *testing.T) {
	bank := usersBank().
		WithTransaction(model.Transaction{ID: "t-1", UserID: "u-1", Amount: testutil.Dec("3500"), Type: "refund", Date: "2025-04-01"}).
		WithTransaction(model.Transaction{ID: "t-2", UserID: "u-1", Amount: testutil.Dec("-1250"), Type: "ach_debit", Date: "2025-04-02", IsPending: true}).
		WithTransaction(model.Transaction{ID: "t-3", UserID: "u-1", Amount: testutil.Dec("-40"), Type: "fee", Date: "2025-04-03"}).
		WithTransaction(model.Transaction{ID: "t-4", UserID: "u-1", Amount: testutil.Dec("-5"), Type: "mystery", Date: "2025-04-04"}).
		WithTransaction(model.Transaction{ID: "t-5", UserID: "u-2", Amount: testutil.Dec("1"), Type: "deposit"})
	svc := testutil.NewTestUserService(t, bank)

	detail, err := svc.GetUserDetail(context.Background(), "u-1", 1, 10)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", detail.User.Name)
	assert.Equal(t, "$20,249.75", detail.PresentBalance)
	assert.Equal(t, "$18,999.75", detail.AvailableBalance, "pending debits are held back")
	assert.Equal(t, 4, detail.Pagination.Total)

	labels := map[string]string{}
	for _, row := range detail.Transactions {
		labels[row.ID] = row.Amount
	}
	assert.Equal(t, map[string]string{
		"t-1": "+$3,500.00",
		"t-2": "-$1,250.00",
		"t-3": "-$40.00",
		"t-4": "-$5.00",
	}, labels)

	t.Run("legacy rows follow the receiving direction", func(t *testing.T) {
		received, sent := true, false
		bank := usersBank().
			WithTransaction(model.Transaction{ID: "w-1", UserID: "u-1", Amount: testutil.Dec("500"), Type: "wire", Date: "2025-04-05"}).
			WithTransaction(model.Transaction{ID: "w-2", UserID: "u-1", Amount: testutil.Dec("-75"), Type: "ach", Date: "2025-04-06"}).
			WithTransaction(model.Transaction{ID: "w-3", UserID: "u-1", Amount: testutil.Dec("20"), Type: "fee", Date: "2025-04-07", IsReceiving: &received}).
			WithTransaction(model.Transaction{ID: "w-4", UserID: "u-1", Amount: testutil.Dec("10"), Type: "credit", Date: "2025-04-08", IsReceiving: &sent})
		detail, err := testutil.NewTestUserService(t, bank).GetUserDetail(context.Background(), "u-1", 1, 10)
		require.NoError(t, err)

		labels := map[string]string{}
		for _, row := range detail.Transactions {
			labels[row.ID] = row.Amount
		}
		assert.Equal(t, map[string]string{
			"w-1": "+$500.00",
			"w-2": "-$75.00",
			"w-3": "+$20.00",
			"w-4": "-$10.00",
		}, labels)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetUserDetail(context.Background(), "u-404", 1, 10)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

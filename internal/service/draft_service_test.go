package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/apperrors"
	"github.com/ndewijer/Banking-Admin-Backend/internal/ledger"
	"github.com/ndewijer/Banking-Admin-Backend/internal/testutil"
	"github.com/ndewijer/Banking-Admin-Backend/internal/validation"
)

const owner = "admin-1"

func ptr[T any](v T) *T { return &v }

func newBank() *testutil.MockBankAPI {
	return testutil.NewMockBankAPI().
		WithUser(testutil.NewUser("u-1", "ada@bank.test").WithBalance("20249.75").Build()).
		WithUser(testutil.NewUser("u-2", "bob@bank.test").WithBalance("500.00").Build())
}

func TestDraftService_CreateLooksUpBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDraftService(t, db, newBank())

	view, err := svc.Create(context.Background(), owner, request.CreateDraftRequest{Email: "ada@bank.test"})
	require.NoError(t, err)

	assert.Equal(t, "v2", view.Draft.TaxonomyVersion)
	assert.True(t, view.Draft.IsReceiving)
	require.NotNil(t, view.Preview.CurrentBalance)
	assert.Equal(t, "20249.75", view.Preview.CurrentBalance.StringFixed(2))
	assert.Nil(t, view.Preview.SignedDelta)
	assert.Empty(t, view.LookupError)
}

func TestDraftService_PreviewScenarios(t *testing.T) {
	tests := []struct {
		name      string
		typ       string
		pending   bool
		projected string
		delta     string
	}{
		{"vendor payment is a credit", "ach_vendor_payment", false, "$21,499.75", "1250.00"},
		{"ach debit", "ach_debit", false, "$18,999.75", "-1250.00"},
		{"pending debit does not move the balance", "ach_debit", true, "$20,249.75", "0.00"},
		{"neutral transfer does not move the balance", "account_transfer", false, "$20,249.75", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			svc := testutil.NewTestDraftService(t, db, newBank())
			ctx := context.Background()

			created, err := svc.Create(ctx, owner, request.CreateDraftRequest{Email: "ada@bank.test"})
			require.NoError(t, err)

			view, err := svc.Update(ctx, owner, created.Draft.ID, request.UpdateDraftRequest{
				Amount:    ptr(testutil.Dec("1250.00")),
				Type:      ptr(tt.typ),
				IsPending: ptr(tt.pending),
			})
			require.NoError(t, err)

			require.NotNil(t, view.Preview.SignedDelta)
			require.NotNil(t, view.Preview.ProjectedBalance)
			assert.Equal(t, tt.delta, view.Preview.SignedDelta.StringFixed(2))
			assert.Equal(t, tt.projected, ledger.FormatCurrency(*view.Preview.ProjectedBalance))
		})
	}
}

func TestDraftService_EmailChangeInvalidatesBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDraftService(t, db, newBank())
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, request.CreateDraftRequest{Email: "ada@bank.test"})
	require.NoError(t, err)
	gen := created.Draft.Generation

	view, err := svc.Update(ctx, owner, created.Draft.ID, request.UpdateDraftRequest{Email: ptr("bob@bank.test")})
	require.NoError(t, err)

	assert.Equal(t, gen+1, view.Draft.Generation)
	require.NotNil(t, view.Preview.CurrentBalance)
	assert.Equal(t, "500.00", view.Preview.CurrentBalance.StringFixed(2))
}

func TestDraftService_StaleLookupIsDiscarded(t *testing.T) {
	db := testutil.SetupTestDB(t)
	bank := newBank()
	svc := testutil.NewTestDraftService(t, db, bank)
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, request.CreateDraftRequest{})
	require.NoError(t, err)
	id := created.Draft.ID

	// While the lookup for ada is in flight, the form switches to bob.
	switched := false
	bank.BeforeEmailLookup = func(email string) {
		if email == "ada@bank.test" && !switched {
			switched = true
			_, err := svc.Update(ctx, owner, id, request.UpdateDraftRequest{Email: ptr("bob@bank.test")})
			require.NoError(t, err)
		}
	}

	view, err := svc.Update(ctx, owner, id, request.UpdateDraftRequest{Email: ptr("ada@bank.test")})
	require.NoError(t, err)

	assert.Equal(t, "bob@bank.test", view.Draft.Email)
	require.NotNil(t, view.Draft.CurrentBalance)
	assert.Equal(t, "500.00", view.Draft.CurrentBalance.StringFixed(2), "ada's late balance must not overwrite bob's")
}

func TestDraftService_LookupFailureKeepsDraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	bank := newBank()
	svc := testutil.NewTestDraftService(t, db, bank)
	ctx := context.Background()

	view, err := svc.Create(ctx, owner, request.CreateDraftRequest{Email: "nobody@bank.test"})
	require.NoError(t, err)
	assert.Equal(t, apperrors.ErrUserNotFound.Error(), view.LookupError)
	assert.Nil(t, view.Preview.CurrentBalance)

	t.Run("retried on next read", func(t *testing.T) {
		bank.WithUser(testutil.NewUser("u-3", "nobody@bank.test").WithBalance("1.00").Build())

		got, err := svc.Get(ctx, owner, view.Draft.ID)
		require.NoError(t, err)
		assert.Empty(t, got.LookupError)
		require.NotNil(t, got.Preview.CurrentBalance)
		assert.Equal(t, "1.00", got.Preview.CurrentBalance.StringFixed(2))
	})
}

func TestDraftService_UpdateRejectsInvalidValues(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDraftService(t, db, newBank())
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, request.CreateDraftRequest{})
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner, created.Draft.ID, request.UpdateDraftRequest{Type: ptr("debit")})
	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "type")

	got, err := svc.Get(ctx, owner, created.Draft.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Draft.Type)
}

func TestDraftService_Submit(t *testing.T) {
	t.Run("current taxonomy sends signed amount and isPending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		bank := newBank()
		svc := testutil.NewTestDraftService(t, db, bank)
		ctx := context.Background()

		d := testutil.NewDraft(owner).WithEmail("ada@bank.test").WithAmount("1250").
			WithType("ach_debit").WithDescription("Payment to Vendor").Pending().Build(t, db)

		res, err := svc.Submit(ctx, owner, d.ID)
		require.NoError(t, err)

		assert.Equal(t, "-1250.00", res.SubmittedAmount)
		require.Len(t, bank.Created, 1)
		sent := bank.Created[0]
		assert.Equal(t, "-1250.00", sent.Amount)
		require.NotNil(t, sent.IsPending)
		assert.True(t, *sent.IsPending)
		assert.Nil(t, sent.IsReceiving)
		assert.Equal(t, "u-1", res.Transaction.UserID.String())

		_, err = svc.Submit(ctx, owner, d.ID)
		assert.ErrorIs(t, err, apperrors.ErrDraftNotFound, "a draft is consumed once")
	})

	t.Run("neutral types are sent positive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		bank := newBank()
		svc := testutil.NewTestDraftService(t, db, bank)

		d := testutil.NewDraft(owner).Complete().WithType("adjustment_or_reversal").WithAmount("80.5").Build(t, db)

		res, err := svc.Submit(context.Background(), owner, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "80.50", res.SubmittedAmount)
	})

	t.Run("legacy taxonomy follows the receiving flag", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		bank := newBank()
		svc := testutil.NewTestDraftService(t, db, bank)

		d := testutil.NewDraft(owner).Legacy().Complete().WithType("credit").Sending().Build(t, db)

		res, err := svc.Submit(context.Background(), owner, d.ID)
		require.NoError(t, err)
		assert.Equal(t, "-100.00", res.SubmittedAmount)
		require.Len(t, bank.Created, 1)
		require.NotNil(t, bank.Created[0].IsReceiving)
		assert.False(t, *bank.Created[0].IsReceiving)
		assert.Nil(t, bank.Created[0].IsPending)
	})

	t.Run("incomplete draft is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		bank := newBank()
		svc := testutil.NewTestDraftService(t, db, bank)

		d := testutil.NewDraft(owner).Complete().WithDescription("Rent").Build(t, db)

		_, err := svc.Submit(context.Background(), owner, d.ID)
		var vErr *validation.Error
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "description")
		assert.Equal(t, 0, bank.CallCount("CreateTransaction"))
	})

	t.Run("bank failure keeps the draft", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		bank := newBank().WithMethodError("CreateTransaction", errors.New("connection refused"))
		svc := testutil.NewTestDraftService(t, db, bank)
		ctx := context.Background()

		d := testutil.NewDraft(owner).Complete().Build(t, db)

		_, err := svc.Submit(ctx, owner, d.ID)
		assert.ErrorIs(t, err, apperrors.ErrFailedToCreateTransaction)

		_, err = svc.Get(ctx, owner, d.ID)
		assert.NoError(t, err)
	})
}

func TestDraftService_Ownership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDraftService(t, db, newBank())
	ctx := context.Background()

	d := testutil.NewDraft("someone-else").Complete().Build(t, db)

	_, err := svc.Get(ctx, owner, d.ID)
	assert.ErrorIs(t, err, apperrors.ErrDraftForbidden)

	err = svc.Discard(ctx, owner, d.ID)
	assert.ErrorIs(t, err, apperrors.ErrDraftForbidden)
}

func TestDraftService_Discard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	bank := newBank()
	svc := testutil.NewTestDraftService(t, db, bank)
	ctx := context.Background()

	d := testutil.NewDraft(owner).Complete().Build(t, db)

	require.NoError(t, svc.Discard(ctx, owner, d.ID))

	_, err := svc.Submit(ctx, owner, d.ID)
	assert.ErrorIs(t, err, apperrors.ErrDraftNotFound)
	assert.Equal(t, 0, bank.CallCount("CreateTransaction"))
}

func TestDraftService_Expiry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDraftService(t, db, newBank())
	ctx := context.Background()
	now := time.Now().UTC()

	stale := testutil.NewDraft(owner).UpdatedAt(now.Add(-2 * testutil.DraftTTL)).Build(t, db)
	old := testutil.NewDraft(owner).UpdatedAt(now.Add(-3 * testutil.DraftTTL)).Build(t, db)
	fresh := testutil.NewDraft(owner).Build(t, db)

	_, err := svc.Get(ctx, owner, stale.ID)
	assert.ErrorIs(t, err, apperrors.ErrDraftNotFound)

	drafts, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, fresh.ID, drafts[0].ID)

	n, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "only %s should remain to purge", old.ID)
}

func TestDraftService_Quote(t *testing.T) {
	svc := testutil.NewTestDraftService(t, testutil.SetupTestDB(t), newBank())

	p, err := svc.Quote(request.PreviewRequest{
		Type:           "card",
		Amount:         testutil.Dec("345.255"),
		CurrentBalance: testutil.DecPtr("1000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "debit", p.Class)
	assert.Equal(t, "654.745", p.ProjectedBalance.String())

	_, err = svc.Quote(request.PreviewRequest{Type: "card", Amount: testutil.Dec("0")})
	assert.ErrorIs(t, err, ledger.ErrNonPositiveAmount)

	_, err = svc.Quote(request.PreviewRequest{Type: "debit", Amount: testutil.Dec("1")})
	assert.ErrorIs(t, err, ledger.ErrUnknownTransactionType)
}

package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
	"github.com/ndewijer/Banking-Admin-Backend/internal/repository"
)

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

// Dec parses a decimal literal and panics on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DecPtr is Dec returning a pointer.
func DecPtr(s string) *decimal.Decimal {
	d := Dec(s)
	return &d
}

// DraftBuilder provides a fluent interface for creating test drafts.
//
// Example usage:
//
//	draft := testutil.NewDraft("admin-1").
//	    WithEmail("ada@bank.test").
//	    WithAmount("1250.00").
//	    WithType("ach_debit").
//	    Build(t, db)
type DraftBuilder struct {
	draft model.Draft
}

// NewDraft creates a DraftBuilder for a current-taxonomy draft owned by ownerID.
func NewDraft(ownerID string) *DraftBuilder {
	now := time.Now().UTC()
	return &DraftBuilder{draft: model.Draft{
		ID:              MakeID(),
		OwnerID:         ownerID,
		TaxonomyVersion: "v2",
		IsReceiving:     true,
		Date:            now.Format("2006-01-02"),
		CreatedAt:       now,
		UpdatedAt:       now,
	}}
}

// Legacy switches the draft to the legacy taxonomy.
func (b *DraftBuilder) Legacy() *DraftBuilder {
	b.draft.TaxonomyVersion = "v1"
	return b
}

// WithEmail sets the target account email.
func (b *DraftBuilder) WithEmail(email string) *DraftBuilder {
	b.draft.Email = email
	return b
}

// WithAmount sets the unsigned amount.
func (b *DraftBuilder) WithAmount(amount string) *DraftBuilder {
	b.draft.Amount = DecPtr(amount)
	return b
}

// WithType sets the transaction type tag.
func (b *DraftBuilder) WithType(t string) *DraftBuilder {
	b.draft.Type = t
	return b
}

// WithDescription sets the description.
func (b *DraftBuilder) WithDescription(desc string) *DraftBuilder {
	b.draft.Description = desc
	return b
}

// WithBalance sets the cached current balance.
func (b *DraftBuilder) WithBalance(balance string) *DraftBuilder {
	b.draft.CurrentBalance = DecPtr(balance)
	return b
}

// Pending marks the draft as pending.
func (b *DraftBuilder) Pending() *DraftBuilder {
	b.draft.IsPending = true
	return b
}

// Sending clears the legacy receiving flag.
func (b *DraftBuilder) Sending() *DraftBuilder {
	b.draft.IsReceiving = false
	return b
}

// UpdatedAt backdates the draft.
func (b *DraftBuilder) UpdatedAt(t time.Time) *DraftBuilder {
	b.draft.UpdatedAt = t.UTC()
	return b
}

// Complete fills every field a submission requires.
func (b *DraftBuilder) Complete() *DraftBuilder {
	if b.draft.Email == "" {
		b.draft.Email = "ada@bank.test"
	}
	if b.draft.Amount == nil {
		b.draft.Amount = DecPtr("100.00")
	}
	if b.draft.Type == "" {
		b.draft.Type = "deposit"
		if b.draft.TaxonomyVersion == "v1" {
			b.draft.Type = "credit"
		}
	}
	if b.draft.Description == "" {
		b.draft.Description = "Test transaction"
	}
	return b
}

// Build inserts the draft and returns it.
func (b *DraftBuilder) Build(t *testing.T, db *sql.DB) model.Draft {
	t.Helper()
	d := b.draft
	if err := repository.NewDraftRepository(db).Insert(context.Background(), &d); err != nil {
		t.Fatalf("Failed to create draft: %v", err)
	}
	return d
}

// UserBuilder provides a fluent interface for bank API users held by MockBankAPI.
type UserBuilder struct {
	user model.User
}

// NewUser creates a UserBuilder for a non-admin account.
func NewUser(id, email string) *UserBuilder {
	return &UserBuilder{user: model.User{
		ID:          model.ID(id),
		Name:        "User " + id,
		Email:       email,
		AccountType: "checking",
	}}
}

// WithName sets the display name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

// WithBalance sets the balance.
func (b *UserBuilder) WithBalance(balance string) *UserBuilder {
	b.user.Balance = Dec(balance)
	return b
}

// WithAvailableCredit sets the available credit.
func (b *UserBuilder) WithAvailableCredit(credit string) *UserBuilder {
	b.user.AvailableCredit = Dec(credit)
	return b
}

// Admin sets the admin role flag.
func (b *UserBuilder) Admin() *UserBuilder {
	b.user.Role = true
	return b
}

// Build returns the user.
func (b *UserBuilder) Build() model.User {
	return b.user
}

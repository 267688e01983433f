package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Banking-Admin-Backend/internal/apperrors"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
)

// DraftRepository provides data access for the draft table.
// Drafts are the only state this service owns; the bank API holds everything else.
type DraftRepository struct {
	db *sql.DB
}

// NewDraftRepository creates a new DraftRepository with the provided database connection.
func NewDraftRepository(db *sql.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

const draftColumns = `
	id, owner_id, taxonomy_version, email, amount, type, is_pending, is_receiving,
	description, date, current_balance, generation, created_at, updated_at
`

// Insert stores a new draft. CreatedAt and UpdatedAt must be set by the caller.
func (r *DraftRepository) Insert(ctx context.Context, d *model.Draft) error {
	query := `INSERT INTO draft (` + draftColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.OwnerID,
		d.TaxonomyVersion,
		d.Email,
		nullDecimal(d.Amount),
		d.Type,
		d.IsPending,
		d.IsReceiving,
		d.Description,
		d.Date,
		nullDecimal(d.CurrentBalance),
		d.Generation,
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert draft: %w", err)
	}
	return nil
}

// Get retrieves a draft by id. Returns apperrors.ErrDraftNotFound when it does not exist.
func (r *DraftRepository) Get(ctx context.Context, id string) (*model.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM draft WHERE id = ?`

	d, err := scanDraft(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query draft: %w", err)
	}
	return d, nil
}

// ListByOwner returns the drafts owned by ownerID, most recently updated first.
func (r *DraftRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM draft WHERE owner_id = ? ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query draft table: %w", err)
	}
	defer rows.Close()

	drafts := []model.Draft{}
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft table results: %w", err)
		}
		drafts = append(drafts, *d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating draft table: %w", err)
	}
	return drafts, nil
}

// UpdateFields writes the user-editable fields of d. The email, cached balance and generation
// are owned by SetEmail and ApplyBalance and are left untouched.
func (r *DraftRepository) UpdateFields(ctx context.Context, d *model.Draft) error {
	query := `
		UPDATE draft
		SET amount = ?, type = ?, is_pending = ?, is_receiving = ?, description = ?, date = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		nullDecimal(d.Amount),
		d.Type,
		d.IsPending,
		d.IsReceiving,
		d.Description,
		d.Date,
		formatTime(d.UpdatedAt),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}
	return requireAffected(res)
}

// SetEmail changes the target account of a draft, drops its cached balance and bumps the
// generation. It returns the new generation, which the caller must present to ApplyBalance.
func (r *DraftRepository) SetEmail(ctx context.Context, id, email string, now time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		//nolint:errcheck // Rollback after commit is a no-op
		tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE draft
		SET email = ?, current_balance = NULL, generation = generation + 1, updated_at = ?
		WHERE id = ?
	`, email, formatTime(now), id)
	if err != nil {
		return 0, fmt.Errorf("failed to update draft email: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return 0, err
	}

	var generation int64
	if err := tx.QueryRowContext(ctx, `SELECT generation FROM draft WHERE id = ?`, id).Scan(&generation); err != nil {
		return 0, fmt.Errorf("failed to read draft generation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit draft email: %w", err)
	}
	return generation, nil
}

// ApplyBalance caches the looked-up balance, but only if the draft still exists and its
// generation is unchanged. It reports whether the balance was applied.
func (r *DraftRepository) ApplyBalance(ctx context.Context, id string, generation int64, balance decimal.Decimal, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE draft
		SET current_balance = ?, updated_at = ?
		WHERE id = ? AND generation = ?
	`, balance.String(), formatTime(now), id, generation)
	if err != nil {
		return false, fmt.Errorf("failed to apply draft balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// Delete removes a draft. Returns apperrors.ErrDraftNotFound when nothing was deleted, which
// makes consumption single-use.
func (r *DraftRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM draft WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return requireAffected(res)
}

// DeleteOlderThan purges drafts not updated since cutoff and returns how many were removed.
func (r *DraftRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM draft WHERE updated_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to purge drafts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner) (*model.Draft, error) {
	var (
		d                model.Draft
		amount, balance  sql.NullString
		created, updated string
	)
	err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.TaxonomyVersion,
		&d.Email,
		&amount,
		&d.Type,
		&d.IsPending,
		&d.IsReceiving,
		&d.Description,
		&d.Date,
		&balance,
		&d.Generation,
		&created,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	if d.Amount, err = scanDecimal(amount); err != nil {
		return nil, err
	}
	if d.CurrentBalance, err = scanDecimal(balance); err != nil {
		return nil, err
	}
	if d.CreatedAt, err = ParseTime(created); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = ParseTime(updated); err != nil {
		return nil, err
	}
	return &d, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrDraftNotFound
	}
	return nil
}

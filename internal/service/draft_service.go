package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/apperrors"
	"github.com/ndewijer/Banking-Admin-Backend/internal/bankapi"
	"github.com/ndewijer/Banking-Admin-Backend/internal/ledger"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
	"github.com/ndewijer/Banking-Admin-Backend/internal/repository"
	"github.com/ndewijer/Banking-Admin-Backend/internal/validation"
)

// DraftService owns the lifecycle of transaction drafts: creation, field edits with a live
// balance preview, single-use submission and expiry.
//
// A draft caches the target account's balance after the first successful email lookup. Changing
// the email clears the cache and bumps the draft's generation; a lookup result is only written
// back when the generation it was started for is still current.
type DraftService struct {
	repo *repository.DraftRepository
	bank bankapi.API
	ttl  time.Duration
	now  func() time.Time
	log  zerolog.Logger

	inflight sync.Map
}

// NewDraftService creates a new DraftService. Drafts not touched for ttl are treated as
// abandoned.
func NewDraftService(repo *repository.DraftRepository, bank bankapi.API, ttl time.Duration, log zerolog.Logger) *DraftService {
	return &DraftService{
		repo: repo,
		bank: bank,
		ttl:  ttl,
		now:  time.Now,
		log:  log.With().Str("component", "drafts").Logger(),
	}
}

// WithClock replaces the time source. Used by tests.
func (s *DraftService) WithClock(now func() time.Time) *DraftService {
	s.now = now
	return s
}

// Create opens an empty draft for ownerID. When an email is given, its balance is looked up
// immediately.
func (s *DraftService) Create(ctx context.Context, ownerID string, req request.CreateDraftRequest) (*model.DraftView, error) {
	v, err := ledger.ParseTaxonomyVersion(req.TaxonomyVersion)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	d := &model.Draft{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		TaxonomyVersion: v.String(),
		IsReceiving:     true,
		Date:            now.Format(validation.DateLayout),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Insert(ctx, d); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveDraft, err)
	}

	s.log.Debug().Str("draft_id", d.ID).Str("version", d.TaxonomyVersion).Msg("draft created")

	if email := strings.TrimSpace(req.Email); email != "" {
		return s.changeEmail(ctx, d, email)
	}
	return s.view(ctx, d)
}

// List returns the drafts ownerID still has open.
func (s *DraftService) List(ctx context.Context, ownerID string) ([]model.Draft, error) {
	drafts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveDraft, err)
	}

	live := make([]model.Draft, 0, len(drafts))
	for _, d := range drafts {
		if !s.expired(&d) {
			live = append(live, d)
		}
	}
	return live, nil
}

// Get returns a draft with its preview. A draft whose balance lookup previously failed is
// looked up again.
func (s *DraftService) Get(ctx context.Context, ownerID, id string) (*model.DraftView, error) {
	d, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, d)
}

// Preview returns only the balance preview of a draft.
func (s *DraftService) Preview(ctx context.Context, ownerID, id string) (*model.BalancePreview, error) {
	v, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return &v.Preview, nil
}

// Update applies a field patch to a draft and returns the recomputed preview.
// Invalid values are rejected with a *validation.Error and leave the draft unchanged.
func (s *DraftService) Update(ctx context.Context, ownerID, id string, req request.UpdateDraftRequest) (*model.DraftView, error) {
	d, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	v, err := ledger.ParseTaxonomyVersion(d.TaxonomyVersion)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateUpdateDraft(req, v); err != nil {
		return nil, err
	}

	if req.Amount != nil {
		amount := *req.Amount
		d.Amount = &amount
	}
	if req.Type != nil {
		d.Type = *req.Type
	}
	if req.IsPending != nil {
		d.IsPending = *req.IsPending
	}
	if req.IsReceiving != nil {
		d.IsReceiving = *req.IsReceiving
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Date != nil {
		d.Date = *req.Date
	}
	d.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateFields(ctx, d); err != nil {
		return nil, s.storeError(err, apperrors.ErrFailedToSaveDraft)
	}

	if req.Email != nil {
		if email := strings.TrimSpace(*req.Email); email != d.Email {
			return s.changeEmail(ctx, d, email)
		}
	}
	return s.view(ctx, d)
}

// Submit validates a draft, records it with the bank API using the signed amount of the
// draft's taxonomy rule and consumes the draft. The draft survives a failed submission.
func (s *DraftService) Submit(ctx context.Context, ownerID, id string) (*model.SubmissionResult, error) {
	if _, busy := s.inflight.LoadOrStore(id, struct{}{}); busy {
		return nil, apperrors.ErrDraftInFlight
	}
	defer s.inflight.Delete(id)

	d, err := s.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateDraftSubmission(d); err != nil {
		return nil, err
	}

	v, err := ledger.ParseTaxonomyVersion(d.TaxonomyVersion)
	if err != nil {
		return nil, err
	}
	rule, err := ledger.RuleFor(v)
	if err != nil {
		return nil, err
	}
	signed, err := rule.SubmissionAmount(ledger.TransactionType(d.Type), *d.Amount, flagsOf(d))
	if err != nil {
		return nil, err
	}

	payload := bankapi.CreateTransactionRequest{
		Email:       strings.TrimSpace(d.Email),
		Description: strings.TrimSpace(d.Description),
		Amount:      ledger.WireAmount(signed),
		Type:        d.Type,
		Date:        d.Date,
	}
	if v == ledger.TaxonomyLegacy {
		payload.IsReceiving = &d.IsReceiving
	} else {
		payload.IsPending = &d.IsPending
	}

	tx, err := scoped(ctx, s.bank).CreateTransaction(ctx, payload)
	if err != nil {
		s.log.Warn().Err(err).Str("draft_id", id).Msg("draft submission rejected by bank api")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToCreateTransaction, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil && !errors.Is(err, apperrors.ErrDraftNotFound) {
		s.log.Error().Err(err).Str("draft_id", id).Msg("transaction recorded but draft not deleted")
	}

	s.log.Info().
		Str("draft_id", id).
		Str("transaction_id", tx.ID.String()).
		Str("amount", payload.Amount).
		Msg("draft submitted")

	return &model.SubmissionResult{Transaction: *tx, SubmittedAmount: payload.Amount}, nil
}

// Discard deletes a draft without submitting it.
func (s *DraftService) Discard(ctx context.Context, ownerID, id string) error {
	if _, err := s.load(ctx, ownerID, id); err != nil {
		return err
	}
	return s.storeError(s.repo.Delete(ctx, id), apperrors.ErrFailedToSaveDraft)
}

// PurgeExpired deletes drafts not updated within the TTL and returns how many were removed.
func (s *DraftService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, s.now().Add(-s.ttl))
}

// Quote computes a preview without a stored draft.
func (s *DraftService) Quote(req request.PreviewRequest) (*model.BalancePreview, error) {
	v, err := ledger.ParseTaxonomyVersion(req.TaxonomyVersion)
	if err != nil {
		return nil, err
	}
	amount := req.Amount
	p, err := preview(&model.Draft{
		TaxonomyVersion: v.String(),
		Amount:          &amount,
		Type:            req.Type,
		IsPending:       req.IsPending,
		IsReceiving:     req.IsReceiving,
		CurrentBalance:  req.CurrentBalance,
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *DraftService) load(ctx context.Context, ownerID, id string) (*model.Draft, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(err, apperrors.ErrFailedToRetrieveDraft)
	}
	if d.OwnerID != ownerID {
		return nil, apperrors.ErrDraftForbidden
	}
	if s.expired(d) {
		//nolint:errcheck // the purge job retries
		s.repo.Delete(ctx, id)
		return nil, apperrors.ErrDraftNotFound
	}
	return d, nil
}

func (s *DraftService) expired(d *model.Draft) bool {
	return s.ttl > 0 && s.now().Sub(d.UpdatedAt) > s.ttl
}

// changeEmail retargets a draft and looks up the new account's balance.
func (s *DraftService) changeEmail(ctx context.Context, d *model.Draft, email string) (*model.DraftView, error) {
	now := s.now().UTC()
	generation, err := s.repo.SetEmail(ctx, d.ID, email, now)
	if err != nil {
		return nil, s.storeError(err, apperrors.ErrFailedToSaveDraft)
	}
	d.Email = email
	d.CurrentBalance = nil
	d.Generation = generation
	d.UpdatedAt = now
	return s.view(ctx, d)
}

// view builds the response for d, first fetching the balance when the draft targets an
// account whose balance is not cached yet.
func (s *DraftService) view(ctx context.Context, d *model.Draft) (*model.DraftView, error) {
	v := &model.DraftView{Draft: d}

	if d.Email != "" && d.CurrentBalance == nil {
		if err := s.lookup(ctx, v); err != nil {
			return nil, err
		}
	}

	p, err := preview(v.Draft)
	if err != nil {
		v.PreviewNote = err.Error()
	}
	v.Preview = p
	return v, nil
}

// lookup fetches the balance for the draft's email and stores it if the draft's generation is
// unchanged. Bank API failures are reported inline on the view.
func (s *DraftService) lookup(ctx context.Context, v *model.DraftView) error {
	d := v.Draft

	user, err := scoped(ctx, s.bank).GetUserByEmail(ctx, d.Email)
	if err != nil {
		v.LookupError = lookupMessage(err)
		s.log.Info().Err(err).Str("draft_id", d.ID).Msg("balance lookup failed")
		return nil
	}

	applied, err := s.repo.ApplyBalance(ctx, d.ID, d.Generation, user.Balance, s.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveDraft, err)
	}
	if applied {
		balance := user.Balance
		d.CurrentBalance = &balance
		return nil
	}

	s.log.Debug().Str("draft_id", d.ID).Int64("generation", d.Generation).Msg("discarding stale balance lookup")
	fresh, err := s.repo.Get(ctx, d.ID)
	if err != nil {
		return s.storeError(err, apperrors.ErrFailedToRetrieveDraft)
	}
	v.Draft = fresh
	return nil
}

func (s *DraftService) storeError(err, wrap error) error {
	if err == nil || errors.Is(err, apperrors.ErrDraftNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", wrap, err)
}

func lookupMessage(err error) string {
	if bankapi.IsNotFound(err) {
		return apperrors.ErrUserNotFound.Error()
	}
	return bankapi.MessageOf(err, apperrors.ErrFailedToLookupBalance.Error())
}

func flagsOf(d *model.Draft) ledger.Flags {
	return ledger.Flags{IsPending: d.IsPending, IsReceiving: d.IsReceiving}
}

// preview derives the balance preview of d. An incomplete draft yields a preview without a
// delta and no error.
func preview(d *model.Draft) (model.BalancePreview, error) {
	p := model.BalancePreview{CurrentBalance: d.CurrentBalance}
	if d.Amount == nil || d.Type == "" {
		return p, nil
	}

	v, err := ledger.ParseTaxonomyVersion(d.TaxonomyVersion)
	if err != nil {
		return p, err
	}
	rule, err := ledger.RuleFor(v)
	if err != nil {
		return p, err
	}

	t := ledger.TransactionType(d.Type)
	if class, err := rule.Classify(t); err == nil {
		p.Class = class.String()
	}

	delta, err := rule.PreviewDelta(t, *d.Amount, flagsOf(d))
	if err != nil {
		return p, err
	}
	p.SignedDelta = &delta

	if d.CurrentBalance != nil {
		projected := ledger.Project(*d.CurrentBalance, delta)
		p.ProjectedBalance = &projected
	}
	return p, nil
}

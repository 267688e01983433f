package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNonPositiveAmount is returned when an entered amount is zero or negative.
// Users never enter a sign; it is always derived.
var ErrNonPositiveAmount = errors.New("amount must be greater than 0")

// Flags carries the per-draft switches. Only one of them is meaningful for a given version:
// IsPending for TaxonomyCurrent, IsReceiving for TaxonomyLegacy.
type Flags struct {
	IsPending   bool
	IsReceiving bool
}

// Rule bundles the classification and sign rules of one taxonomy version. The live preview and
// the submission payload are both built from the same Rule so they cannot diverge.
type Rule interface {
	Version() TaxonomyVersion
	Classify(t TransactionType) (Class, error)
	PreviewDelta(t TransactionType, amount decimal.Decimal, flags Flags) (decimal.Decimal, error)
	SubmissionAmount(t TransactionType, amount decimal.Decimal, flags Flags) (decimal.Decimal, error)
}

// RuleFor returns the Rule of a taxonomy version.
func RuleFor(v TaxonomyVersion) (Rule, error) {
	switch v {
	case TaxonomyCurrent:
		return currentRule{}, nil
	case TaxonomyLegacy:
		return legacyRule{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTaxonomyVersion, int(v))
	}
}

type currentRule struct{}

func (currentRule) Version() TaxonomyVersion { return TaxonomyCurrent }

func (currentRule) Classify(t TransactionType) (Class, error) { return Classify(t) }

func (currentRule) PreviewDelta(t TransactionType, amount decimal.Decimal, flags Flags) (decimal.Decimal, error) {
	return PreviewDelta(t, amount, flags.IsPending)
}

func (currentRule) SubmissionAmount(t TransactionType, amount decimal.Decimal, flags Flags) (decimal.Decimal, error) {
	return BuildSubmissionAmount(t, amount, flags.IsPending)
}

type legacyRule struct{}

func (legacyRule) Version() TaxonomyVersion { return TaxonomyLegacy }

func (legacyRule) Classify(t TransactionType) (Class, error) {
	return classify(legacyClasses, TaxonomyLegacy, t)
}

func (legacyRule) PreviewDelta(t TransactionType, amount decimal.Decimal, flags Flags) (decimal.Decimal, error) {
	return PreviewDeltaLegacy(t, amount, flags.IsReceiving)
}

func (legacyRule) SubmissionAmount(t TransactionType, amount decimal.Decimal, flags Flags) (decimal.Decimal, error) {
	return BuildLegacySubmissionAmount(t, amount, flags.IsReceiving)
}

// PreviewDelta returns the change a current-taxonomy transaction makes to the displayed balance.
// Pending transactions and neutral types never move the projected balance.
func PreviewDelta(t TransactionType, amount decimal.Decimal, isPending bool) (decimal.Decimal, error) {
	if err := checkAmount(amount); err != nil {
		return decimal.Zero, err
	}
	class, err := Classify(t)
	if err != nil {
		return decimal.Zero, err
	}
	if isPending {
		return decimal.Zero, nil
	}
	switch class {
	case ClassCredit:
		return amount, nil
	case ClassDebit:
		return amount.Neg(), nil
	default:
		return decimal.Zero, nil
	}
}

// PreviewDeltaLegacy returns the legacy preview delta: +amount when receiving, -amount otherwise.
// The type is validated against the legacy taxonomy but does not affect the sign.
//
// Deprecated: legacy form clients only. Use PreviewDelta.
func PreviewDeltaLegacy(t TransactionType, amount decimal.Decimal, isReceiving bool) (decimal.Decimal, error) {
	if err := checkAmount(amount); err != nil {
		return decimal.Zero, err
	}
	if _, err := classify(legacyClasses, TaxonomyLegacy, t); err != nil {
		return decimal.Zero, err
	}
	if isReceiving {
		return amount, nil
	}
	return amount.Neg(), nil
}

// BuildSubmissionAmount returns the signed amount sent to the bank API. Unlike the preview it
// ignores isPending: the backend stores the eventual effect. Neutral types pass through positive.
func BuildSubmissionAmount(t TransactionType, amount decimal.Decimal, isPending bool) (decimal.Decimal, error) {
	if err := checkAmount(amount); err != nil {
		return decimal.Zero, err
	}
	class, err := Classify(t)
	if err != nil {
		return decimal.Zero, err
	}
	if class == ClassDebit {
		return amount.Neg(), nil
	}
	return amount, nil
}

// BuildLegacySubmissionAmount applies the PreviewDeltaLegacy sign rule to the submitted amount.
//
// Deprecated: legacy form clients only. Use BuildSubmissionAmount.
func BuildLegacySubmissionAmount(t TransactionType, amount decimal.Decimal, isReceiving bool) (decimal.Decimal, error) {
	return PreviewDeltaLegacy(t, amount, isReceiving)
}

// SignedAmount signs amount by the class of t in whichever taxonomy defines it: debit is
// negative, credit and neutral are positive. It is used when editing a recorded transaction,
// where no draft flags exist.
func SignedAmount(t TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := checkAmount(amount); err != nil {
		return decimal.Zero, err
	}
	v, err := VersionOf(t)
	if err != nil {
		return decimal.Zero, err
	}
	classes, _ := classesFor(v)
	if classes[t] == ClassDebit {
		return amount.Neg(), nil
	}
	return amount, nil
}

// Project returns currentBalance + signedDelta.
func Project(currentBalance, signedDelta decimal.Decimal) decimal.Decimal {
	return currentBalance.Add(signedDelta)
}

// WireAmount renders an amount with two-decimal precision for transmission.
func WireAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrNonPositiveAmount, amount.String())
	}
	return nil
}

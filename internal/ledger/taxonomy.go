// Package ledger classifies transaction types and derives the signed amounts used for balance
// previews and for submission to the bank API.
//
// Two taxonomy generations exist. TaxonomyCurrent is canonical; TaxonomyLegacy is kept for older
// form clients and is deprecated. A tag is always interpreted against exactly one version.
package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TaxonomyVersion selects the transaction type taxonomy a draft or request is written against.
type TaxonomyVersion int

const (
	// TaxonomyLegacy is the first-generation taxonomy (credit, debit, ach, wire, fee, other).
	//
	// Deprecated: use TaxonomyCurrent. Legacy forms derive the sign from the receiving flag only.
	TaxonomyLegacy TaxonomyVersion = 1

	// TaxonomyCurrent is the 24-tag taxonomy partitioned into credit, debit and neutral classes.
	TaxonomyCurrent TaxonomyVersion = 2
)

// ErrUnknownTaxonomyVersion is returned when a version string or number is not recognised.
var ErrUnknownTaxonomyVersion = errors.New("unknown taxonomy version")

// String returns the wire name of the version.
func (v TaxonomyVersion) String() string {
	switch v {
	case TaxonomyLegacy:
		return "v1"
	case TaxonomyCurrent:
		return "v2"
	default:
		return fmt.Sprintf("v%d", int(v))
	}
}

// ParseTaxonomyVersion accepts "v1"/"legacy"/"1" and "v2"/"current"/"2".
// An empty string selects TaxonomyCurrent.
func ParseTaxonomyVersion(s string) (TaxonomyVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "v2", "2", "current":
		return TaxonomyCurrent, nil
	case "v1", "1", "legacy":
		return TaxonomyLegacy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTaxonomyVersion, s)
	}
}

// Class is the balance effect of a transaction type.
type Class int

const (
	ClassCredit Class = iota + 1
	ClassDebit
	ClassNeutral
)

func (c Class) String() string {
	switch c {
	case ClassCredit:
		return "credit"
	case ClassDebit:
		return "debit"
	case ClassNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// MarshalText lets Class render as its name in JSON.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// TransactionType is a tag from one of the taxonomies.
type TransactionType string

// Current taxonomy, credit class.
const (
	AchCredit            TransactionType = "ach_credit"
	AchEmployeePayment   TransactionType = "ach_employee_payment"
	AchVendorPayment     TransactionType = "ach_vendor_payment"
	Deposit              TransactionType = "deposit"
	IncomingWireTransfer TransactionType = "incoming_wire_transfer"
	MiscCredit           TransactionType = "misc_credit"
	Refund               TransactionType = "refund"
	ZelleCredit          TransactionType = "zelle_credit"
)

// Current taxonomy, debit class.
const (
	AchDebit             TransactionType = "ach_debit"
	AtmTransaction       TransactionType = "atm_transaction"
	BillPayment          TransactionType = "bill_payment"
	Card                 TransactionType = "card"
	LoanPayment          TransactionType = "loan_payment"
	MiscDebit            TransactionType = "misc_debit"
	OutgoingWireTransfer TransactionType = "outgoing_wire_transfer"
	OvernightCheck       TransactionType = "overnight_check"
	TaxPayment           TransactionType = "tax_payment"
	EgiftDebit           TransactionType = "egift_debit"
	ZelleDebit           TransactionType = "zelle_debit"
)

// Current taxonomy, neutral class.
const (
	AccountTransfer      TransactionType = "account_transfer"
	AdjustmentOrReversal TransactionType = "adjustment_or_reversal"
	ReturnedDepositItem  TransactionType = "returned_deposit_item"
	ChecksUnder2Years    TransactionType = "checks_under_2_years"
	ChecksOver2Years     TransactionType = "checks_over_2_years"
)

// Legacy taxonomy.
const (
	LegacyCredit TransactionType = "credit"
	LegacyDebit  TransactionType = "debit"
	LegacyACH    TransactionType = "ach"
	LegacyWire   TransactionType = "wire"
	LegacyFee    TransactionType = "fee"
	LegacyOther  TransactionType = "other"
)

var currentClasses = map[TransactionType]Class{
	AchCredit:            ClassCredit,
	AchEmployeePayment:   ClassCredit,
	AchVendorPayment:     ClassCredit,
	Deposit:              ClassCredit,
	IncomingWireTransfer: ClassCredit,
	MiscCredit:           ClassCredit,
	Refund:               ClassCredit,
	ZelleCredit:          ClassCredit,

	AchDebit:             ClassDebit,
	AtmTransaction:       ClassDebit,
	BillPayment:          ClassDebit,
	Card:                 ClassDebit,
	LoanPayment:          ClassDebit,
	MiscDebit:            ClassDebit,
	OutgoingWireTransfer: ClassDebit,
	OvernightCheck:       ClassDebit,
	TaxPayment:           ClassDebit,
	EgiftDebit:           ClassDebit,
	ZelleDebit:           ClassDebit,

	AccountTransfer:      ClassNeutral,
	AdjustmentOrReversal: ClassNeutral,
	ReturnedDepositItem:  ClassNeutral,
	ChecksUnder2Years:    ClassNeutral,
	ChecksOver2Years:     ClassNeutral,
}

// Legacy classes only drive the +/- of display labels. Legacy sign rules ignore them.
var legacyClasses = map[TransactionType]Class{
	LegacyCredit: ClassCredit,
	LegacyDebit:  ClassDebit,
	LegacyFee:    ClassDebit,
	LegacyACH:    ClassNeutral,
	LegacyWire:   ClassNeutral,
	LegacyOther:  ClassNeutral,
}

// ErrUnknownTransactionType is matched by every UnknownTypeError.
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// UnknownTypeError reports a tag outside the taxonomy it was checked against.
type UnknownTypeError struct {
	Type    TransactionType
	Version TaxonomyVersion
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown transaction type %q for taxonomy %s", string(e.Type), e.Version)
}

// Is makes errors.Is(err, ErrUnknownTransactionType) hold.
func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownTransactionType
}

// Classify returns the class of a current-taxonomy tag.
func Classify(t TransactionType) (Class, error) {
	return classify(currentClasses, TaxonomyCurrent, t)
}

func classify(classes map[TransactionType]Class, v TaxonomyVersion, t TransactionType) (Class, error) {
	c, ok := classes[t]
	if !ok {
		return 0, &UnknownTypeError{Type: t, Version: v}
	}
	return c, nil
}

// Types returns the tags of a taxonomy version in lexical order.
func Types(v TaxonomyVersion) ([]TransactionType, error) {
	classes, err := classesFor(v)
	if err != nil {
		return nil, err
	}
	types := make([]TransactionType, 0, len(classes))
	for t := range classes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types, nil
}

// TypesInClass returns the current-taxonomy tags of one class in lexical order.
func TypesInClass(c Class) []TransactionType {
	var types []TransactionType
	for t, tc := range currentClasses {
		if tc == c {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func classesFor(v TaxonomyVersion) (map[TransactionType]Class, error) {
	switch v {
	case TaxonomyCurrent:
		return currentClasses, nil
	case TaxonomyLegacy:
		return legacyClasses, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTaxonomyVersion, int(v))
	}
}

// VersionOf reports which taxonomy defines t. The two tag sets are disjoint, so a stored
// transaction's tag identifies its version.
func VersionOf(t TransactionType) (TaxonomyVersion, error) {
	if _, ok := currentClasses[t]; ok {
		return TaxonomyCurrent, nil
	}
	if _, ok := legacyClasses[t]; ok {
		return TaxonomyLegacy, nil
	}
	return 0, &UnknownTypeError{Type: t}
}

package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmountLabel is returned by ParseAmountLabel for malformed input.
var ErrInvalidAmountLabel = errors.New("invalid amount label")

// FormatCurrency renders d as en-US dollars, e.g. "$20,249.75" or "-$1,250.00".
func FormatCurrency(d decimal.Decimal) string {
	rounded := d.Round(2)
	fixed := rounded.Abs().StringFixed(2)
	cents := fixed[len(fixed)-2:]
	s := "$" + humanize.BigComma(rounded.Abs().BigInt()) + "." + cents
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatAmountLabel renders a historical transaction amount as "{sign}{currency}". The sign is
// "+" for the credit class and "-" for everything else. The sign of amount itself is ignored.
func FormatAmountLabel(amount decimal.Decimal, t TransactionType) (string, error) {
	return formatLabel(currentRule{}, amount, t)
}

// FormatAmountLabelFor is FormatAmountLabel against an explicit taxonomy version.
func FormatAmountLabelFor(v TaxonomyVersion, amount decimal.Decimal, t TransactionType) (string, error) {
	rule, err := RuleFor(v)
	if err != nil {
		return "", err
	}
	return formatLabel(rule, amount, t)
}

func formatLabel(rule Rule, amount decimal.Decimal, t TransactionType) (string, error) {
	class, err := rule.Classify(t)
	if err != nil {
		return "", err
	}
	sign := "-"
	if class == ClassCredit {
		sign = "+"
	}
	return sign + FormatCurrency(amount.Abs()), nil
}

// ParseAmountLabel reads a label produced by FormatAmountLabel back into its unsigned amount and
// its sign (+1 or -1). Labels without a sign are treated as positive.
func ParseAmountLabel(label string) (decimal.Decimal, int, error) {
	s := strings.TrimSpace(label)
	sign := 1
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	}
	if !strings.HasPrefix(s, "$") {
		return decimal.Zero, 0, fmt.Errorf("%w: %q", ErrInvalidAmountLabel, label)
	}
	s = strings.ReplaceAll(s[1:], ",", "")
	amount, err := decimal.NewFromString(s)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, 0, fmt.Errorf("%w: %q", ErrInvalidAmountLabel, label)
	}
	return amount, sign, nil
}

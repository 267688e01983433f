package validation

import (
	"strings"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/request"
	"github.com/ndewijer/Banking-Admin-Backend/internal/ledger"
	"github.com/ndewijer/Banking-Admin-Backend/internal/model"
)

// MinDescriptionLength is the shortest description a submitted transaction may carry.
const MinDescriptionLength = 5

// ValidateCreateDraft checks the taxonomy version and, when given, the target email.
func ValidateCreateDraft(req request.CreateDraftRequest) error {
	errors := make(map[string]string)

	if _, err := ledger.ParseTaxonomyVersion(req.TaxonomyVersion); err != nil {
		errors["taxonomyVersion"] = "Unknown taxonomy version"
	}
	if !blank(req.Email) && !IsEmail(req.Email) {
		errors["email"] = "Invalid email address"
	}

	return result(errors)
}

// ValidateUpdateDraft validates a draft mutation against the draft's taxonomy version.
// Incomplete values are allowed while the form is being filled in; only values that can never
// become valid are rejected:
//   - amount: must be greater than 0
//   - type: must be a tag of the draft's taxonomy version, or empty
//   - email: must look like an address, or be empty
func ValidateUpdateDraft(req request.UpdateDraftRequest, v ledger.TaxonomyVersion) error {
	errors := make(map[string]string)

	if req.Amount != nil && !req.Amount.IsPositive() {
		errors["amount"] = "Amount must be greater than 0"
	}
	if req.Type != nil && *req.Type != "" && !validType(v, *req.Type) {
		errors["type"] = "Invalid transaction type"
	}
	if req.Email != nil && !blank(*req.Email) && !IsEmail(*req.Email) {
		errors["email"] = "Invalid email address"
	}
	if req.IsReceiving != nil && v != ledger.TaxonomyLegacy {
		errors["isReceiving"] = "isReceiving only applies to legacy drafts"
	}

	return result(errors)
}

// ValidateDraftSubmission checks that a draft is complete enough to be recorded.
//
// Required fields:
//   - email: must look like an address
//   - amount: must be greater than 0
//   - type: must be a tag of the draft's taxonomy version
//   - description: at least 5 characters
//   - date: must be in YYYY-MM-DD format
func ValidateDraftSubmission(d *model.Draft) error {
	errors := make(map[string]string)

	if blank(d.Email) {
		errors["email"] = "Email is required"
	} else if !IsEmail(d.Email) {
		errors["email"] = "Invalid email address"
	}
	if d.Amount == nil || !d.Amount.IsPositive() {
		errors["amount"] = "Amount must be greater than 0"
	}

	v, err := ledger.ParseTaxonomyVersion(d.TaxonomyVersion)
	if err != nil {
		errors["taxonomyVersion"] = "Unknown taxonomy version"
	} else if !validType(v, d.Type) {
		errors["type"] = "Invalid transaction type"
	}

	if len(strings.TrimSpace(d.Description)) < MinDescriptionLength {
		errors["description"] = "Description must be at least 5 characters"
	}
	if !IsDate(d.Date) {
		errors["date"] = "Date must be in YYYY-MM-DD format"
	}

	return result(errors)
}

// ValidatePreview validates a stateless preview request.
func ValidatePreview(req request.PreviewRequest) error {
	errors := make(map[string]string)

	v, err := ledger.ParseTaxonomyVersion(req.TaxonomyVersion)
	if err != nil {
		errors["taxonomyVersion"] = "Unknown taxonomy version"
	} else if !validType(v, req.Type) {
		errors["type"] = "Invalid transaction type"
	}
	if !req.Amount.IsPositive() {
		errors["amount"] = "Amount must be greater than 0"
	}

	return result(errors)
}

func validType(v ledger.TaxonomyVersion, t string) bool {
	rule, err := ledger.RuleFor(v)
	if err != nil {
		return false
	}
	_, err = rule.Classify(ledger.TransactionType(t))
	return err == nil
}

package handlers

import (
	"net/http"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/response"
	"github.com/ndewijer/Banking-Admin-Backend/internal/ledger"
)

// TaxonomyEntry is one selectable transaction type.
type TaxonomyEntry struct {
	Type  ledger.TransactionType `json:"type"`
	Class ledger.Class           `json:"class"`
}

// TaxonomyResponse lists the types of one taxonomy version.
type TaxonomyResponse struct {
	Version    string          `json:"version"`
	Deprecated bool            `json:"deprecated"`
	Types      []TaxonomyEntry `json:"types"`
}

// Taxonomy lists the transaction types of a taxonomy version for the type selector.
//
// Endpoint: GET /transactions/taxonomy?version=v1|v2
// Response: 200 OK with TaxonomyResponse
// Error: 400 Bad Request if the version is unknown
func Taxonomy(w http.ResponseWriter, r *http.Request) {
	v, err := ledger.ParseTaxonomyVersion(r.URL.Query().Get("version"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	rule, err := ledger.RuleFor(v)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	types, err := ledger.Types(v)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	entries := make([]TaxonomyEntry, 0, len(types))
	for _, t := range types {
		class, err := rule.Classify(t)
		if err != nil {
			continue
		}
		entries = append(entries, TaxonomyEntry{Type: t, Class: class})
	}

	response.RespondJSON(w, http.StatusOK, TaxonomyResponse{
		Version:    v.String(),
		Deprecated: v == ledger.TaxonomyLegacy,
		Types:      entries,
	})
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for auto-bibtex: configuration
// and the per-key resolution outcome passed between the resolver, the
// bibliography builder and the run history.
package types

// Status is the outcome of resolving one citation key.
type Status string

const (
	StatusResolved  Status = "resolved"
	StatusMalformed Status = "malformed"
	StatusNotFound  Status = "not_found"
	StatusAmbiguous Status = "ambiguous"
	StatusFailed    Status = "failed"
)

// AllStatuses lists every status in reporting order.
var AllStatuses = []Status{StatusResolved, StatusMalformed, StatusNotFound, StatusAmbiguous, StatusFailed}

// KeyResult records what happened to one citation key.
type KeyResult struct {
	// Key is the citation key as it appeared in the document.
	Key string `json:"key" yaml:"key"`

	// Status is the resolution outcome.
	Status Status `json:"status" yaml:"status"`

	// Bibcode is the matched ADS identifier, set when exactly one candidate matched.
	Bibcode string `json:"bibcode,omitempty" yaml:"bibcode,omitempty"`

	// Matches is the number of candidates whose page equalled the key page.
	Matches int `json:"matches" yaml:"matches"`

	// Entry is the rewritten BibTeX record. Empty unless Status is resolved.
	Entry string `json:"-" yaml:"-"`

	// Error describes why the key was not resolved.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Resolved reports whether the key produced a bibliography entry.
func (r KeyResult) Resolved() bool {
	return r.Status == StatusResolved
}

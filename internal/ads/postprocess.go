// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ads

import (
	"regexp"
)

// Postprocessor cleans fetched BibTeX entries. ADS fills the journal field
// of preprint-only records with a placeholder venue that reference managers
// would otherwise print as a real journal.
type Postprocessor struct {
	venueLine *regexp.Regexp
}

// NewPostprocessor returns a Postprocessor that drops the journal line when
// it equals venue. An empty venue disables stripping.
func NewPostprocessor(venue string) Postprocessor {
	if venue == "" {
		return Postprocessor{}
	}
	re := regexp.MustCompile(`(?m)^[ \t]*journal[ \t]*=[ \t]*(?:\{` + regexp.QuoteMeta(venue) + `\}|"` + regexp.QuoteMeta(venue) + `")[ \t]*,?[ \t]*\r?\n?`)
	return Postprocessor{venueLine: re}
}

// Apply returns entry with the placeholder journal line removed, or entry
// unchanged.
func (p Postprocessor) Apply(entry string) string {
	if p.venueLine == nil {
		return entry
	}
	return p.venueLine.ReplaceAllString(entry, "")
}

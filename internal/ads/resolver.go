// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ads

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/pdiddy/auto-bibtex/internal/citekey"
	"github.com/pdiddy/auto-bibtex/pkg/types"
)

// Backend is the remote database a Resolver queries. *Client implements it.
type Backend interface {
	Search(ctx context.Context, author string, year int) ([]Candidate, error)
	FetchBibTeX(ctx context.Context, bibcode string) (string, error)
}

// Resolver maps citation keys to BibTeX entries. A key is resolved only when
// exactly one search candidate has the key's page and every result line was
// readable; anything else leaves it unresolved.
type Resolver struct {
	backend Backend
	post    Postprocessor
	logger  hclog.Logger
}

// NewResolver returns a Resolver over backend. A nil logger discards warnings.
func NewResolver(backend Backend, post Postprocessor, logger hclog.Logger) *Resolver {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Resolver{backend: backend, post: post, logger: logger}
}

// Resolve looks up one raw citation key. It never fails: every problem is
// reported through the result status and a warning.
func (r *Resolver) Resolve(ctx context.Context, raw string) types.KeyResult {
	res := types.KeyResult{Key: raw}

	key, err := citekey.Parse(raw)
	if err != nil {
		res.Status = types.StatusMalformed
		res.Error = err.Error()
		r.logger.Debug("skipping key", "key", raw, "error", err)
		return res
	}

	candidates, err := r.backend.Search(ctx, key.Author, key.Year)
	partial := errors.Is(err, ErrSkippedLines)
	if err != nil && !partial {
		return r.failed(res, err)
	}

	var matches []Candidate
	for _, c := range candidates {
		if c.Page == key.Page {
			matches = append(matches, c)
		}
	}
	res.Matches = len(matches)

	// An unreadable line may carry the key's page, so fewer than two
	// readable matches prove neither absence nor uniqueness.
	if partial && len(matches) < 2 {
		return r.failed(res, fmt.Errorf("cannot confirm a unique match: %w", err))
	}

	switch len(matches) {
	case 0:
		res.Status = types.StatusNotFound
		res.Error = "no article matches the author/year/page combination"
		r.logger.Warn("no article matches", "key", raw)
		return res
	case 1:
	default:
		res.Status = types.StatusAmbiguous
		res.Error = "more than one article matches the author/year/page combination"
		r.logger.Warn("ambiguous key", "key", raw, "matches", len(matches))
		return res
	}

	bibcode := matches[0].Bibcode
	res.Bibcode = bibcode

	entry, err := r.backend.FetchBibTeX(ctx, bibcode)
	if err != nil {
		return r.failed(res, err)
	}

	entry = r.post.Apply(entry)
	res.Entry = strings.Replace(entry, bibcode, key.Short(), 1)
	res.Status = types.StatusResolved
	r.logger.Debug("resolved key", "key", raw, "bibcode", bibcode)
	return res
}

func (r *Resolver) failed(res types.KeyResult, err error) types.KeyResult {
	res.Status = types.StatusFailed
	res.Error = err.Error()
	r.logger.Warn("lookup failed", "key", res.Key, "error", err)
	return res
}

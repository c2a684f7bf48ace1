// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ads

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrMalformedLine marks a search result line that could not be parsed.
var ErrMalformedLine = errors.New("malformed search result line")

// Candidate is one record from an ADS custom-format search listing.
type Candidate struct {
	Author  string
	Year    string
	Page    string
	Bibcode string
}

var requiredFields = []string{"author", "year", "page", "bibcode"}

// ParseCandidates reads a custom-format search response. Only lines that
// contain "bibcode=" are records; everything else (headers, counts) is
// ignored. Records that fail validation are skipped and returned together
// as a *multierror.Error next to the valid candidates. Any other error is a
// read failure.
func ParseCandidates(r io.Reader) ([]Candidate, error) {
	var (
		candidates []Candidate
		merr       *multierror.Error
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !strings.Contains(line, "bibcode=") {
			continue
		}
		c, err := parseCandidateLine(line)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		candidates = append(candidates, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return candidates, merr.ErrorOrNil()
}

// parseCandidateLine splits "k1=v1 , k2=v2 , ..." into a Candidate. A piece
// without '=' continues the previous value, which keeps surnames containing
// commas intact.
func parseCandidateLine(line string) (Candidate, error) {
	fields := make(map[string]string, len(requiredFields))
	var last string

	for _, piece := range strings.Split(line, ",") {
		k, v, ok := strings.Cut(piece, "=")
		if !ok {
			if last == "" {
				return Candidate{}, fmt.Errorf("%w: %q does not start with a field", ErrMalformedLine, line)
			}
			fields[last] = strings.TrimSpace(fields[last] + "," + piece)
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			return Candidate{}, fmt.Errorf("%w: empty field name in %q", ErrMalformedLine, line)
		}
		if _, dup := fields[k]; dup {
			return Candidate{}, fmt.Errorf("%w: duplicate field %q", ErrMalformedLine, k)
		}
		fields[k] = strings.TrimSpace(v)
		last = k
	}

	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return Candidate{}, fmt.Errorf("%w: missing field %q", ErrMalformedLine, name)
		}
	}
	if fields["bibcode"] == "" {
		return Candidate{}, fmt.Errorf("%w: empty bibcode", ErrMalformedLine)
	}

	return Candidate{
		Author:  fields["author"],
		Year:    fields["year"],
		Page:    fields["page"],
		Bibcode: fields["bibcode"],
	}, nil
}

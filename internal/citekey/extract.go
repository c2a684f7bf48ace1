// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citekey finds citation keys in LaTeX source and parses keys of
// the form author:yy:page.
package citekey

import (
	"sort"
	"strings"
)

// citePrefix matches \cite and every variant that starts with it
// (\citet, \citep, \citealt, \citeauthor, ...).
const citePrefix = `\cite`

// ExtractOptions tunes key extraction.
type ExtractOptions struct {
	// Lowercase folds keys to lower case before deduplication.
	Lowercase bool
}

// Extract returns the unique citation keys referenced by \cite-style macros
// in text, sorted. For each macro it takes the text between the next '{' and
// the following '}' and splits it on commas. A macro without a closing brace
// ends the scan.
func Extract(text string, opts ExtractOptions) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	seen := make(map[string]bool)
	var keys []string

	pos := 0
	for {
		i := strings.Index(text[pos:], citePrefix)
		if i < 0 {
			break
		}
		start := pos + i

		open := strings.IndexByte(text[start:], '{')
		if open < 0 {
			break
		}
		open += start

		closing := strings.IndexByte(text[open:], '}')
		if closing < 0 {
			break
		}
		closing += open

		for _, piece := range strings.Split(text[open+1:closing], ",") {
			key := strings.TrimSpace(piece)
			if opts.Lowercase {
				key = strings.ToLower(key)
			}
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}

		pos = start + 1
	}

	sort.Strings(keys)
	return keys
}

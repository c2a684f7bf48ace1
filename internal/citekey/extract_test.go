// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citekey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const fixtureTeX = `
text here \citet{robitaille:08:2413}
more \cite{forbrich:10:1453} text
(\citealt{robitaille:06:256})
`

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts ExtractOptions
		want []string
	}{
		{"no citations", "plain text without macros", ExtractOptions{}, nil},
		{"empty document", "", ExtractOptions{}, nil},
		{"fixture", fixtureTeX, ExtractOptions{}, []string{"forbrich:10:1453", "robitaille:06:256", "robitaille:08:2413"}},
		{"comma separated with spaces", `\cite{a:01:1, b:02:2 ,c:03:3}`, ExtractOptions{}, []string{"a:01:1", "b:02:2", "c:03:3"}},
		{"duplicates", `\cite{a:01:1} \citep{a:01:1,b:02:2}`, ExtractOptions{}, []string{"a:01:1", "b:02:2"}},
		{"optional argument", `\citep[see][p.~4]{smith:99:12}`, ExtractOptions{}, []string{"smith:99:12"}},
		{"key across newline", "\\cite{smith:99:12,\njones:01:3}", ExtractOptions{}, []string{"jones:01:3", "smith:99:12"}},
		{"case preserved", `\cite{Smith:99:12}`, ExtractOptions{}, []string{"Smith:99:12"}},
		{"lowercase option", `\cite{Smith:99:12} \cite{smith:99:12}`, ExtractOptions{Lowercase: true}, []string{"smith:99:12"}},
		{"empty pieces dropped", `\cite{a:01:1,,}`, ExtractOptions{}, []string{"a:01:1"}},
		{"missing open brace ends scan", `\cite{a:01:1} then \cite without brace`, ExtractOptions{}, []string{"a:01:1"}},
		{"missing close brace ends scan", `\cite{a:01:1} \cite{b:02:2`, ExtractOptions{}, []string{"a:01:1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text, tt.opts))
		})
	}
}

func TestExtractIdempotent(t *testing.T) {
	first := Extract(fixtureTeX, ExtractOptions{})
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Extract(fixtureTeX, ExtractOptions{}))
	}
}

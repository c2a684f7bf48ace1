// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibliography

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/auto-bibtex/internal/ads"
	"github.com/pdiddy/auto-bibtex/internal/ads/adstest"
	"github.com/pdiddy/auto-bibtex/pkg/types"
)

// --- test helpers ---

type stubResolver struct {
	mu      sync.Mutex
	results map[string]types.KeyResult
	seen    []string
}

func (s *stubResolver) Resolve(_ context.Context, key string) types.KeyResult {
	s.mu.Lock()
	s.seen = append(s.seen, key)
	s.mu.Unlock()
	if r, ok := s.results[key]; ok {
		return r
	}
	return types.KeyResult{Key: key, Status: types.StatusNotFound, Error: "no match"}
}

func adsBackend(t *testing.T, records ...adstest.Record) ads.Backend {
	t.Helper()
	srv := adstest.NewServer(t, records...)
	return ads.NewClient(types.ADSConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second},
		SearchURL:  srv.SearchURL(),
		RecordURL:  srv.RecordURL(),
		MaxRetries: 1,
	}, ads.WithHTTPClient(srv.Client()))
}

func memFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

// --- OutputPath ---

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, suffix, want string
	}{
		{"ms.tex", "_auto", "ms_auto.bib"},
		{"paper/ms.tex", "_auto", "paper/ms_auto.bib"},
		{"my.tex.notes.tex", "_auto", "my.tex.notes_auto.bib"},
		{"ms.tex", "", "ms.bib"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := OutputPath(tt.input, tt.suffix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"ms.txt", "ms", "ms.TEX", "ms.tex.bak"} {
		_, err := OutputPath(bad, "_auto")
		assert.ErrorIs(t, err, ErrNotTeX, bad)
	}
}

// --- Build ---

func TestBuildFixture(t *testing.T) {
	fs := afero.NewMemMapFs()
	memFile(t, fs, "ms.tex", adstest.FixtureTeX)

	backend := adsBackend(t, adstest.FixtureRecords()...)
	b := NewBuilder(ads.NewResolver(backend, ads.NewPostprocessor(types.DefaultPreprintVenue), nil),
		types.DefaultConfig().Resolve, WithFs(fs))

	run, err := b.Build(context.Background(), "ms.tex")
	require.NoError(t, err)

	assert.Equal(t, strings.TrimSpace(adstest.ExpectedBibliography), strings.TrimSpace(run.Text))
	assert.Equal(t, "ms_auto.bib", run.Output)
	assert.Equal(t, []string{"forbrich:10:1453", "robitaille:06:256", "robitaille:08:2413"}, run.Keys)
	assert.NoError(t, run.Err())

	written, err := afero.ReadFile(fs, "ms_auto.bib")
	require.NoError(t, err)
	assert.Equal(t, run.Text, string(written))
}

func TestBuildNoCitationsWritesEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	memFile(t, fs, "empty.tex", "\\section{Intro}\nNo references here.\n")

	stub := &stubResolver{}
	run, err := NewBuilder(stub, types.ResolveConfig{}, WithFs(fs)).Build(context.Background(), "empty.tex")
	require.NoError(t, err)

	assert.Empty(t, run.Keys)
	assert.Empty(t, run.Text)
	assert.Empty(t, stub.seen)

	written, err := afero.ReadFile(fs, "empty_auto.bib")
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestBuildRejectsNonTeX(t *testing.T) {
	fs := afero.NewMemMapFs()
	memFile(t, fs, "ms.txt", `\cite{a:01:1}`)

	stub := &stubResolver{}
	_, err := NewBuilder(stub, types.ResolveConfig{}, WithFs(fs)).Build(context.Background(), "ms.txt")
	assert.ErrorIs(t, err, ErrNotTeX)
	assert.Empty(t, stub.seen, "no work before the name check")
}

func TestBuildMissingInput(t *testing.T) {
	_, err := NewBuilder(&stubResolver{}, types.ResolveConfig{}, WithFs(afero.NewMemMapFs())).
		Build(context.Background(), "missing.tex")
	assert.Error(t, err)
}

func TestBuildSkipsUnresolved(t *testing.T) {
	fs := afero.NewMemMapFs()
	memFile(t, fs, "ms.tex", `\cite{b:01:1,a:01:1} \citep{amb:01:1} \cite{bad}`)

	stub := &stubResolver{results: map[string]types.KeyResult{
		"a:01:1":   {Key: "a:01:1", Status: types.StatusResolved, Entry: "@ARTICLE{a:01:1,\n}\n\n"},
		"b:01:1":   {Key: "b:01:1", Status: types.StatusResolved, Entry: "@ARTICLE{b:01:1,\n}\n\n"},
		"amb:01:1": {Key: "amb:01:1", Status: types.StatusAmbiguous, Matches: 2, Error: "more than one"},
		"bad":      {Key: "bad", Status: types.StatusMalformed, Error: "malformed"},
	}}

	run, err := NewBuilder(stub, types.ResolveConfig{Workers: 2}, WithFs(fs)).Build(context.Background(), "ms.tex")
	require.NoError(t, err)

	assert.Equal(t, "@ARTICLE{a:01:1,\n}\n\n@ARTICLE{b:01:1,\n}\n\n", run.Text)
	assert.NotContains(t, run.Text, "amb:01:1")

	summary := run.Summary()
	assert.Equal(t, 2, summary[types.StatusResolved])
	assert.Equal(t, 1, summary[types.StatusAmbiguous])
	assert.Equal(t, 1, summary[types.StatusMalformed])
	assert.Len(t, run.Unresolved(), 2)

	var merr *multierror.Error
	require.ErrorAs(t, run.Err(), &merr)
	assert.Len(t, merr.Errors, 2)
}

func TestBuildOverwritesExistingOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	memFile(t, fs, "ms.tex", `\cite{a:01:1}`)
	memFile(t, fs, "ms_auto.bib", "stale contents")

	stub := &stubResolver{results: map[string]types.KeyResult{
		"a:01:1": {Key: "a:01:1", Status: types.StatusResolved, Entry: "@ARTICLE{a:01:1,\n}\n"},
	}}
	_, err := NewBuilder(stub, types.ResolveConfig{}, WithFs(fs)).Build(context.Background(), "ms.tex")
	require.NoError(t, err)

	written, err := afero.ReadFile(fs, "ms_auto.bib")
	require.NoError(t, err)
	assert.Equal(t, "@ARTICLE{a:01:1,\n}\n", string(written))
}

func TestBuildCancelledKeepsExistingOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	memFile(t, fs, "ms.tex", adstest.FixtureTeX)
	memFile(t, fs, "ms_auto.bib", adstest.ExpectedBibliography)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &stubResolver{}
	run, err := NewBuilder(stub, types.ResolveConfig{}, WithFs(fs)).Build(ctx, "ms.tex")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, run)

	written, err := afero.ReadFile(fs, "ms_auto.bib")
	require.NoError(t, err)
	assert.Equal(t, adstest.ExpectedBibliography, string(written))
}

func TestBuildToCustomOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	memFile(t, fs, "ms.tex", `\cite{a:01:1}`)

	run, err := NewBuilder(&stubResolver{}, types.ResolveConfig{}, WithFs(fs)).
		BuildTo(context.Background(), "ms.tex", "out/refs.bib")
	require.NoError(t, err)
	assert.Equal(t, "out/refs.bib", run.Output)

	ok, err := afero.Exists(fs, "out/refs.bib")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBuildLowercase(t *testing.T) {
	fs := afero.NewMemMapFs()
	memFile(t, fs, "ms.tex", `\cite{Robitaille:08:2413}`)

	stub := &stubResolver{}
	run, err := NewBuilder(stub, types.ResolveConfig{Lowercase: true}, WithFs(fs)).Build(context.Background(), "ms.tex")
	require.NoError(t, err)
	assert.Equal(t, []string{"robitaille:08:2413"}, run.Keys)
}

// --- Assemble and report ---

func TestAssembleSortsByText(t *testing.T) {
	got := Assemble([]types.KeyResult{
		{Status: types.StatusResolved, Entry: "@ARTICLE{zeta,}\n"},
		{Status: types.StatusNotFound},
		{Status: types.StatusResolved, Entry: "@ARTICLE{alpha,}\n"},
	})
	assert.Equal(t, "@ARTICLE{alpha,}\n@ARTICLE{zeta,}\n", got)
}

func TestWriteReport(t *testing.T) {
	run := &Run{
		Input:     "ms.tex",
		Output:    "ms_auto.bib",
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Results: []types.KeyResult{
			{Key: "a:01:1", Status: types.StatusResolved, Bibcode: "2001A", Matches: 1, Entry: "@ARTICLE{a:01:1,}"},
			{Key: "b:01:1", Status: types.StatusNotFound, Error: "no match"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, run.WriteReport(&buf))
	assert.NotContains(t, buf.String(), "@ARTICLE")

	var got report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "ms_auto.bib", got.Output)
	assert.Equal(t, "1.5s", got.Duration)
	assert.Equal(t, map[string]int{"resolved": 1, "not_found": 1}, got.Summary)
	require.Len(t, got.Keys, 2)
	assert.Equal(t, "2001A", got.Keys[0].Bibcode)
	assert.Equal(t, types.StatusNotFound, got.Keys[1].Status)
}

func TestWriteSummary(t *testing.T) {
	run := &Run{
		Output: "ms_auto.bib",
		Results: []types.KeyResult{
			{Key: "a:01:1", Status: types.StatusResolved},
			{Key: "b:01:1", Status: types.StatusAmbiguous, Error: "more than one"},
		},
	}
	var buf bytes.Buffer
	run.WriteSummary(&buf)
	assert.Contains(t, buf.String(), "ambiguous  b:01:1 (more than one)")
	assert.Contains(t, buf.String(), "1 resolved, 0 not found, 1 ambiguous, 0 malformed, 0 failed (total: 2)")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibliography turns a LaTeX document into a BibTeX file: it
// extracts citation keys, resolves them concurrently, and writes the
// resolved entries sorted by text.
package bibliography

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/pdiddy/auto-bibtex/internal/citekey"
	"github.com/pdiddy/auto-bibtex/internal/workpool"
	"github.com/pdiddy/auto-bibtex/pkg/types"
)

const (
	texExt = ".tex"
	bibExt = ".bib"
)

// ErrNotTeX is returned when the input file name does not end in .tex.
var ErrNotTeX = errors.New("input filename should end in .tex")

// Resolver resolves a single citation key. *ads.Resolver implements it.
type Resolver interface {
	Resolve(ctx context.Context, key string) types.KeyResult
}

// OutputPath derives the bibliography path for a document: "ms.tex" with
// suffix "_auto" becomes "ms_auto.bib". Only the trailing extension counts.
func OutputPath(input, suffix string) (string, error) {
	if !strings.HasSuffix(input, texExt) {
		return "", fmt.Errorf("%w: %s", ErrNotTeX, input)
	}
	return strings.TrimSuffix(input, texExt) + suffix + bibExt, nil
}

// Builder assembles bibliographies.
type Builder struct {
	fs       afero.Fs
	resolver Resolver
	cfg      types.ResolveConfig
	logger   hclog.Logger
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithFs sets the filesystem documents are read from and written to.
func WithFs(fs afero.Fs) Option {
	return func(b *Builder) {
		b.fs = fs
	}
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

// NewBuilder returns a Builder using resolver for every key. It works on the
// OS filesystem unless WithFs is given.
func NewBuilder(resolver Resolver, cfg types.ResolveConfig, opts ...Option) *Builder {
	if cfg.Workers <= 0 {
		cfg.Workers = types.DefaultWorkers
	}
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = types.DefaultOutputSuffix
	}
	b := &Builder{
		fs:       afero.NewOsFs(),
		resolver: resolver,
		cfg:      cfg,
		logger:   hclog.NewNullLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build writes the bibliography for input to its derived output path.
func (b *Builder) Build(ctx context.Context, input string) (*Run, error) {
	output, err := OutputPath(input, b.cfg.OutputSuffix)
	if err != nil {
		return nil, err
	}
	return b.BuildTo(ctx, input, output)
}

// BuildTo writes the bibliography for input to output. A bad input name,
// file I/O or a cancelled context fails the run, and a cancelled run leaves
// any existing output untouched. Unresolved keys are recorded in the Run and
// the output file is written regardless, possibly empty.
func (b *Builder) BuildTo(ctx context.Context, input, output string) (*Run, error) {
	if !strings.HasSuffix(input, texExt) {
		return nil, fmt.Errorf("%w: %s", ErrNotTeX, input)
	}

	run := &Run{Input: input, Output: output, StartedAt: b.now()}

	data, err := afero.ReadFile(b.fs, input)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", input, err)
	}

	run.Keys = citekey.Extract(string(data), citekey.ExtractOptions{Lowercase: b.cfg.Lowercase})
	b.logger.Info("extracted citation keys", "input", input, "keys", len(run.Keys))

	run.Results = workpool.Map(ctx, run.Keys, b.cfg.Workers, b.resolver.Resolve)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resolving keys of %s: %w", input, err)
	}
	run.Text = Assemble(run.Results)

	if exists, _ := afero.Exists(b.fs, output); exists {
		b.logger.Info("overwriting existing bibliography", "path", output)
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(b.fs, output, []byte(run.Text), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", output, err)
	}

	run.Duration = b.now().Sub(run.StartedAt)
	return run, nil
}

// Assemble concatenates the entries of resolved results sorted by their
// text. Unresolved results contribute nothing.
func Assemble(results []types.KeyResult) string {
	var entries []string
	for _, r := range results {
		if r.Resolved() && r.Entry != "" {
			entries = append(entries, r.Entry)
		}
	}
	sort.Strings(entries)
	return strings.Join(entries, "")
}
